package layout

import (
	"testing"

	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
)

func TestPositionEdgeLabelsAvoidsShape(t *testing.T) {
	d := diagram.New("labels")
	a := d.AddShape("A", 0, 80, 100, 40, "")
	b := d.AddShape("B", 400, 80, 100, 40, "")
	// A shape sitting exactly on the edge midpoint.
	d.AddShape("Blocker", 200, 80, 100, 40, "")
	d.AddConnector(a, b, "flow", "")

	moved := PositionEdgeLabels(d, 8)
	if moved != 1 {
		t.Fatalf("expected 1 repositioned label, got %d", moved)
	}
	c := d.Connectors[0]
	if c.LabelOffset == nil {
		t.Fatal("label offset not set")
	}
	if *c.LabelOffset == (geom.Point{X: 0, Y: -10}) {
		t.Error("offset unchanged despite collision")
	}
}

func TestPositionEdgeLabelsSkipsUnlabeled(t *testing.T) {
	d := diagram.New("unlabeled")
	a := d.AddShape("A", 0, 0, 100, 40, "")
	b := d.AddShape("B", 400, 0, 100, 40, "")
	d.AddConnector(a, b, "", "")

	if moved := PositionEdgeLabels(d, 8); moved != 0 {
		t.Errorf("unlabeled connector should be skipped, got %d", moved)
	}
	if d.Connectors[0].LabelOffset != nil {
		t.Error("offset should remain nil for unlabeled connector")
	}
}

func TestPositionEdgeLabelsClearByDefault(t *testing.T) {
	d := diagram.New("clear")
	a := d.AddShape("A", 0, 300, 100, 40, "")
	b := d.AddShape("B", 400, 300, 100, 40, "")
	d.AddConnector(a, b, "ok", "")

	if moved := PositionEdgeLabels(d, 8); moved != 0 {
		t.Errorf("label with no collision should not move, got %d", moved)
	}
}
