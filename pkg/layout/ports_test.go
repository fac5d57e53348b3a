package layout

import (
	"strings"
	"testing"

	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
)

func TestChooseBestPorts(t *testing.T) {
	tests := []struct {
		name     string
		src, tgt geom.Box
		want     PortPair
	}{
		{
			"target right of source",
			geom.Box{X: 0, Y: 0, Width: 100, Height: 50},
			geom.Box{X: 400, Y: 0, Width: 100, Height: 50},
			PortPair{Exit: Port{1, 0.5}, Entry: Port{0, 0.5}},
		},
		{
			"target left of source",
			geom.Box{X: 400, Y: 0, Width: 100, Height: 50},
			geom.Box{X: 0, Y: 0, Width: 100, Height: 50},
			PortPair{Exit: Port{0, 0.5}, Entry: Port{1, 0.5}},
		},
		{
			"target below source",
			geom.Box{X: 0, Y: 0, Width: 100, Height: 50},
			geom.Box{X: 0, Y: 300, Width: 100, Height: 50},
			PortPair{Exit: Port{0.5, 1}, Entry: Port{0.5, 0}},
		},
		{
			"diagonal prefers vertical",
			geom.Box{X: 0, Y: 0, Width: 100, Height: 50},
			geom.Box{X: 150, Y: 200, Width: 100, Height: 50},
			PortPair{Exit: Port{0.5, 1}, Entry: Port{0.5, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseBestPorts(tt.src, tt.tgt, "auto"); got != tt.want {
				t.Errorf("ChooseBestPorts = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDistributePortsForBatchFanOut(t *testing.T) {
	// One source fanning to three targets stacked vertically on its right.
	bounds := map[string]geom.Box{
		"src": {X: 0, Y: 200, Width: 120, Height: 60},
		"t1":  {X: 400, Y: 0, Width: 120, Height: 60},
		"t2":  {X: 400, Y: 200, Width: 120, Height: 60},
		"t3":  {X: 400, Y: 400, Width: 120, Height: 60},
	}
	conns := []Connection{
		{Source: "src", Target: "t2"},
		{Source: "src", Target: "t3"},
		{Source: "src", Target: "t1"},
	}

	pairs := DistributePortsForBatch(conns, bounds)
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}

	// All three exit on the right side.
	for i, p := range pairs {
		if p.Exit.X != 1 {
			t.Errorf("connection %d should exit right, got %+v", i, p.Exit)
		}
	}

	// Exit ports are distinct and ordered top-to-bottom by target position:
	// t1 (topmost target) gets the smallest Y, t3 the largest.
	exitByTarget := map[string]Port{}
	for i, conn := range conns {
		exitByTarget[conn.Target] = pairs[i].Exit
	}
	y1, y2, y3 := exitByTarget["t1"].Y, exitByTarget["t2"].Y, exitByTarget["t3"].Y
	if !(y1 < y2 && y2 < y3) {
		t.Errorf("exit ports not ordered top-to-bottom: t1=%v t2=%v t3=%v", y1, y2, y3)
	}
}

func TestDistributePortsSingleEdgeUsesCenter(t *testing.T) {
	bounds := map[string]geom.Box{
		"a": {X: 0, Y: 0, Width: 100, Height: 50},
		"b": {X: 400, Y: 0, Width: 100, Height: 50},
	}
	pairs := DistributePortsForBatch([]Connection{{Source: "a", Target: "b"}}, bounds)
	if pairs[0].Exit != (Port{1, 0.5}) || pairs[0].Entry != (Port{0, 0.5}) {
		t.Errorf("single edge should use side centers, got %+v", pairs[0])
	}
}

func TestDistributePortsUnknownBoundsFallback(t *testing.T) {
	pairs := DistributePortsForBatch([]Connection{{Source: "x", Target: "y"}}, map[string]geom.Box{})
	if pairs[0].Exit != (Port{1, 0.5}) {
		t.Errorf("unknown shapes should fall back to right exit, got %+v", pairs[0].Exit)
	}
}

func TestAssignPorts(t *testing.T) {
	d := diagram.New("ports")
	a := d.AddShape("A", 0, 0, 100, 50, "")
	b := d.AddShape("B", 400, 0, 100, 50, "")
	d.AddConnector(a, b, "", "")
	d.AddConnector("missing", b, "", "")

	if got := AssignPorts(d); got != 1 {
		t.Fatalf("AssignPorts = %d, want 1 (connector with missing endpoint skipped)", got)
	}

	style := d.Connectors[0].Style
	for _, param := range []string{"exitX=1;", "exitY=0.5;", "entryX=0;", "entryY=0.5;"} {
		if !strings.Contains(style, param) {
			t.Errorf("style missing %q: %s", param, style)
		}
	}
	if d.Connectors[1].Style != diagram.DefaultConnectorStyle {
		t.Errorf("skipped connector style should be untouched: %s", d.Connectors[1].Style)
	}
}
