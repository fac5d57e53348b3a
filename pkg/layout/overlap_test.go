package layout

import (
	"math"
	"testing"

	"laygrid/pkg/diagram"
)

func TestFindOverlaps(t *testing.T) {
	d := diagram.New("overlaps")
	a := d.AddShape("A", 0, 0, 100, 100, "")
	b := d.AddShape("B", 50, 50, 100, 100, "")
	d.AddShape("C", 400, 400, 100, 100, "")

	pairs := FindOverlaps(d, 0)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 overlapping pair, got %d", len(pairs))
	}
	if pairs[0] != [2]string{a, b} {
		t.Errorf("wrong pair reported: %v", pairs[0])
	}
}

func TestResolveOverlapsSeparatesShapes(t *testing.T) {
	d := diagram.New("resolve")
	d.AddShape("A", 100, 100, 120, 60, "")
	d.AddShape("B", 110, 105, 120, 60, "")
	d.AddShape("C", 105, 110, 120, 60, "")

	moved := ResolveOverlaps(d, 20, 50)
	if moved == 0 {
		t.Fatal("expected shapes to move")
	}

	// The margin-padded boxes must no longer intersect.
	if pairs := FindOverlaps(d, 20); len(pairs) != 0 {
		t.Errorf("overlaps remain after resolution: %v", pairs)
	}

	// Every written coordinate stays on the grid.
	for _, s := range d.Shapes {
		if math.Mod(s.X, 10) != 0 || math.Mod(s.Y, 10) != 0 {
			t.Errorf("shape %q at (%v,%v) not on grid", s.Label, s.X, s.Y)
		}
	}
}

func TestResolveOverlapsLeavesSeparatedShapesAlone(t *testing.T) {
	d := diagram.New("noop")
	d.AddShape("A", 0, 0, 100, 50, "")
	d.AddShape("B", 300, 0, 100, 50, "")

	if moved := ResolveOverlaps(d, 20, 50); moved != 0 {
		t.Errorf("non-overlapping shapes should not move, got %d pushes", moved)
	}
	if d.Shapes[0].X != 0 || d.Shapes[1].X != 300 {
		t.Error("positions changed without overlap")
	}
}
