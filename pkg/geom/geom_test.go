package geom

import "testing"

func TestBoxAccessors(t *testing.T) {
	b := Box{X: 10, Y: 20, Width: 100, Height: 40}
	if b.Right() != 110 {
		t.Errorf("Right() = %v, want 110", b.Right())
	}
	if b.Bottom() != 60 {
		t.Errorf("Bottom() = %v, want 60", b.Bottom())
	}
	if b.CenterX() != 60 || b.CenterY() != 40 {
		t.Errorf("center = (%v,%v), want (60,40)", b.CenterX(), b.CenterY())
	}
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Box
		margin float64
		want   bool
	}{
		{"overlapping", Box{0, 0, 100, 100}, Box{50, 50, 100, 100}, 0, true},
		{"disjoint", Box{0, 0, 100, 100}, Box{200, 0, 100, 100}, 0, false},
		{"touching edges", Box{0, 0, 100, 100}, Box{100, 0, 100, 100}, 0, false},
		{"within margin", Box{0, 0, 100, 100}, Box{110, 0, 100, 100}, 20, true},
		{"outside margin", Box{0, 0, 100, 100}, Box{130, 0, 100, 100}, 20, false},
		{"contained", Box{0, 0, 100, 100}, Box{25, 25, 10, 10}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b, tt.margin); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			// Intersection is symmetric.
			if got := tt.b.Intersects(tt.a, tt.margin); got != tt.want {
				t.Errorf("reverse Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsPoint(t *testing.T) {
	b := Box{X: 0, Y: 0, Width: 100, Height: 100}
	if !b.ContainsPoint(Point{50, 50}, 0) {
		t.Error("center should be contained")
	}
	if !b.ContainsPoint(Point{100, 100}, 0) {
		t.Error("boundary should be contained by inclusive test")
	}
	if b.ContainsPointStrict(Point{100, 100}, 0) {
		t.Error("boundary should not be contained by strict test")
	}
	if !b.ContainsPoint(Point{105, 50}, 10) {
		t.Error("point within margin should be contained")
	}
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		v    float64
		grid int
		want float64
	}{
		{0, 10, 0},
		{4, 10, 0},
		{5, 10, 10},
		{14.9, 10, 10},
		{15, 10, 20},
		{-7, 10, -10},
		{123, 0, 123}, // disabled grid
	}
	for _, tt := range tests {
		if got := SnapToGrid(tt.v, tt.grid); got != tt.want {
			t.Errorf("SnapToGrid(%v, %d) = %v, want %v", tt.v, tt.grid, got, tt.want)
		}
	}
}

func TestSegmentIntersectsBox(t *testing.T) {
	box := Box{X: 180, Y: 80, Width: 100, Height: 100}

	// Horizontal segment straight through the middle.
	if !SegmentIntersectsBox(Point{0, 100}, Point{400, 100}, box) {
		t.Error("segment through box should intersect")
	}
	// Segment passing above.
	if SegmentIntersectsBox(Point{0, 50}, Point{400, 50}, box) {
		t.Error("segment above box should not intersect")
	}
	// Diagonal crossing a corner region.
	if !SegmentIntersectsBox(Point{100, 0}, Point{300, 200}, box) {
		t.Error("diagonal through box should intersect")
	}
	// Segment entirely inside.
	if !SegmentIntersectsBox(Point{200, 100}, Point{220, 120}, box) {
		t.Error("segment inside box should intersect")
	}
}

func TestOrthoSegmentHitsBox(t *testing.T) {
	box := Box{X: 100, Y: 100, Width: 50, Height: 50}
	if !OrthoSegmentHitsBox(Point{120, 0}, Point{120, 300}, box) {
		t.Error("vertical segment through box should hit")
	}
	if OrthoSegmentHitsBox(Point{90, 0}, Point{90, 300}, box) {
		t.Error("vertical segment left of box should not hit")
	}
	if !OrthoSegmentHitsBox(Point{0, 120}, Point{300, 120}, box) {
		t.Error("horizontal segment through box should hit")
	}
}

func TestAnyBoxOnSegment(t *testing.T) {
	boxes := []Box{{180, 80, 100, 100}}
	if !AnyBoxOnSegment(Point{0, 100}, Point{400, 100}, boxes, 15) {
		t.Error("blocked corridor should be detected")
	}
	if AnyBoxOnSegment(Point{0, 300}, Point{400, 300}, boxes, 15) {
		t.Error("clear corridor should not be detected")
	}
	// The margin widens the obstacle: a segment skimming the edge is blocked.
	if !AnyBoxOnSegment(Point{0, 75}, Point{400, 75}, boxes, 15) {
		t.Error("segment within margin of box should be detected")
	}
}
