// Package geom provides the geometric primitives shared by the layout,
// routing, and optimization packages: points, axis-aligned bounding boxes,
// and grid snapping.
//
// All coordinates are in diagram units with the origin at the top-left and
// Y growing downward. Boxes are defined by their top-left corner plus
// width/height; a valid box has non-negative dimensions.
package geom

import "math"

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Box is an axis-aligned bounding box defined by its top-left corner.
type Box struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Right returns the X coordinate of the box's right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the Y coordinate of the box's bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// CenterX returns the X coordinate of the box's center.
func (b Box) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the Y coordinate of the box's center.
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

// Center returns the box's center point.
func (b Box) Center() Point { return Point{X: b.CenterX(), Y: b.CenterY()} }

// Expand returns a copy of the box grown by margin on every side.
// A negative margin shrinks the box; dimensions may go negative, which
// callers treat as an empty box.
func (b Box) Expand(margin float64) Box {
	return Box{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// Intersects reports whether two boxes overlap when each is required to keep
// at least margin clearance from the other. With margin 0 boxes that merely
// touch edges do not intersect.
func (b Box) Intersects(other Box, margin float64) bool {
	return !(b.Right()+margin <= other.X ||
		other.Right()+margin <= b.X ||
		b.Bottom()+margin <= other.Y ||
		other.Bottom()+margin <= b.Y)
}

// ContainsPoint reports whether the point lies inside the box expanded by
// margin. Points exactly on the expanded boundary are contained.
func (b Box) ContainsPoint(p Point, margin float64) bool {
	return b.X-margin <= p.X && p.X <= b.Right()+margin &&
		b.Y-margin <= p.Y && p.Y <= b.Bottom()+margin
}

// ContainsPointStrict reports whether the point lies strictly inside the box
// expanded by margin, excluding the boundary.
func (b Box) ContainsPointStrict(p Point, margin float64) bool {
	return b.X-margin < p.X && p.X < b.Right()+margin &&
		b.Y-margin < p.Y && p.Y < b.Bottom()+margin
}

// SnapToGrid snaps a coordinate to the nearest multiple of the grid size.
// A grid size of zero or less leaves the value untouched.
func SnapToGrid(v float64, grid int) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/float64(grid)) * float64(grid)
}

// SnapPoint snaps both coordinates of a point to the grid.
func SnapPoint(p Point, grid int) Point {
	return Point{X: SnapToGrid(p.X, grid), Y: SnapToGrid(p.Y, grid)}
}

// SegmentIntersectsBox reports whether the segment from a to b crosses the
// box. It uses Liang-Barsky parametric clipping, so it works for arbitrary
// (not just orthogonal) segments.
func SegmentIntersectsBox(a, b Point, box Box) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - box.X},
		{dx, box.Right() - a.X},
		{-dy, a.Y - box.Y},
		{dy, box.Bottom() - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if math.Abs(p) < 1e-9 {
			if q < 0 {
				return false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t1 {
				t1 = t
			}
		}
	}
	return t0 <= t1
}

// OrthoSegmentHitsBox reports whether an axis-aligned segment passes through
// the box. Segments that are neither horizontal nor vertical fall back to
// the parametric test.
func OrthoSegmentHitsBox(a, b Point, box Box) bool {
	if math.Abs(a.X-b.X) < 0.5 { // vertical
		minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
		return box.X <= a.X && a.X <= box.Right() && maxY >= box.Y && minY <= box.Bottom()
	}
	if math.Abs(a.Y-b.Y) < 0.5 { // horizontal
		minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
		return box.Y <= a.Y && a.Y <= box.Bottom() && maxX >= box.X && minX <= box.Right()
	}
	return SegmentIntersectsBox(a, b, box)
}

// AnyBoxOnSegment reports whether the segment from a to b crosses any of the
// boxes once each has been expanded by margin.
func AnyBoxOnSegment(a, b Point, boxes []Box, margin float64) bool {
	for _, box := range boxes {
		if SegmentIntersectsBox(a, b, box.Expand(margin)) {
			return true
		}
	}
	return false
}
