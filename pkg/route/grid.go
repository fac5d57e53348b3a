// Package route computes orthogonal connector paths that avoid shape
// bounding boxes. Routing builds a sparse visibility grid from obstacle
// edges and runs an A* search over it with a bend penalty; a separate
// optimizer polishes already-routed paths (straightening, detour removal,
// channel centering, parallel edge separation).
package route

import (
	"sort"

	"laygrid/pkg/geom"
)

// visibilityGrid is the sparse routing lattice. Candidate X and Y lines
// come from obstacle edges pushed out by the clearance margin, plus the
// source and target centers and their expanded edges. A node is a crossing
// of one X and one Y line.
type visibilityGrid struct {
	xs        []float64
	ys        []float64
	obstacles []geom.Box
	margin    float64
}

type gridNode struct {
	xi, yi int
}

// buildGrid collects the candidate coordinates for a single route.
// All obstacle-derived lines are grid-snapped so routed paths land on the
// diagram grid without a separate pass.
func buildGrid(src, tgt geom.Box, obstacles []geom.Box, margin float64, snap int) *visibilityGrid {
	xs := map[float64]bool{src.CenterX(): true, tgt.CenterX(): true}
	ys := map[float64]bool{src.CenterY(): true, tgt.CenterY(): true}

	for _, obs := range obstacles {
		xs[geom.SnapToGrid(obs.X-margin, snap)] = true
		xs[geom.SnapToGrid(obs.Right()+margin, snap)] = true
		ys[geom.SnapToGrid(obs.Y-margin, snap)] = true
		ys[geom.SnapToGrid(obs.Bottom()+margin, snap)] = true
	}
	for _, b := range []geom.Box{src, tgt} {
		xs[geom.SnapToGrid(b.X-margin, snap)] = true
		xs[geom.SnapToGrid(b.Right()+margin, snap)] = true
		ys[geom.SnapToGrid(b.Y-margin, snap)] = true
		ys[geom.SnapToGrid(b.Bottom()+margin, snap)] = true
	}

	g := &visibilityGrid{obstacles: obstacles, margin: margin}
	for x := range xs {
		g.xs = append(g.xs, x)
	}
	for y := range ys {
		g.ys = append(g.ys, y)
	}
	sort.Float64s(g.xs)
	sort.Float64s(g.ys)
	return g
}

// at returns the coordinates of a grid node.
func (g *visibilityGrid) at(n gridNode) (float64, float64) {
	return g.xs[n.xi], g.ys[n.yi]
}

// blocked reports whether a point lies strictly inside any obstacle
// expanded by half the margin.
func (g *visibilityGrid) blocked(px, py float64) bool {
	h := g.margin / 2
	for _, obs := range g.obstacles {
		if obs.X-h < px && px < obs.Right()+h &&
			obs.Y-h < py && py < obs.Bottom()+h {
			return true
		}
	}
	return false
}

// segmentBlocked reports whether an orthogonal segment passes through any
// obstacle expanded by half the margin.
func (g *visibilityGrid) segmentBlocked(x1, y1, x2, y2 float64) bool {
	h := g.margin / 2
	for _, obs := range g.obstacles {
		ex := geom.Box{
			X:      obs.X - h,
			Y:      obs.Y - h,
			Width:  obs.Width + g.margin,
			Height: obs.Height + g.margin,
		}
		if geom.OrthoSegmentHitsBox(geom.Point{X: x1, Y: y1}, geom.Point{X: x2, Y: y2}, ex) {
			return true
		}
	}
	return false
}

// closestNode finds the unblocked grid node nearest to a point by Manhattan
// distance. Falls back to the origin node when everything is blocked.
func (g *visibilityGrid) closestNode(px, py float64) gridNode {
	best := gridNode{}
	bestDist := -1.0
	for xi := range g.xs {
		for yi := range g.ys {
			gx, gy := g.xs[xi], g.ys[yi]
			if g.blocked(gx, gy) {
				continue
			}
			d := abs(gx-px) + abs(gy-py)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = gridNode{xi: xi, yi: yi}
			}
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
