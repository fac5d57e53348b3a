package layout

import (
	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
)

// removeNodeOverlaps pushes overlapping layout nodes apart along the axis
// with the smaller overlap until no pair overlaps or the iteration cap is
// hit, then snaps positions to the grid. Padding widens every node so the
// result keeps a minimum gap.
func removeNodeOverlaps(nodes []*layoutNode, cfg *Config) {
	padding := cfg.OverlapPadding

	for iter := 0; iter < cfg.MaxOverlapIterations; iter++ {
		moved := false
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				a, b := nodes[i], nodes[j]
				overlapX, overlapY := nodeOverlap(a, b, padding)
				if overlapX <= 0 || overlapY <= 0 {
					continue
				}
				if overlapX < overlapY {
					push := overlapX/2 + 1
					if a.x < b.x {
						a.x -= push
						b.x += push
					} else {
						a.x += push
						b.x -= push
					}
				} else {
					push := overlapY/2 + 1
					if a.y < b.y {
						a.y -= push
						b.y += push
					} else {
						a.y += push
						b.y -= push
					}
				}
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	for _, n := range nodes {
		n.x = geom.SnapToGrid(n.x, cfg.GridSize)
		n.y = geom.SnapToGrid(n.y, cfg.GridSize)
	}
}

// nodeOverlap returns the per-axis overlap between two padded nodes.
// Positive values on both axes mean the nodes intersect.
func nodeOverlap(a, b *layoutNode, padding float64) (float64, float64) {
	aRight := a.x + a.width + padding
	bRight := b.x + b.width + padding
	aBottom := a.y + a.height + padding
	bBottom := b.y + b.height + padding

	overlapX := min(aRight, bRight) - max(a.x, b.x)
	overlapY := min(aBottom, bBottom) - max(a.y, b.y)
	return overlapX, overlapY
}

// FindOverlaps returns every pair of shapes whose absolute bounds intersect
// within the given margin. Pair order follows the diagram's shape order.
func FindOverlaps(d *diagram.Diagram, margin float64) [][2]string {
	bounds := d.Bounds()
	var overlaps [][2]string
	for i := 0; i < len(d.Shapes); i++ {
		for j := i + 1; j < len(d.Shapes); j++ {
			a := bounds[d.Shapes[i].ID]
			b := bounds[d.Shapes[j].ID]
			if a.Intersects(b, margin) {
				overlaps = append(overlaps, [2]string{d.Shapes[i].ID, d.Shapes[j].ID})
			}
		}
	}
	return overlaps
}

// ResolveOverlaps pushes apart overlapping shapes in a diagram until every
// pair keeps at least margin clearance or maxIterations passes elapse.
// Only shapes that actually overlap move; positions are grid-snapped on
// each push. Returns the number of push operations applied.
func ResolveOverlaps(d *diagram.Diagram, margin float64, maxIterations int) int {
	if maxIterations <= 0 {
		maxIterations = DefaultConfig().MaxOverlapIterations
	}
	grid := d.Grid()
	moved := 0

	for iter := 0; iter < maxIterations; iter++ {
		bounds := d.Bounds()
		anyOverlap := false

		for i := 0; i < len(d.Shapes); i++ {
			for j := i + 1; j < len(d.Shapes); j++ {
				a, b := d.Shapes[i], d.Shapes[j]
				ab, bb := bounds[a.ID], bounds[b.ID]
				if !ab.Intersects(bb, margin) {
					continue
				}
				anyOverlap = true

				dx := bb.CenterX() - ab.CenterX()
				dy := bb.CenterY() - ab.CenterY()
				overlapX := (ab.Width/2 + bb.Width/2 + margin) - abs(dx)
				overlapY := (ab.Height/2 + bb.Height/2 + margin) - abs(dy)
				if overlapX <= 0 || overlapY <= 0 {
					continue
				}

				if overlapX < overlapY {
					push := overlapX/2 + 1
					if dx >= 0 {
						a.X = geom.SnapToGrid(a.X-push, grid)
						b.X = geom.SnapToGrid(b.X+push, grid)
					} else {
						a.X = geom.SnapToGrid(a.X+push, grid)
						b.X = geom.SnapToGrid(b.X-push, grid)
					}
				} else {
					push := overlapY/2 + 1
					if dy >= 0 {
						a.Y = geom.SnapToGrid(a.Y-push, grid)
						b.Y = geom.SnapToGrid(b.Y+push, grid)
					} else {
						a.Y = geom.SnapToGrid(a.Y+push, grid)
						b.Y = geom.SnapToGrid(b.Y-push, grid)
					}
				}
				moved++
			}
		}

		if !anyOverlap {
			break
		}
	}
	return moved
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
