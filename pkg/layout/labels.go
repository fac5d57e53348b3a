package layout

import (
	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
)

// Candidate label offsets tried in order when the default placement
// collides with a shape: above, below, right, left, then the diagonals.
var labelOffsetCandidates = []geom.Point{
	{X: 0, Y: -20},
	{X: 0, Y: 20},
	{X: 20, Y: 0},
	{X: -20, Y: 0},
	{X: 15, Y: -15},
	{X: -15, Y: -15},
	{X: 15, Y: 15},
	{X: -15, Y: 15},
}

// PositionEdgeLabels nudges connector labels away from shapes they would
// cover. Each labeled connector gets the offset candidate with the fewest
// remaining collisions; labels that are already clear keep their offset.
// Returns the number of labels whose offset changed.
func PositionEdgeLabels(d *diagram.Diagram, margin float64) int {
	bounds := d.Bounds()
	count := 0

	for _, c := range d.Connectors {
		if c.Label == "" {
			continue
		}
		srcB, okS := bounds[c.Source]
		tgtB, okT := bounds[c.Target]
		if !okS || !okT {
			continue
		}

		if c.LabelOffset == nil {
			c.LabelOffset = &geom.Point{X: 0, Y: -10}
		}
		original := *c.LabelOffset

		labelW := max(float64(len(c.Label))*7, 30)
		const labelH = 16.0

		if countLabelCollisions(srcB, tgtB, *c.LabelOffset, labelW, labelH, bounds, margin) == 0 {
			continue
		}

		best := original
		minCollisions := -1
		for _, offset := range labelOffsetCandidates {
			n := countLabelCollisions(srcB, tgtB, offset, labelW, labelH, bounds, margin)
			if minCollisions < 0 || n < minCollisions {
				minCollisions = n
				best = offset
			}
			if n == 0 {
				break
			}
		}

		*c.LabelOffset = best
		if best != original {
			count++
		}
	}
	return count
}

// countLabelCollisions estimates the label box at the edge midpoint plus
// offset and counts the shapes it intersects.
func countLabelCollisions(src, tgt geom.Box, offset geom.Point, labelW, labelH float64, bounds map[string]geom.Box, margin float64) int {
	midX := (src.CenterX()+tgt.CenterX())/2 + offset.X
	midY := (src.CenterY()+tgt.CenterY())/2 + offset.Y

	labelBox := geom.Box{
		X:      midX - labelW/2,
		Y:      midY - labelH/2,
		Width:  labelW,
		Height: labelH,
	}

	n := 0
	for _, b := range bounds {
		if labelBox.Intersects(b, margin) {
			n++
		}
	}
	return n
}
