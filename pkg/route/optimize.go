package route

import (
	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
)

// OptimizeOptions tunes the edge path optimizer. Zero fields take the
// defaults noted on each field.
type OptimizeOptions struct {
	// Margin is the clearance kept around shapes. Default 15.
	Margin float64

	// StraightenThreshold is the maximum deviation in pixels before two
	// consecutive points are considered nearly aligned and snapped onto a
	// shared axis. Default 8.
	StraightenThreshold float64

	// NudgeSpacing is the gap enforced between parallel edges sharing a
	// corridor. Default 10.
	NudgeSpacing float64
}

func (o OptimizeOptions) withDefaults() OptimizeOptions {
	if o.Margin <= 0 {
		o.Margin = 15
	}
	if o.StraightenThreshold <= 0 {
		o.StraightenThreshold = 8
	}
	if o.NudgeSpacing <= 0 {
		o.NudgeSpacing = 10
	}
	return o
}

// Optimize improves already-routed connector paths. Per edge it removes
// collinear waypoints, straightens near-axis-aligned segments, drops
// detour waypoints whose neighbors connect cleanly, and re-centers
// segments within the channel between their flanking obstacles. A final
// cross-edge pass nudges apart edges stacked in the same corridor. All
// surviving waypoints are grid-snapped.
//
// Edges without waypoints are left alone. Returns the number of connectors
// whose waypoints changed.
func Optimize(d *diagram.Diagram, opts OptimizeOptions) int {
	opts = opts.withDefaults()
	bounds := d.Bounds()
	if len(bounds) == 0 {
		return 0
	}
	grid := d.Grid()
	modified := 0

	var edgeCells []*diagram.Connector
	for _, c := range d.Connectors {
		if c.Source != "" && c.Target != "" {
			edgeCells = append(edgeCells, c)
		}
	}

	for _, c := range edgeCells {
		srcB, okS := bounds[c.Source]
		tgtB, okT := bounds[c.Target]
		if !okS || !okT || len(c.Waypoints) == 0 {
			continue
		}

		var obstacles []geom.Box
		for _, s := range d.Shapes {
			if s.ID == c.Source || s.ID == c.Target {
				continue
			}
			obstacles = append(obstacles, bounds[s.ID])
		}

		original := append([]geom.Point(nil), c.Waypoints...)

		full := make([]geom.Point, 0, len(c.Waypoints)+2)
		full = append(full, srcB.Center())
		full = append(full, c.Waypoints...)
		full = append(full, tgtB.Center())

		full = removeCollinear(full)
		full = straighten(full, opts.StraightenThreshold)
		full = shorten(full, obstacles, opts.Margin)
		full = centerChannels(full, obstacles, opts.Margin)

		waypoints := full[1 : len(full)-1]
		snapped := make([]geom.Point, len(waypoints))
		for i, p := range waypoints {
			snapped[i] = geom.SnapPoint(p, grid)
		}

		if !pointsEqual(snapped, original) {
			c.Waypoints = snapped
			modified++
		}
	}

	modified += separateParallelEdges(edgeCells, bounds, opts.NudgeSpacing, grid)
	return modified
}

func pointsEqual(a, b []geom.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// removeCollinear drops intermediate points that sit on a straight run of
// the path, keeping only real bends.
func removeCollinear(path []geom.Point) []geom.Point {
	if len(path) <= 2 {
		return path
	}
	result := []geom.Point{path[0]}
	for i := 1; i < len(path)-1; i++ {
		p, c, n := path[i-1], path[i], path[i+1]
		sameX := abs(p.X-c.X) < 1 && abs(c.X-n.X) < 1
		sameY := abs(p.Y-c.Y) < 1 && abs(c.Y-n.Y) < 1
		if !sameX && !sameY {
			result = append(result, c)
		}
	}
	return append(result, path[len(path)-1])
}

// straighten snaps nearly vertical or nearly horizontal steps onto the
// exact axis of the preceding point, turning slightly diagonal segments
// into clean orthogonal ones.
func straighten(path []geom.Point, threshold float64) []geom.Point {
	if len(path) <= 1 {
		return path
	}
	result := []geom.Point{path[0]}
	for i := 1; i < len(path); i++ {
		prev := result[len(result)-1]
		c := path[i]
		switch {
		case abs(c.X-prev.X) < threshold && abs(c.Y-prev.Y) >= threshold:
			c.X = prev.X
		case abs(c.Y-prev.Y) < threshold && abs(c.X-prev.X) >= threshold:
			c.Y = prev.Y
		}
		result = append(result, c)
	}
	return result
}

// shorten removes waypoints whose neighbors can be joined directly without
// crossing an obstacle, repeating until no further removal applies.
func shorten(path []geom.Point, obstacles []geom.Box, margin float64) []geom.Point {
	if len(path) <= 3 {
		return path
	}
	changed := true
	for changed {
		changed = false
		i := 1
		for i < len(path)-1 {
			if !geom.AnyBoxOnSegment(path[i-1], path[i+1], obstacles, margin) {
				path = append(path[:i], path[i+1:]...)
				changed = true
				// Re-test the point now at index i.
			} else {
				i++
			}
		}
	}
	return path
}

// centerChannels shifts each orthogonal segment to the midpoint of the
// channel between its nearest flanking obstacles. Segments only move when
// the channel is at least twice the margin wide and the shift stays under
// 40% of the channel width, so narrow or already-centered corridors are
// left alone.
func centerChannels(path []geom.Point, obstacles []geom.Box, margin float64) []geom.Point {
	if len(path) < 2 {
		return path
	}
	result := append([]geom.Point(nil), path...)

	for i := 0; i < len(result)-1; i++ {
		a, b := result[i], result[i+1]

		if abs(a.X-b.X) < 1 {
			// Vertical segment: center its X between neighbors.
			segX := a.X
			minY, maxY := min(a.Y, b.Y), max(a.Y, b.Y)

			left, right := -1e9, 1e9
			for _, obs := range obstacles {
				if obs.Bottom()+margin < minY || obs.Y-margin > maxY {
					continue
				}
				if obs.Right()+margin <= segX {
					left = max(left, obs.Right()+margin)
				} else if obs.X-margin >= segX {
					right = min(right, obs.X-margin)
				}
			}
			if left > -1e9 && right < 1e9 {
				center := (left + right) / 2
				width := right - left
				if width >= margin*2 && abs(center-segX) < width*0.4 {
					result[i].X = center
					result[i+1].X = center
				}
			}
		} else if abs(a.Y-b.Y) < 1 {
			// Horizontal segment: center its Y between neighbors.
			segY := a.Y
			minX, maxX := min(a.X, b.X), max(a.X, b.X)

			top, bottom := -1e9, 1e9
			for _, obs := range obstacles {
				if obs.Right()+margin < minX || obs.X-margin > maxX {
					continue
				}
				if obs.Bottom()+margin <= segY {
					top = max(top, obs.Bottom()+margin)
				} else if obs.Y-margin >= segY {
					bottom = min(bottom, obs.Y-margin)
				}
			}
			if top > -1e9 && bottom < 1e9 {
				center := (top + bottom) / 2
				height := bottom - top
				if height >= margin*2 && abs(center-segY) < height*0.4 {
					result[i].Y = center
					result[i+1].Y = center
				}
			}
		}
	}
	return result
}

// pathSegment is one orthogonal piece of an edge's full path, used to find
// edges sharing a corridor.
type pathSegment struct {
	edgeIdx    int
	pointIdx   int  // index of the segment's first point in the full path
	horizontal bool // false means vertical
	fixedCoord float64
	rangeMin   float64
	rangeMax   float64
}

// separateParallelEdges spreads edges that run through the same corridor
// so they no longer stack. Segments cluster when they share orientation,
// lie within twice the spacing of each other, and their ranges overlap;
// each cluster is spread evenly around its average coordinate. Returns the
// number of edges whose waypoints moved.
func separateParallelEdges(edges []*diagram.Connector, bounds map[string]geom.Box, spacing float64, grid int) int {
	if len(edges) < 2 {
		return 0
	}
	modified := 0

	var segments []pathSegment
	for ei, c := range edges {
		if len(c.Waypoints) == 0 {
			continue
		}
		srcB, okS := bounds[c.Source]
		tgtB, okT := bounds[c.Target]
		if !okS || !okT {
			continue
		}

		full := make([]geom.Point, 0, len(c.Waypoints)+2)
		full = append(full, srcB.Center())
		full = append(full, c.Waypoints...)
		full = append(full, tgtB.Center())

		for si := 0; si < len(full)-1; si++ {
			a, b := full[si], full[si+1]
			if abs(a.Y-b.Y) < 1 {
				segments = append(segments, pathSegment{
					edgeIdx: ei, pointIdx: si,
					horizontal: true, fixedCoord: a.Y,
					rangeMin: min(a.X, b.X), rangeMax: max(a.X, b.X),
				})
			} else if abs(a.X-b.X) < 1 {
				segments = append(segments, pathSegment{
					edgeIdx: ei, pointIdx: si,
					horizontal: false, fixedCoord: a.X,
					rangeMin: min(a.Y, b.Y), rangeMax: max(a.Y, b.Y),
				})
			}
		}
	}

	processed := make([]bool, len(segments))
	for i := range segments {
		if processed[i] {
			continue
		}
		cluster := []int{i}
		for j := i + 1; j < len(segments); j++ {
			if processed[j] {
				continue
			}
			si, sj := segments[i], segments[j]
			if si.horizontal != sj.horizontal || si.edgeIdx == sj.edgeIdx {
				continue
			}
			if abs(si.fixedCoord-sj.fixedCoord) > spacing*2 {
				continue
			}
			if si.rangeMax < sj.rangeMin || sj.rangeMax < si.rangeMin {
				continue
			}
			cluster = append(cluster, j)
			processed[j] = true
		}
		if len(cluster) < 2 {
			continue
		}
		processed[i] = true

		avg := 0.0
		for _, k := range cluster {
			avg += segments[k].fixedCoord
		}
		avg /= float64(len(cluster))
		startOffset := avg - float64(len(cluster)-1)*spacing/2

		for idx, k := range cluster {
			seg := segments[k]
			newCoord := geom.SnapToGrid(startOffset+float64(idx)*spacing, grid)
			if abs(newCoord-seg.fixedCoord) < 1 {
				continue
			}

			pts := edges[seg.edgeIdx].Waypoints
			if len(pts) == 0 {
				continue
			}

			// pointIdx counts within the full path, which starts at the
			// source center; waypoint indices are shifted by one.
			wpStart := seg.pointIdx - 1
			wpEnd := seg.pointIdx

			changed := false
			if seg.horizontal {
				if wpStart >= 0 && wpStart < len(pts) {
					pts[wpStart].Y = newCoord
					changed = true
				}
				if wpEnd >= 0 && wpEnd < len(pts) {
					pts[wpEnd].Y = newCoord
					changed = true
				}
			} else {
				if wpStart >= 0 && wpStart < len(pts) {
					pts[wpStart].X = newCoord
					changed = true
				}
				if wpEnd >= 0 && wpEnd < len(pts) {
					pts[wpEnd].X = newCoord
					changed = true
				}
			}
			if changed {
				modified++
			}
		}
	}
	return modified
}
