package route

import (
	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
)

// Edges reroutes every connector in the diagram so that its path avoids
// all shape bounding boxes except the connector's own endpoints. Existing
// waypoints are replaced. Returns the number of connectors rerouted.
func Edges(d *diagram.Diagram, margin float64) int {
	bounds := d.Bounds()
	if len(bounds) == 0 {
		return 0
	}

	count := 0
	for _, c := range d.Connectors {
		if c.Source == "" || c.Target == "" {
			continue
		}
		srcB, okS := bounds[c.Source]
		tgtB, okT := bounds[c.Target]
		if !okS || !okT {
			continue
		}

		var obstacles []geom.Box
		for _, s := range d.Shapes {
			if s.ID == c.Source || s.ID == c.Target {
				continue
			}
			obstacles = append(obstacles, bounds[s.ID])
		}

		c.Waypoints = Orthogonal(srcB, tgtB, obstacles, margin, d.Grid())
		count++
	}
	return count
}

// Orthogonal routes a single edge between two shapes around the given
// obstacles. A straight center-to-center line that clears every obstacle
// needs no waypoints; otherwise the path comes from an A* search over the
// visibility grid, simplified down to its bends. When the search fails the
// route falls back to a wide detour around all obstacles.
//
// Returned waypoints exclude the endpoints on the shapes themselves and
// are snapped to the diagram grid.
func Orthogonal(src, tgt geom.Box, obstacles []geom.Box, margin float64, snap int) []geom.Point {
	start := src.Center()
	end := tgt.Center()

	if !geom.AnyBoxOnSegment(start, end, obstacles, margin) {
		return nil
	}

	grid := buildGrid(src, tgt, obstacles, margin, snap)
	from := grid.closestNode(start.X, start.Y)
	to := grid.closestNode(end.X, end.Y)
	if from == to {
		return nil
	}

	nodes, ok := astar(grid, from, to)
	if !ok {
		return fallbackRoute(src, tgt, obstacles, margin, snap)
	}

	path := make([]geom.Point, len(nodes))
	for i, n := range nodes {
		x, y := grid.at(n)
		path[i] = geom.Point{X: x, Y: y}
	}

	waypoints := simplifyPath(path)
	for i := range waypoints {
		waypoints[i] = geom.SnapPoint(waypoints[i], snap)
	}
	return waypoints
}

// simplifyPath drops points that do not bend the path, then strips the
// first and last points (those sit at the shape exit and entry, which the
// renderer supplies itself).
func simplifyPath(path []geom.Point) []geom.Point {
	if len(path) <= 2 {
		return nil
	}

	result := []geom.Point{path[0]}
	for i := 1; i < len(path)-1; i++ {
		p, c, n := path[i-1], path[i], path[i+1]
		dx1 := c.X - p.X
		dy1 := c.Y - p.Y
		dx2 := n.X - c.X
		dy2 := n.Y - c.Y
		if (abs(dx1) > 0.5 && abs(dy2) > 0.5) || (abs(dy1) > 0.5 && abs(dx2) > 0.5) {
			result = append(result, c)
		}
	}
	result = append(result, path[len(path)-1])

	if len(result) >= 2 {
		return result[1 : len(result)-1]
	}
	return nil
}

// fallbackRoute produces a 3-segment detour that swings wide of every
// obstacle, choosing whichever clear corridor lies closer to the midpoint
// between the shapes.
func fallbackRoute(src, tgt geom.Box, obstacles []geom.Box, margin float64, snap int) []geom.Point {
	routeAbove := src.CenterY()
	routeBelow := src.CenterY()
	if len(obstacles) > 0 {
		minTop := obstacles[0].Y
		maxBottom := obstacles[0].Bottom()
		for _, o := range obstacles[1:] {
			if o.Y < minTop {
				minTop = o.Y
			}
			if o.Bottom() > maxBottom {
				maxBottom = o.Bottom()
			}
		}
		routeAbove = minTop - margin*2
		routeBelow = maxBottom + margin*2
	}

	midY := (src.CenterY() + tgt.CenterY()) / 2
	routeY := routeBelow
	if abs(routeAbove-midY) < abs(routeBelow-midY) {
		routeY = routeAbove
	}

	return []geom.Point{
		{X: geom.SnapToGrid(src.CenterX(), snap), Y: geom.SnapToGrid(routeY, snap)},
		{X: geom.SnapToGrid(tgt.CenterX(), snap), Y: geom.SnapToGrid(routeY, snap)},
	}
}
