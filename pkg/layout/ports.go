package layout

import (
	"sort"
	"strconv"

	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
)

// Port is a connection point on a shape's perimeter in relative 0..1
// coordinates: (0.5, 0) is top center, (1, 0.5) is right center.
type Port struct {
	X float64
	Y float64
}

// PortPair is the exit port on the source shape and the entry port on the
// target shape for one connection.
type PortPair struct {
	Exit  Port
	Entry Port
}

// Connection names the endpoints of one edge for batch port assignment.
type Connection struct {
	Source string
	Target string
}

// ChooseBestPorts picks the exit and entry ports for a single edge from
// the relative positions of its shapes. Direction forces the decision:
// "horizontal", "vertical", or "auto" to infer from the dominant axis.
func ChooseBestPorts(src, tgt geom.Box, direction string) PortPair {
	dx := tgt.CenterX() - src.CenterX()
	dy := tgt.CenterY() - src.CenterY()

	if direction == "" || direction == "auto" {
		switch {
		case abs(dx) > abs(dy)*1.5:
			direction = "horizontal"
		case abs(dy) > abs(dx)*1.5:
			direction = "vertical"
		case abs(dy) >= abs(dx):
			direction = "vertical"
		default:
			direction = "horizontal"
		}
	}

	if direction == "horizontal" {
		if dx >= 0 {
			return PortPair{Exit: Port{1, 0.5}, Entry: Port{0, 0.5}}
		}
		return PortPair{Exit: Port{0, 0.5}, Entry: Port{1, 0.5}}
	}
	if dy >= 0 {
		return PortPair{Exit: Port{0.5, 1}, Entry: Port{0.5, 0}}
	}
	return PortPair{Exit: Port{0.5, 0}, Entry: Port{0.5, 1}}
}

type side uint8

const (
	sideTop side = iota
	sideBottom
	sideLeft
	sideRight
)

// determineSide picks which side of each shape an edge should attach to.
// Near-diagonal connections prefer vertical attachment, which routes more
// cleanly orthogonally.
func determineSide(src, tgt geom.Box) (exit, entry side) {
	dx := tgt.CenterX() - src.CenterX()
	dy := tgt.CenterY() - src.CenterY()

	switch {
	case abs(dx) > abs(dy)*1.2:
		if dx >= 0 {
			return sideRight, sideLeft
		}
		return sideLeft, sideRight
	case abs(dy) > abs(dx)*1.2:
		if dy >= 0 {
			return sideBottom, sideTop
		}
		return sideTop, sideBottom
	default:
		if dy >= 0 {
			return sideBottom, sideTop
		}
		return sideTop, sideBottom
	}
}

func sideBasePort(s side) Port {
	switch s {
	case sideTop:
		return Port{0.5, 0}
	case sideBottom:
		return Port{0.5, 1}
	case sideLeft:
		return Port{0, 0.5}
	default:
		return Port{1, 0.5}
	}
}

// distributePortsOnSide spreads sibling edges along one side instead of
// stacking them at its center. Positions run from 0.15 to 0.85 so ports
// stay clear of the corners.
func distributePortsOnSide(s side, count, index int) Port {
	if count <= 1 {
		return sideBasePort(s)
	}

	const edgeInset = 0.15
	t := edgeInset + (1.0-2*edgeInset)*float64(index)/float64(count-1)

	switch s {
	case sideTop:
		return Port{t, 0}
	case sideBottom:
		return Port{t, 1}
	case sideLeft:
		return Port{0, t}
	default:
		return Port{1, t}
	}
}

type portGroupKey struct {
	shapeID string
	s       side
}

// DistributePortsForBatch assigns ports for a whole set of connections at
// once. Edges sharing a shape and side become siblings; their ports are
// spread along that side, ordered by the position of the opposite endpoint
// on the perpendicular axis so the fan-out does not cross itself. The
// result has one pair per connection, in input order.
func DistributePortsForBatch(connections []Connection, bounds map[string]geom.Box) []PortPair {
	if len(connections) == 0 {
		return nil
	}

	exitSides := make([]side, len(connections))
	entrySides := make([]side, len(connections))
	for i, conn := range connections {
		srcB, okS := bounds[conn.Source]
		tgtB, okT := bounds[conn.Target]
		if okS && okT {
			exitSides[i], entrySides[i] = determineSide(srcB, tgtB)
		} else {
			exitSides[i], entrySides[i] = sideRight, sideLeft
		}
	}

	exitGroups := map[portGroupKey][]int{}
	entryGroups := map[portGroupKey][]int{}
	for i, conn := range connections {
		exitGroups[portGroupKey{conn.Source, exitSides[i]}] = append(exitGroups[portGroupKey{conn.Source, exitSides[i]}], i)
		entryGroups[portGroupKey{conn.Target, entrySides[i]}] = append(entryGroups[portGroupKey{conn.Target, entrySides[i]}], i)
	}

	for key, indices := range exitGroups {
		if len(indices) > 1 {
			sortSiblings(indices, key.s, func(idx int) string { return connections[idx].Target }, bounds)
		}
	}
	for key, indices := range entryGroups {
		if len(indices) > 1 {
			sortSiblings(indices, key.s, func(idx int) string { return connections[idx].Source }, bounds)
		}
	}

	results := make([]PortPair, len(connections))
	for i, conn := range connections {
		exitSiblings := exitGroups[portGroupKey{conn.Source, exitSides[i]}]
		entrySiblings := entryGroups[portGroupKey{conn.Target, entrySides[i]}]
		results[i] = PortPair{
			Exit:  distributePortsOnSide(exitSides[i], len(exitSiblings), indexOf(exitSiblings, i)),
			Entry: distributePortsOnSide(entrySides[i], len(entrySiblings), indexOf(entrySiblings, i)),
		}
	}
	return results
}

// AssignPorts picks attachment ports for every connector with resolvable
// endpoints and records them as exitX/exitY/entryX/entryY style parameters.
// Sibling connectors sharing a shape side are spread along it so fan-outs
// do not stack on one point. Returns the number of connectors updated.
func AssignPorts(d *diagram.Diagram) int {
	bounds := d.Bounds()

	var conns []Connection
	var targets []*diagram.Connector
	for _, c := range d.Connectors {
		if c.Source == "" || c.Target == "" {
			continue
		}
		_, okS := bounds[c.Source]
		_, okT := bounds[c.Target]
		if !okS || !okT {
			continue
		}
		conns = append(conns, Connection{Source: c.Source, Target: c.Target})
		targets = append(targets, c)
	}

	pairs := DistributePortsForBatch(conns, bounds)
	for i, c := range targets {
		c.Style = portStyle(c.Style, pairs[i])
	}
	return len(targets)
}

func portStyle(style string, p PortPair) string {
	style = diagram.SetStyleParam(style, "exitX", formatPort(p.Exit.X))
	style = diagram.SetStyleParam(style, "exitY", formatPort(p.Exit.Y))
	style = diagram.SetStyleParam(style, "entryX", formatPort(p.Entry.X))
	style = diagram.SetStyleParam(style, "entryY", formatPort(p.Entry.Y))
	return style
}

func formatPort(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// sortSiblings orders sibling edges by the opposite endpoint's center on
// the axis perpendicular to the shared side. The side is passed explicitly
// so the comparison never depends on surrounding loop state.
func sortSiblings(indices []int, s side, opposite func(int) string, bounds map[string]geom.Box) {
	key := func(idx int) float64 {
		b, ok := bounds[opposite(idx)]
		if !ok {
			return 0
		}
		if s == sideTop || s == sideBottom {
			return b.CenterX()
		}
		return b.CenterY()
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return key(indices[i]) < key(indices[j])
	})
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return 0
}
