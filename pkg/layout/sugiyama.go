package layout

import (
	"math"

	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
	"laygrid/pkg/route"
)

// EdgeSpec declares one directed edge of the input graph by node label.
type EdgeSpec struct {
	Source string
	Target string
	Label  string
}

// Options controls a Sugiyama layout run.
type Options struct {
	// Direction is TB, BT, LR or RL. Empty means TB.
	Direction string

	// NodeStyles maps node labels to style strings. Unlisted nodes get the
	// default shape style.
	NodeStyles map[string]string

	// EdgeStyle applies to every created connector. Empty means the default
	// connector style.
	EdgeStyle string

	Config *Config
}

// Sugiyama lays out a directed graph into d using the layered framework:
//
//  1. Cycle removal (back edges are flagged and treated as reversed)
//  2. Layer assignment (longest path from sources)
//  3. Virtual node insertion for edges spanning multiple layers
//  4. Crossing minimization (alternating barycenter sweeps)
//  5. Size equalization and coordinate assignment
//  6. Overlap removal
//  7. Shape and connector creation, then obstacle-aware edge routing
//
// Each distinct label in edges becomes one shape sized from its text.
// Returns the mapping of label to created shape ID.
func Sugiyama(d *diagram.Diagram, edges []EdgeSpec, opts Options) map[string]string {
	cfg := opts.Config.normalized()
	direction := opts.Direction
	if direction == "" {
		direction = "TB"
	}

	g := newLayoutGraph()
	for _, e := range edges {
		sw, sh := EstimateNodeSize(e.Source, cfg.DefaultWidth, cfg.DefaultHeight)
		tw, th := EstimateNodeSize(e.Target, cfg.DefaultWidth, cfg.DefaultHeight)
		src := g.ensureNode(e.Source, e.Source, sw, sh)
		tgt := g.ensureNode(e.Target, e.Target, tw, th)
		g.addEdge(src, tgt, e.Label)
	}
	if len(g.nodes) == 0 {
		return map[string]string{}
	}

	g.markBackEdges()
	eout, ein := g.effectiveAdjacency()

	ranks := assignRanks(len(g.nodes), eout, ein)
	for i := range g.nodes {
		g.nodes[i].rank = ranks[i]
	}

	// Subdivide multi-layer edges with virtual nodes so crossing
	// minimization sees one hop per layer.
	expOut := make([][]nodeIndex, len(g.nodes))
	expIn := make([][]nodeIndex, len(g.nodes))
	addExpanded := func(s, t nodeIndex) {
		for int(s) >= len(expOut) || int(t) >= len(expOut) {
			expOut = append(expOut, nil)
			expIn = append(expIn, nil)
		}
		expOut[s] = append(expOut[s], t)
		expIn[t] = append(expIn[t], s)
	}
	realEdges := len(g.edges)
	for i := 0; i < realEdges; i++ {
		e := g.edges[i]
		srcRank, tgtRank := ranks[e.src], ranks[e.tgt]
		if e.reversed {
			srcRank, tgtRank = tgtRank, srcRank
		}
		if tgtRank-srcRank <= 1 {
			addExpanded(e.src, e.tgt)
			continue
		}
		prev := e.src
		for r := srcRank + 1; r < tgtRank; r++ {
			v := g.addVirtualNode(r)
			addExpanded(prev, v)
			prev = v
		}
		addExpanded(prev, e.tgt)
	}

	maxRank := 0
	for i := range g.nodes {
		if g.nodes[i].rank > maxRank {
			maxRank = g.nodes[i].rank
		}
	}
	byRank := buildRankIndex(g, maxRank)
	initOrders(g, byRank)
	minimizeCrossings(g, byRank, expOut, expIn, cfg.BarycenterIterations)

	equalizeRankSizes(g, byRank, direction)
	assignCoordinates(g, byRank, cfg, direction)

	var real []*layoutNode
	for i := range g.nodes {
		if !g.nodes[i].virtual {
			real = append(real, &g.nodes[i])
		}
	}
	removeNodeOverlaps(real, cfg)

	labelToID := make(map[string]string, len(real))
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.virtual {
			continue
		}
		style := opts.NodeStyles[n.label]
		x := geom.SnapToGrid(n.x, cfg.GridSize)
		y := geom.SnapToGrid(n.y, cfg.GridSize)
		labelToID[n.label] = d.AddShape(n.label, x, y, n.width, n.height, style)
	}

	for _, e := range edges {
		srcID, okS := labelToID[e.Source]
		tgtID, okT := labelToID[e.Target]
		if okS && okT {
			d.AddConnector(srcID, tgtID, e.Label, opts.EdgeStyle)
		}
	}

	if cfg.RouteEdges {
		route.Edges(d, cfg.EdgeMargin)
	}
	return labelToID
}

// Relayout recomputes positions for an existing diagram's top-level shapes
// from its connector structure. Diagrams without connectors fall back to a
// square-ish grid arrangement. Shapes move and may be resized (rank size
// equalization); connectors are rerouted afterwards. Returns the new
// position of every repositioned shape.
func Relayout(d *diagram.Diagram, direction string, cfg *Config) map[string]geom.Point {
	cfg = cfg.normalized()
	if direction == "" {
		direction = "TB"
	}

	var shapes []*diagram.Shape
	for _, s := range d.Shapes {
		if s.Parent == "" {
			shapes = append(shapes, s)
		}
	}
	if len(shapes) == 0 {
		return map[string]geom.Point{}
	}

	topLevel := make(map[string]bool, len(shapes))
	for _, s := range shapes {
		topLevel[s.ID] = true
	}
	var edges []diagram.Edge
	for _, e := range d.EdgeList() {
		if topLevel[e.Source] && topLevel[e.Target] {
			edges = append(edges, e)
		}
	}

	if len(edges) == 0 {
		return relayoutGrid(shapes, cfg)
	}

	g := newLayoutGraph()
	for _, s := range shapes {
		g.ensureNode(s.ID, s.Label, s.Width, s.Height)
	}
	for _, e := range edges {
		g.addEdge(g.byID[e.Source], g.byID[e.Target], e.Label)
	}

	g.markBackEdges()
	eout, ein := g.effectiveAdjacency()
	ranks := assignRanks(len(g.nodes), eout, ein)
	for i := range g.nodes {
		g.nodes[i].rank = ranks[i]
	}

	byRank := buildRankIndex(g, maxRankOf(ranks))
	initOrders(g, byRank)
	minimizeCrossings(g, byRank, eout, ein, cfg.BarycenterIterations)
	equalizeRankSizes(g, byRank, direction)
	assignCoordinates(g, byRank, cfg, direction)

	all := make([]*layoutNode, len(g.nodes))
	for i := range g.nodes {
		all[i] = &g.nodes[i]
	}
	removeNodeOverlaps(all, cfg)

	moved := make(map[string]geom.Point, len(g.nodes))
	for i := range g.nodes {
		n := &g.nodes[i]
		s := d.Shape(n.id)
		if s == nil {
			continue
		}
		s.X = geom.SnapToGrid(n.x, cfg.GridSize)
		s.Y = geom.SnapToGrid(n.y, cfg.GridSize)
		s.Width = n.width
		s.Height = n.height
		moved[n.id] = geom.Point{X: s.X, Y: s.Y}
	}

	if cfg.RouteEdges {
		route.Edges(d, cfg.EdgeMargin)
	}
	return moved
}

// relayoutGrid arranges shapes into a near-square grid when the diagram has
// no connector structure to layer on.
func relayoutGrid(shapes []*diagram.Shape, cfg *Config) map[string]geom.Point {
	cols := int(math.Sqrt(float64(len(shapes))))
	if cols < 1 {
		cols = 1
	}

	moved := make(map[string]geom.Point, len(shapes))
	for i, s := range shapes {
		col := i % cols
		row := i / cols
		s.X = geom.SnapToGrid(cfg.StartX+float64(col)*(s.Width+cfg.NodeSpacing), cfg.GridSize)
		s.Y = geom.SnapToGrid(cfg.StartY+float64(row)*(s.Height+cfg.RankSpacing), cfg.GridSize)
		moved[s.ID] = geom.Point{X: s.X, Y: s.Y}
	}
	return moved
}
