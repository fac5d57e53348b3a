package layout

// The layout graph is an arena: nodes live in a single slice and every
// reference is a dense int32 index into it. Adjacency lists hold indices,
// not identifiers, so the hot passes (ranking, ordering, coordinates) never
// touch a hash map.

type nodeIndex = int32

type layoutNode struct {
	id      string
	label   string
	width   float64
	height  float64
	rank    int
	order   float64
	x, y    float64
	virtual bool
}

// layoutEdge keeps its original endpoints. A reversed edge participates in
// ranking and ordering as if it pointed tgt -> src, but is rendered in its
// original direction.
type layoutEdge struct {
	src, tgt nodeIndex
	label    string
	reversed bool
}

type layoutGraph struct {
	nodes []layoutNode
	byID  map[string]nodeIndex
	edges []layoutEdge
	out   [][]nodeIndex // original orientation
	in    [][]nodeIndex
}

func newLayoutGraph() *layoutGraph {
	return &layoutGraph{byID: make(map[string]nodeIndex)}
}

// ensureNode returns the index for id, adding a node on first sight.
// Nodes keep first-seen order, which makes every downstream pass
// deterministic for a given edge list.
func (g *layoutGraph) ensureNode(id, label string, width, height float64) nodeIndex {
	if idx, ok := g.byID[id]; ok {
		return idx
	}
	idx := nodeIndex(len(g.nodes))
	g.nodes = append(g.nodes, layoutNode{
		id:     id,
		label:  label,
		width:  width,
		height: height,
	})
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.byID[id] = idx
	return idx
}

func (g *layoutGraph) addEdge(src, tgt nodeIndex, label string) {
	g.edges = append(g.edges, layoutEdge{src: src, tgt: tgt, label: label})
	g.out[src] = append(g.out[src], tgt)
	g.in[tgt] = append(g.in[tgt], src)
}

// addVirtualNode appends a 1x1 placeholder node at the given rank. Virtual
// nodes occupy layer slots during crossing minimization but never become
// shapes.
func (g *layoutGraph) addVirtualNode(rank int) nodeIndex {
	idx := nodeIndex(len(g.nodes))
	g.nodes = append(g.nodes, layoutNode{
		width:   1,
		height:  1,
		rank:    rank,
		virtual: true,
	})
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return idx
}

// effectiveAdjacency returns adjacency lists with reversed edges flipped,
// yielding the acyclic orientation the ranking and ordering passes use.
func (g *layoutGraph) effectiveAdjacency() (out, in [][]nodeIndex) {
	out = make([][]nodeIndex, len(g.nodes))
	in = make([][]nodeIndex, len(g.nodes))
	for _, e := range g.edges {
		src, tgt := e.src, e.tgt
		if e.reversed {
			src, tgt = tgt, src
		}
		out[src] = append(out[src], tgt)
		in[tgt] = append(in[tgt], src)
	}
	return out, in
}
