package layout

// DFS colors for back-edge detection.
const (
	dfsWhite uint8 = iota
	dfsGray
	dfsBlack
)

// markBackEdges runs an iterative DFS over the original orientation and
// flags every edge that closes a cycle as reversed. After this pass the
// effective orientation of the graph is acyclic.
func (g *layoutGraph) markBackEdges() {
	color := make([]uint8, len(g.nodes))
	type backEdge struct{ src, tgt nodeIndex }
	back := make(map[backEdge]bool)

	type frame struct {
		node nodeIndex
		next int // index of the next neighbor to visit
	}

	for start := nodeIndex(0); int(start) < len(g.nodes); start++ {
		if color[start] != dfsWhite {
			continue
		}
		color[start] = dfsGray
		stack := []frame{{node: start}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := g.out[top.node]
			if top.next < len(neighbors) {
				v := neighbors[top.next]
				top.next++
				switch color[v] {
				case dfsGray:
					back[backEdge{top.node, v}] = true
				case dfsWhite:
					color[v] = dfsGray
					stack = append(stack, frame{node: v})
				}
			} else {
				color[top.node] = dfsBlack
				stack = stack[:len(stack)-1]
			}
		}
	}

	for i := range g.edges {
		e := &g.edges[i]
		if back[backEdge{e.src, e.tgt}] {
			e.reversed = true
		}
	}
}
