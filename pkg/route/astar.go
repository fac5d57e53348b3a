package route

import "container/heap"

// bendPenalty biases the search toward paths with fewer turns. The value
// is in the same units as path distance (pixels).
const bendPenalty = 5

// maxExpansions caps the search so a degenerate grid cannot spin.
const maxExpansions = 100000

// searchItem is one priority queue entry.
type searchItem struct {
	node gridNode
	f    float64 // g + heuristic
	h    float64 // heuristic alone, first tie-break
	seq  int     // insertion order, final tie-break for determinism
}

type searchQueue []*searchItem

func (q searchQueue) Len() int { return len(q) }

func (q searchQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q searchQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *searchQueue) Push(x any) { *q = append(*q, x.(*searchItem)) }

func (q *searchQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

var neighborSteps = [4]gridNode{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// astar searches the visibility grid from start to goal, scoring moves by
// Manhattan distance plus a penalty per direction change. Returns the node
// path including both endpoints, or ok=false when the goal is unreachable.
func astar(g *visibilityGrid, start, goal gridNode) ([]gridNode, bool) {
	goalX, goalY := g.at(goal)
	heuristic := func(n gridNode) float64 {
		x, y := g.at(n)
		return abs(x-goalX) + abs(y-goalY)
	}

	open := &searchQueue{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &searchItem{node: start, f: heuristic(start), h: heuristic(start)})

	cameFrom := map[gridNode]gridNode{}
	gScore := map[gridNode]float64{start: 0}

	found := false
	for open.Len() > 0 && seq < maxExpansions {
		current := heap.Pop(open).(*searchItem).node
		if current == goal {
			found = true
			break
		}

		cx, cy := g.at(current)
		parent, hasParent := cameFrom[current]

		for _, step := range neighborSteps {
			next := gridNode{xi: current.xi + step.xi, yi: current.yi + step.yi}
			if next.xi < 0 || next.xi >= len(g.xs) || next.yi < 0 || next.yi >= len(g.ys) {
				continue
			}
			nx, ny := g.at(next)
			if g.segmentBlocked(cx, cy, nx, ny) {
				continue
			}

			dist := abs(nx-cx) + abs(ny-cy)
			if hasParent {
				prevStep := gridNode{xi: current.xi - parent.xi, yi: current.yi - parent.yi}
				if prevStep != step {
					dist += bendPenalty
				}
			}

			tentative := gScore[current] + dist
			if existing, ok := gScore[next]; !ok || tentative < existing {
				gScore[next] = tentative
				cameFrom[next] = current
				seq++
				heap.Push(open, &searchItem{
					node: next,
					f:    tentative + heuristic(next),
					h:    heuristic(next),
					seq:  seq,
				})
			}
		}
	}
	if !found {
		return nil, false
	}

	// Walk parent links back from the goal.
	path := []gridNode{goal}
	for n := goal; n != start; {
		p, ok := cameFrom[n]
		if !ok {
			return nil, false
		}
		path = append(path, p)
		n = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
