package layout

// assignRanks computes layer assignments via longest path from the sources
// of the effective (acyclic) orientation. When the graph has no source at
// all, node 0 seeds the traversal so totally cyclic inputs still rank.
func assignRanks(nodeCount int, eout, ein [][]nodeIndex) []int {
	ranks := make([]int, nodeCount)
	seen := make([]bool, nodeCount)

	var queue []nodeIndex
	for i := 0; i < nodeCount; i++ {
		if len(ein[i]) == 0 {
			queue = append(queue, nodeIndex(i))
			seen[i] = true
		}
	}
	if len(queue) == 0 && nodeCount > 0 {
		queue = append(queue, 0)
		seen[0] = true
	}

	// BFS, pushing children to max(parent rank + 1). The effective graph is
	// acyclic so each node is re-enqueued at most a bounded number of times.
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, child := range eout[n] {
			newRank := ranks[n] + 1
			if !seen[child] || ranks[child] < newRank {
				ranks[child] = newRank
				seen[child] = true
				queue = append(queue, child)
			}
		}
	}

	// Unreached nodes sit at rank 0.
	return ranks
}

// maxRankOf returns the highest rank present.
func maxRankOf(ranks []int) int {
	max := 0
	for _, r := range ranks {
		if r > max {
			max = r
		}
	}
	return max
}
