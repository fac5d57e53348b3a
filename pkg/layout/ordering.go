package layout

import "sort"

// buildRankIndex groups node indices by rank, preserving insertion order
// within each rank.
func buildRankIndex(g *layoutGraph, maxRank int) [][]nodeIndex {
	byRank := make([][]nodeIndex, maxRank+1)
	for i := range g.nodes {
		r := g.nodes[i].rank
		byRank[r] = append(byRank[r], nodeIndex(i))
	}
	return byRank
}

// initOrders assigns each node its position within its rank.
func initOrders(g *layoutGraph, byRank [][]nodeIndex) {
	for _, rankNodes := range byRank {
		for i, idx := range rankNodes {
			g.nodes[idx].order = float64(i)
		}
	}
}

// barycenterSort reorders one rank by the average order of each node's
// neighbors in the adjacent rank. Nodes without neighbors keep their
// current order; the sort is stable so ties preserve existing positions.
func barycenterSort(rankNodes []nodeIndex, g *layoutGraph, neighborAdj [][]nodeIndex) {
	barycenters := make(map[nodeIndex]float64, len(rankNodes))
	for _, idx := range rankNodes {
		neighbors := neighborAdj[idx]
		if len(neighbors) == 0 {
			barycenters[idx] = g.nodes[idx].order
			continue
		}
		sum := 0.0
		for _, n := range neighbors {
			sum += g.nodes[n].order
		}
		barycenters[idx] = sum / float64(len(neighbors))
	}

	sort.SliceStable(rankNodes, func(i, j int) bool {
		return barycenters[rankNodes[i]] < barycenters[rankNodes[j]]
	})
	for i, idx := range rankNodes {
		g.nodes[idx].order = float64(i)
	}
}

// minimizeCrossings runs the configured number of alternating forward and
// backward barycenter sweeps over all ranks.
func minimizeCrossings(g *layoutGraph, byRank [][]nodeIndex, eout, ein [][]nodeIndex, sweeps int) {
	maxRank := len(byRank) - 1
	for iter := 0; iter < sweeps; iter++ {
		for r := 1; r <= maxRank; r++ {
			barycenterSort(byRank[r], g, ein)
		}
		for r := maxRank - 1; r >= 0; r-- {
			barycenterSort(byRank[r], g, eout)
		}
	}
}
