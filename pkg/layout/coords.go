package layout

// equalizeRankSizes makes all real nodes in a rank share the same height
// (TB/BT) or width (LR/RL). Shapes in the same visual row then sit on the
// same baseline.
func equalizeRankSizes(g *layoutGraph, byRank [][]nodeIndex, direction string) {
	for _, rankNodes := range byRank {
		var real []nodeIndex
		for _, idx := range rankNodes {
			if !g.nodes[idx].virtual {
				real = append(real, idx)
			}
		}
		if len(real) < 2 {
			continue
		}

		if direction == "TB" || direction == "BT" {
			maxH := 0.0
			for _, idx := range real {
				if g.nodes[idx].height > maxH {
					maxH = g.nodes[idx].height
				}
			}
			for _, idx := range real {
				g.nodes[idx].height = maxH
			}
		} else {
			maxW := 0.0
			for _, idx := range real {
				if g.nodes[idx].width > maxW {
					maxW = g.nodes[idx].width
				}
			}
			for _, idx := range real {
				g.nodes[idx].width = maxW
			}
		}
	}
}

// assignCoordinates places every node from its rank and order. Ranks are
// stacked along the layout direction at cumulative offsets; within a rank,
// real nodes advance by their size plus node spacing and each rank is
// centered against the widest one.
func assignCoordinates(g *layoutGraph, byRank [][]nodeIndex, cfg *Config, direction string) {
	// Widest rank (by real node extent) for centering.
	maxRankWidth := 0.0
	for _, rankNodes := range byRank {
		total := 0.0
		count := 0
		for _, idx := range rankNodes {
			if g.nodes[idx].virtual {
				continue
			}
			total += g.nodes[idx].width
			count++
		}
		if count > 0 {
			total += float64(count-1) * cfg.NodeSpacing
		}
		if total > maxRankWidth {
			maxRankWidth = total
		}
	}

	// Max real node height/width per rank for consistent layer spacing.
	maxHeight := make([]float64, len(byRank))
	maxWidth := make([]float64, len(byRank))
	for r, rankNodes := range byRank {
		maxHeight[r] = cfg.DefaultHeight
		maxWidth[r] = cfg.DefaultWidth
		first := true
		for _, idx := range rankNodes {
			n := &g.nodes[idx]
			if n.virtual {
				continue
			}
			if first {
				maxHeight[r] = n.height
				maxWidth[r] = n.width
				first = false
				continue
			}
			if n.height > maxHeight[r] {
				maxHeight[r] = n.height
			}
			if n.width > maxWidth[r] {
				maxWidth[r] = n.width
			}
		}
	}

	// Cumulative offsets per rank along the layout axis. BT and RL stack
	// ranks in reverse so rank 0 ends up at the bottom or right.
	offsets := make([]float64, len(byRank))
	vertical := direction == "TB" || direction == "BT"
	if vertical {
		cumulative := cfg.StartY
		if direction == "TB" {
			for r := 0; r < len(byRank); r++ {
				offsets[r] = cumulative
				cumulative += maxHeight[r] + cfg.RankSpacing
			}
		} else {
			for r := len(byRank) - 1; r >= 0; r-- {
				offsets[r] = cumulative
				cumulative += maxHeight[r] + cfg.RankSpacing
			}
		}
	} else {
		cumulative := cfg.StartX
		if direction == "LR" {
			for r := 0; r < len(byRank); r++ {
				offsets[r] = cumulative
				cumulative += maxWidth[r] + cfg.RankSpacing
			}
		} else {
			for r := len(byRank) - 1; r >= 0; r-- {
				offsets[r] = cumulative
				cumulative += maxWidth[r] + cfg.RankSpacing
			}
		}
	}

	for r, rankNodes := range byRank {
		total := 0.0
		count := 0
		for _, idx := range rankNodes {
			n := &g.nodes[idx]
			if n.virtual {
				continue
			}
			if vertical {
				total += n.width
			} else {
				total += n.height
			}
			count++
		}
		if count > 0 {
			total += float64(count-1) * cfg.NodeSpacing
		}

		if vertical {
			cursor := cfg.StartX + (maxRankWidth-total)/2
			for _, idx := range rankNodes {
				n := &g.nodes[idx]
				n.x = cursor
				n.y = offsets[r]
				if !n.virtual {
					cursor += n.width + cfg.NodeSpacing
				}
			}
		} else {
			cursor := cfg.StartY
			for _, idx := range rankNodes {
				n := &g.nodes[idx]
				n.x = offsets[r]
				n.y = cursor
				if !n.virtual {
					cursor += n.height + cfg.NodeSpacing
				}
			}
		}
	}
}
