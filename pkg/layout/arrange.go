package layout

import (
	"sort"

	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
)

// Row places one shape per label in a horizontal row starting at the
// configured origin, and returns the created shape IDs in order.
func Row(d *diagram.Diagram, labels []string, style string, cfg *Config) []string {
	cfg = cfg.normalized()
	ids := make([]string, 0, len(labels))
	y := geom.SnapToGrid(cfg.StartY, cfg.GridSize)
	for i, label := range labels {
		x := geom.SnapToGrid(cfg.StartX+float64(i)*(cfg.DefaultWidth+cfg.NodeSpacing), cfg.GridSize)
		ids = append(ids, d.AddShape(label, x, y, cfg.DefaultWidth, cfg.DefaultHeight, style))
	}
	return ids
}

// Column places one shape per label in a vertical column.
func Column(d *diagram.Diagram, labels []string, style string, cfg *Config) []string {
	cfg = cfg.normalized()
	ids := make([]string, 0, len(labels))
	x := geom.SnapToGrid(cfg.StartX, cfg.GridSize)
	for i, label := range labels {
		y := geom.SnapToGrid(cfg.StartY+float64(i)*(cfg.DefaultHeight+cfg.NodeSpacing), cfg.GridSize)
		ids = append(ids, d.AddShape(label, x, y, cfg.DefaultWidth, cfg.DefaultHeight, style))
	}
	return ids
}

// Grid places shapes row by row into the given number of columns.
func Grid(d *diagram.Diagram, labels []string, columns int, style string, cfg *Config) []string {
	cfg = cfg.normalized()
	if columns < 1 {
		columns = 1
	}
	ids := make([]string, 0, len(labels))
	for i, label := range labels {
		col := i % columns
		row := i / columns
		x := geom.SnapToGrid(cfg.StartX+float64(col)*(cfg.DefaultWidth+cfg.NodeSpacing), cfg.GridSize)
		y := geom.SnapToGrid(cfg.StartY+float64(row)*(cfg.DefaultHeight+cfg.NodeSpacing), cfg.GridSize)
		ids = append(ids, d.AddShape(label, x, y, cfg.DefaultWidth, cfg.DefaultHeight, style))
	}
	return ids
}

// Tree lays out a rooted tree from an adjacency list. Levels come from a
// BFS over the adjacency; within each level nodes are ordered by the
// barycenter of their parents (one forward sweep) and then refined by one
// backward sweep over their children. Each level is centered against the
// widest one. Edges are created for every parent-child pair whose shapes
// both exist. Returns the mapping of label to shape ID.
func Tree(d *diagram.Diagram, adjacency map[string][]string, root string, style, edgeStyle string, cfg *Config, direction string) map[string]string {
	cfg = cfg.normalized()
	if direction == "" {
		direction = "TB"
	}

	// BFS level assignment; bfsOrder keeps discovery order for
	// deterministic edge creation later.
	levels := map[string]int{root: 0}
	bfsOrder := []string{root}
	queue := []string{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range adjacency[node] {
			if _, ok := levels[child]; !ok {
				levels[child] = levels[node] + 1
				bfsOrder = append(bfsOrder, child)
				queue = append(queue, child)
			}
		}
	}

	maxLevel := 0
	for _, lvl := range levels {
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}
	byLevel := make([][]string, maxLevel+1)
	for _, label := range bfsOrder {
		lvl := levels[label]
		byLevel[lvl] = append(byLevel[lvl], label)
	}

	parents := map[string][]string{}
	for _, p := range bfsOrder {
		for _, child := range adjacency[p] {
			parents[child] = append(parents[child], p)
		}
	}

	pos := map[string]float64{}
	for i, label := range byLevel[0] {
		pos[label] = float64(i)
	}

	// Forward sweep: order each level by average parent position.
	for lvl := 1; lvl <= maxLevel; lvl++ {
		sortLevelByBarycenter(byLevel[lvl], pos, parents)
		for i, label := range byLevel[lvl] {
			pos[label] = float64(i)
		}
	}
	// Backward sweep: refine by average child position.
	for lvl := maxLevel - 1; lvl >= 0; lvl-- {
		sortLevelByBarycenter(byLevel[lvl], pos, adjacency)
		for i, label := range byLevel[lvl] {
			pos[label] = float64(i)
		}
	}

	maxCount := 0
	for _, lvl := range byLevel {
		if len(lvl) > maxCount {
			maxCount = len(lvl)
		}
	}
	maxTotalW := float64(maxCount)*cfg.DefaultWidth + float64(maxCount-1)*cfg.NodeSpacing
	maxTotalH := float64(maxCount)*cfg.DefaultHeight + float64(maxCount-1)*cfg.NodeSpacing

	labelToID := make(map[string]string, len(bfsOrder))
	for lvl, labelsAt := range byLevel {
		count := len(labelsAt)
		for i, label := range labelsAt {
			var x, y float64
			if direction == "TB" || direction == "BT" {
				total := float64(count)*cfg.DefaultWidth + float64(count-1)*cfg.NodeSpacing
				offset := (maxTotalW - total) / 2
				x = cfg.StartX + offset + float64(i)*(cfg.DefaultWidth+cfg.NodeSpacing)
				row := lvl
				if direction == "BT" {
					row = maxLevel - lvl
				}
				y = cfg.StartY + float64(row)*(cfg.DefaultHeight+cfg.NodeSpacing)
			} else {
				total := float64(count)*cfg.DefaultHeight + float64(count-1)*cfg.NodeSpacing
				offset := (maxTotalH - total) / 2
				y = cfg.StartY + offset + float64(i)*(cfg.DefaultHeight+cfg.NodeSpacing)
				col := lvl
				if direction == "RL" {
					col = maxLevel - lvl
				}
				x = cfg.StartX + float64(col)*(cfg.DefaultWidth+cfg.NodeSpacing)
			}
			x = geom.SnapToGrid(x, cfg.GridSize)
			y = geom.SnapToGrid(y, cfg.GridSize)
			labelToID[label] = d.AddShape(label, x, y, cfg.DefaultWidth, cfg.DefaultHeight, style)
		}
	}

	for _, parent := range bfsOrder {
		for _, child := range adjacency[parent] {
			pid, okP := labelToID[parent]
			cid, okC := labelToID[child]
			if okP && okC {
				d.AddConnector(pid, cid, "", edgeStyle)
			}
		}
	}
	return labelToID
}

func sortLevelByBarycenter(level []string, pos map[string]float64, neighbors map[string][]string) {
	barycenters := make(map[string]float64, len(level))
	for i, label := range level {
		sum, n := 0.0, 0
		for _, nb := range neighbors[label] {
			if p, ok := pos[nb]; ok {
				sum += p
				n++
			}
		}
		if n > 0 {
			barycenters[label] = sum / float64(n)
		} else if p, ok := pos[label]; ok {
			barycenters[label] = p
		} else {
			barycenters[label] = float64(i)
		}
	}
	sort.SliceStable(level, func(i, j int) bool {
		return barycenters[level[i]] < barycenters[level[j]]
	})
}

// ConnectChain links the given shape IDs sequentially and returns the
// created connector IDs. Labels are applied positionally as far as they
// reach.
func ConnectChain(d *diagram.Diagram, ids []string, style string, labels []string) []string {
	var edgeIDs []string
	for i := 0; i+1 < len(ids); i++ {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		edgeIDs = append(edgeIDs, d.AddConnector(ids[i], ids[i+1], label, style))
	}
	return edgeIDs
}

// DistributeEvenly computes new positions that spread items with the given
// sizes uniformly between start and end, keeping at least a 10 pixel gap.
// Returns one position per input item; fewer than two items are returned
// unchanged.
func DistributeEvenly(positions, sizes []float64, start, end float64) []float64 {
	n := len(positions)
	if n <= 1 {
		return positions
	}

	totalSize := 0.0
	for _, s := range sizes {
		totalSize += s
	}
	gap := ((end - start) - totalSize) / float64(n-1)
	if gap < 10 {
		gap = 10
	}

	result := make([]float64, 0, n)
	current := start
	for _, size := range sizes {
		result = append(result, current)
		current += size + gap
	}
	return result
}
