package layout

import (
	"sort"

	"laygrid/pkg/diagram"
	"laygrid/pkg/geom"
)

// proximityThreshold groups shapes into visual rows and columns.
const proximityThreshold = 20

// Compact closes excess whitespace in a diagram. Rows of shapes (grouped
// by top edge proximity) are pulled together vertically, then shapes
// within each row are pulled together horizontally, keeping at least
// margin between neighbors. Afterwards rows and columns are re-aligned on
// shared centers. Returns the number of position adjustments made.
func Compact(d *diagram.Diagram, margin float64) int {
	bounds := d.Bounds()
	if len(bounds) < 2 {
		return 0
	}
	grid := d.Grid()

	sortedByY := make([]*diagram.Shape, len(d.Shapes))
	copy(sortedByY, d.Shapes)
	sort.SliceStable(sortedByY, func(i, j int) bool {
		return bounds[sortedByY[i].ID].Y < bounds[sortedByY[j].ID].Y
	})

	moved := 0

	rows := groupIntoRows(sortedByY, bounds)
	currentY := bounds[sortedByY[0].ID].Y
	for _, row := range rows {
		rowTop := bounds[row[0].ID].Y
		rowBottom := bounds[row[0].ID].Bottom()
		for _, s := range row[1:] {
			b := bounds[s.ID]
			if b.Y < rowTop {
				rowTop = b.Y
			}
			if b.Bottom() > rowBottom {
				rowBottom = b.Bottom()
			}
		}

		shift := currentY - rowTop
		if abs(shift) > 5 {
			for _, s := range row {
				s.Y = geom.SnapToGrid(s.Y+shift, grid)
				moved++
			}
		}
		currentY += (rowBottom - rowTop) + margin
	}

	// Fresh bounds for the horizontal pass.
	bounds = d.Bounds()
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		sort.SliceStable(row, func(i, j int) bool {
			return bounds[row[i].ID].X < bounds[row[j].ID].X
		})
		currentX := bounds[row[0].ID].X
		for _, s := range row {
			b := bounds[s.ID]
			if abs(currentX-b.X) > 5 {
				s.X = geom.SnapToGrid(currentX, grid)
				moved++
			}
			currentX = b.Right() + margin
		}
	}

	moved += AlignRowBaselines(d, proximityThreshold)
	moved += AlignColumnCenters(d, proximityThreshold)
	return moved
}

// groupIntoRows buckets shapes (already sorted by top edge) into rows of
// nearby Y positions.
func groupIntoRows(sorted []*diagram.Shape, bounds map[string]geom.Box) [][]*diagram.Shape {
	var rows [][]*diagram.Shape
	var current []*diagram.Shape
	lastY := 0.0

	for _, s := range sorted {
		y := bounds[s.ID].Y
		if len(current) == 0 || abs(y-lastY) <= proximityThreshold {
			current = append(current, s)
		} else {
			rows = append(rows, current)
			current = []*diagram.Shape{s}
		}
		lastY = y
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}

// topLevelShapes returns the shapes that are not nested in a container.
func topLevelShapes(d *diagram.Diagram) []*diagram.Shape {
	var shapes []*diagram.Shape
	for _, s := range d.Shapes {
		if s.Parent == "" {
			shapes = append(shapes, s)
		}
	}
	return shapes
}

// AlignRowBaselines snaps shapes that sit in approximately the same row
// onto a shared vertical center. Shapes group into a row when their
// Y centers differ by at most threshold. Returns the number of shapes
// adjusted.
func AlignRowBaselines(d *diagram.Diagram, threshold float64) int {
	return alignGroups(d, threshold, true)
}

// AlignColumnCenters snaps shapes in approximately the same column onto a
// shared horizontal center.
func AlignColumnCenters(d *diagram.Diagram, threshold float64) int {
	return alignGroups(d, threshold, false)
}

func alignGroups(d *diagram.Diagram, threshold float64, rows bool) int {
	bounds := d.Bounds()
	shapes := topLevelShapes(d)
	if len(shapes) < 2 {
		return 0
	}
	grid := d.Grid()

	center := func(s *diagram.Shape) float64 {
		if rows {
			return bounds[s.ID].CenterY()
		}
		return bounds[s.ID].CenterX()
	}
	sort.SliceStable(shapes, func(i, j int) bool { return center(shapes[i]) < center(shapes[j]) })

	adjusted := 0
	for _, group := range groupByProximity(shapes, center, threshold) {
		if len(group) < 2 {
			continue
		}
		avg := 0.0
		for _, s := range group {
			avg += center(s)
		}
		avg /= float64(len(group))

		for _, s := range group {
			if rows {
				target := geom.SnapToGrid(avg-s.Height/2, grid)
				if abs(s.Y-target) > 1 {
					s.Y = target
					adjusted++
				}
			} else {
				target := geom.SnapToGrid(avg-s.Width/2, grid)
				if abs(s.X-target) > 1 {
					s.X = target
					adjusted++
				}
			}
		}
	}
	return adjusted
}

// EqualizeRowSizes gives shapes in the same visual row the same height
// (TB/BT) or, for LR/RL, shapes in the same column the same width. Shapes
// only ever grow. Returns the number of shapes resized.
func EqualizeRowSizes(d *diagram.Diagram, direction string, threshold float64) int {
	bounds := d.Bounds()
	shapes := topLevelShapes(d)
	if len(shapes) < 2 {
		return 0
	}

	vertical := direction == "" || direction == "TB" || direction == "BT"
	center := func(s *diagram.Shape) float64 {
		if vertical {
			return bounds[s.ID].CenterY()
		}
		return bounds[s.ID].CenterX()
	}
	sort.SliceStable(shapes, func(i, j int) bool { return center(shapes[i]) < center(shapes[j]) })

	adjusted := 0
	for _, group := range groupByProximity(shapes, center, threshold) {
		if len(group) < 2 {
			continue
		}
		if vertical {
			maxH := 0.0
			for _, s := range group {
				if s.Height > maxH {
					maxH = s.Height
				}
			}
			for _, s := range group {
				if s.Height < maxH {
					s.Height = maxH
					adjusted++
				}
			}
		} else {
			maxW := 0.0
			for _, s := range group {
				if s.Width > maxW {
					maxW = s.Width
				}
			}
			for _, s := range group {
				if s.Width < maxW {
					s.Width = maxW
					adjusted++
				}
			}
		}
	}
	return adjusted
}

func groupByProximity(sorted []*diagram.Shape, value func(*diagram.Shape) float64, threshold float64) [][]*diagram.Shape {
	var groups [][]*diagram.Shape
	var current []*diagram.Shape
	lastVal := 0.0

	for _, s := range sorted {
		v := value(s)
		if len(current) == 0 || abs(v-lastVal) <= threshold {
			current = append(current, s)
		} else {
			groups = append(groups, current)
			current = []*diagram.Shape{s}
		}
		lastVal = v
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// CenterOnPage shifts all top-level shapes so the content's bounding box
// sits centered on the page, keeping at least margin from the page edges.
// Diagrams without page dimensions are moved to the margin instead.
// Shifts under 5 pixels are skipped. Returns the number of shapes moved.
func CenterOnPage(d *diagram.Diagram, margin float64) int {
	shapes := topLevelShapes(d)
	if len(shapes) == 0 {
		return 0
	}
	grid := d.Grid()

	minX, minY := shapes[0].X, shapes[0].Y
	maxX, maxY := shapes[0].Box().Right(), shapes[0].Box().Bottom()
	for _, s := range shapes[1:] {
		b := s.Box()
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.Right())
		maxY = max(maxY, b.Bottom())
	}

	targetX, targetY := margin, margin
	if d.PageWidth > 0 && d.PageHeight > 0 {
		targetX = max(margin, (d.PageWidth-(maxX-minX))/2)
		targetY = max(margin, (d.PageHeight-(maxY-minY))/2)
	}

	shiftX := targetX - minX
	shiftY := targetY - minY
	if abs(shiftX) < 5 && abs(shiftY) < 5 {
		return 0
	}

	moved := 0
	for _, s := range shapes {
		s.X = geom.SnapToGrid(s.X+shiftX, grid)
		s.Y = geom.SnapToGrid(s.Y+shiftY, grid)
		moved++
	}
	return moved
}

// EnsurePageMargins shifts content right and down as needed so no
// top-level shape sits closer than margin to the page origin. Content is
// never pulled toward the origin. Returns the number of shapes moved.
func EnsurePageMargins(d *diagram.Diagram, margin float64) int {
	shapes := topLevelShapes(d)
	if len(shapes) == 0 {
		return 0
	}
	grid := d.Grid()

	minX, minY := shapes[0].X, shapes[0].Y
	for _, s := range shapes[1:] {
		minX = min(minX, s.X)
		minY = min(minY, s.Y)
	}

	shiftX := max(0, margin-minX)
	shiftY := max(0, margin-minY)
	if shiftX < 1 && shiftY < 1 {
		return 0
	}

	moved := 0
	for _, s := range shapes {
		s.X = geom.SnapToGrid(s.X+shiftX, grid)
		s.Y = geom.SnapToGrid(s.Y+shiftY, grid)
		moved++
	}
	return moved
}
