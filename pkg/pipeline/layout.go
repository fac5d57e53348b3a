package pipeline

import (
	"laygrid/pkg/diagram"
	"laygrid/pkg/layout"
)

// layoutDiagram runs the layered layout over the diagram in place.
func layoutDiagram(d *diagram.Diagram, opts Options) {
	cfg := opts.LayoutConfig()
	layout.Relayout(d, opts.Direction, cfg)
	if opts.Compact {
		layout.Compact(d, cfg.NodeSpacing)
	}
}

// TidyOptions configures the Tidy polish pass.
type TidyOptions struct {
	// Margin is the gap Compact preserves between shapes and the page
	// margin EnsurePageMargins enforces. Zero means the node spacing default.
	Margin float64 `json:"margin,omitempty"`

	// Direction controls row vs column size equalization. Empty means TB.
	Direction string `json:"direction,omitempty"`

	// CenterPage centers the content on the page instead of just
	// enforcing margins. Requires page dimensions on the diagram.
	CenterPage bool `json:"center_page,omitempty"`
}

// TidyResult summarizes what a Tidy pass changed.
type TidyResult struct {
	Moved     int `json:"moved"`
	Aligned   int `json:"aligned"`
	Equalized int `json:"equalized"`
	Ports     int `json:"ports"`
	Labels    int `json:"labels"`
}

// Tidy runs the polish passes over an already laid out diagram: compaction,
// row and column alignment, size equalization, page placement, connector
// port assignment, and edge label positioning. It does not recompute the
// layout itself.
func Tidy(d *diagram.Diagram, opts TidyOptions) TidyResult {
	cfg := layout.DefaultConfig()
	margin := opts.Margin
	if margin <= 0 {
		margin = cfg.NodeSpacing
	}
	direction := opts.Direction
	if direction == "" {
		direction = "TB"
	}

	var res TidyResult
	res.Moved = layout.Compact(d, margin)
	res.Aligned = layout.AlignRowBaselines(d, margin/2) + layout.AlignColumnCenters(d, margin/2)
	res.Equalized = layout.EqualizeRowSizes(d, direction, margin)

	if opts.CenterPage {
		res.Moved += layout.CenterOnPage(d, margin)
	} else {
		res.Moved += layout.EnsurePageMargins(d, margin)
	}

	res.Ports = layout.AssignPorts(d)
	res.Labels = layout.PositionEdgeLabels(d, cfg.EdgeLabelMargin)
	return res
}
