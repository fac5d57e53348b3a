// Package layout implements automatic diagram layout: a Sugiyama-style
// layered algorithm for directed graphs, iterative overlap resolution,
// simple arrangement helpers (rows, columns, grids, trees), and a set of
// polish passes (compaction, alignment, page centering, edge label
// placement).
//
// The entry points operate on diagram.Diagram documents. Sugiyama builds a
// fresh diagram from an edge list; Relayout recomputes positions for an
// existing one. Both snap every resulting coordinate to the diagram grid.
package layout

// Config tunes the layout engine. The zero value is not useful; use
// DefaultConfig and override fields, or load a config file via the CLI.
type Config struct {
	// Spacing
	RankSpacing     float64 `toml:"rank_spacing"`      // gap between layers
	NodeSpacing     float64 `toml:"node_spacing"`      // gap between nodes in a layer
	GroupPadding    float64 `toml:"group_padding"`     // padding inside containers
	EdgeLabelMargin float64 `toml:"edge_label_margin"` // min gap between edge labels and shapes
	MinNodeDistance float64 `toml:"min_node_distance"` // min distance between any two nodes

	// Dimensions
	DefaultWidth  float64 `toml:"default_width"`
	DefaultHeight float64 `toml:"default_height"`

	// Grid
	GridSize int `toml:"grid_size"`

	// Algorithm tuning
	MaxOverlapIterations int     `toml:"max_overlap_iterations"`
	OverlapPadding       float64 `toml:"overlap_padding"`
	BarycenterIterations int     `toml:"barycenter_iterations"`
	Compact              bool    `toml:"compact"`

	// Edge routing
	EdgeMargin float64 `toml:"edge_margin"`
	RouteEdges bool    `toml:"route_edges"`

	// Starting position
	StartX float64 `toml:"start_x"`
	StartY float64 `toml:"start_y"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() *Config {
	return &Config{
		RankSpacing:          100,
		NodeSpacing:          60,
		GroupPadding:         30,
		EdgeLabelMargin:      10,
		MinNodeDistance:      40,
		DefaultWidth:         120,
		DefaultHeight:        60,
		GridSize:             10,
		MaxOverlapIterations: 50,
		OverlapPadding:       20,
		BarycenterIterations: 4,
		Compact:              true,
		EdgeMargin:           15,
		RouteEdges:           true,
		StartX:               50,
		StartY:               80,
	}
}

// normalized returns cfg with zero-valued tuning fields replaced by their
// defaults, so partially populated configs (e.g. from TOML files) behave.
func (c *Config) normalized() *Config {
	def := DefaultConfig()
	if c == nil {
		return def
	}
	out := *c
	if out.RankSpacing <= 0 {
		out.RankSpacing = def.RankSpacing
	}
	if out.NodeSpacing <= 0 {
		out.NodeSpacing = def.NodeSpacing
	}
	if out.GroupPadding <= 0 {
		out.GroupPadding = def.GroupPadding
	}
	if out.EdgeLabelMargin <= 0 {
		out.EdgeLabelMargin = def.EdgeLabelMargin
	}
	if out.MinNodeDistance <= 0 {
		out.MinNodeDistance = def.MinNodeDistance
	}
	if out.DefaultWidth <= 0 {
		out.DefaultWidth = def.DefaultWidth
	}
	if out.DefaultHeight <= 0 {
		out.DefaultHeight = def.DefaultHeight
	}
	if out.GridSize <= 0 {
		out.GridSize = def.GridSize
	}
	if out.MaxOverlapIterations <= 0 {
		out.MaxOverlapIterations = def.MaxOverlapIterations
	}
	if out.OverlapPadding <= 0 {
		out.OverlapPadding = def.OverlapPadding
	}
	if out.BarycenterIterations <= 0 {
		out.BarycenterIterations = def.BarycenterIterations
	}
	if out.EdgeMargin <= 0 {
		out.EdgeMargin = def.EdgeMargin
	}
	if out.StartX == 0 {
		out.StartX = def.StartX
	}
	if out.StartY == 0 {
		out.StartY = def.StartY
	}
	return &out
}
