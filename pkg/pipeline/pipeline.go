// Package pipeline orchestrates the full diagram processing flow.
//
// A pipeline run takes a diagram through layout, overlap resolution, edge
// routing, and path optimization. The Runner adds caching on top so that
// repeated runs over unchanged diagrams are served from the cache.
//
// Both the CLI and the HTTP server build on this package to avoid
// duplicating caching and staging logic.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"laygrid/pkg/cache"
	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
	"laygrid/pkg/layout"
)

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Direction   string  `json:"direction,omitempty"`
	RankSpacing float64 `json:"rank_spacing,omitempty"`
	NodeSpacing float64 `json:"node_spacing,omitempty"`
	Compact     bool    `json:"compact,omitempty"`

	// Routing options
	RouteEdges bool    `json:"route_edges,omitempty"`
	EdgeMargin float64 `json:"edge_margin,omitempty"`
	GridSize   float64 `json:"grid_size,omitempty"`

	// Optimization options
	Optimize bool `json:"optimize,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option values and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := errors.ValidateDirection(o.Direction); err != nil {
		return err
	}
	o.Direction = errors.NormalizeDirection(o.Direction, "TB")

	def := layout.DefaultConfig()
	if o.RankSpacing == 0 {
		o.RankSpacing = def.RankSpacing
	}
	if o.NodeSpacing == 0 {
		o.NodeSpacing = def.NodeSpacing
	}
	if o.EdgeMargin == 0 {
		o.EdgeMargin = def.EdgeMargin
	}
	if o.GridSize == 0 {
		o.GridSize = float64(def.GridSize)
	}
	if o.RankSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidSpacing, "rank_spacing must be positive, got %v", o.RankSpacing)
	}
	if o.NodeSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidSpacing, "node_spacing must be positive, got %v", o.NodeSpacing)
	}

	o.validated = true
	return nil
}

// LayoutConfig builds the layout configuration for these options.
func (o *Options) LayoutConfig() *layout.Config {
	cfg := layout.DefaultConfig()
	cfg.RankSpacing = o.RankSpacing
	cfg.NodeSpacing = o.NodeSpacing
	cfg.Compact = o.Compact
	cfg.EdgeMargin = o.EdgeMargin
	cfg.GridSize = int(o.GridSize)
	// Routing is a separate pipeline stage with its own cache key.
	cfg.RouteEdges = false
	return cfg
}

// LayoutKeyOpts returns the cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Direction:   o.Direction,
		RankSpacing: o.RankSpacing,
		NodeSpacing: o.NodeSpacing,
		Compact:     o.Compact,
	}
}

// RouteKeyOpts returns the cache key options for the routing stage.
func (o *Options) RouteKeyOpts() cache.RouteKeyOpts {
	return cache.RouteKeyOpts{
		Margin:   o.EdgeMargin,
		GridSize: o.GridSize,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the processed diagram.
	Diagram *diagram.Diagram

	// DiagramHash is the content hash of the input diagram.
	DiagramHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ShapeCount   int
	EdgeCount    int
	RoutedEdges  int
	Optimized    int
	LayoutTime   time.Duration
	RouteTime    time.Duration
	OptimizeTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RouteHit  bool
}

// AnyHit reports whether any stage was served from cache.
func (c CacheInfo) AnyHit() bool {
	return c.LayoutHit || c.RouteHit
}
