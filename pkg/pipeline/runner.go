package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"laygrid/pkg/cache"
	"laygrid/pkg/diagram"
	"laygrid/pkg/observability"
	"laygrid/pkg/route"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete layout → route → optimize pipeline with caching.
// The diagram is modified in place and also returned in the result.
func (r *Runner) Execute(ctx context.Context, d *diagram.Diagram, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Diagram: d}
	result.Stats.ShapeCount = len(d.Shapes)
	result.Stats.EdgeCount = len(d.Connectors)

	if data, err := diagram.Marshal(d); err == nil {
		result.DiagramHash = cache.Hash(data)
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	laid, layoutHit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	copyGeometry(d, laid)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"shapes", len(d.Shapes),
		"direction", opts.Direction,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Route
	if opts.RouteEdges {
		routeStart := time.Now()
		routed, routeHit, err := r.RouteWithCacheInfo(ctx, d, opts)
		if err != nil {
			return nil, fmt.Errorf("route: %w", err)
		}
		result.Stats.RoutedEdges = routed
		result.Stats.RouteTime = time.Since(routeStart)
		result.CacheInfo.RouteHit = routeHit

		r.Logger.Info("routed edges",
			"routed", routed,
			"cached", routeHit,
			"duration", result.Stats.RouteTime)
	}

	// Stage 3: Optimize
	if opts.Optimize {
		optStart := time.Now()
		modified := route.Optimize(d, route.OptimizeOptions{
			Margin:       opts.EdgeMargin,
			NudgeSpacing: opts.GridSize,
		})
		result.Stats.Optimized = modified
		result.Stats.OptimizeTime = time.Since(optStart)
		observability.Layout().OnOptimizeComplete(ctx, modified, result.Stats.OptimizeTime, nil)

		r.Logger.Info("optimized edge paths",
			"modified", modified,
			"duration", result.Stats.OptimizeTime)
	}

	return result, nil
}

// LayoutWithCacheInfo computes the layout with caching and returns cache hit info.
// The returned diagram carries the computed geometry; the input is not modified.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d *diagram.Diagram, opts Options) (*diagram.Diagram, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	data, err := diagram.Marshal(d)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(data), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if laid, err := diagram.Unmarshal(cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return laid, true, nil
			}
			// Corrupt entry, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// A working copy keeps cache keys stable: the input hash must reflect
	// the pre-layout geometry.
	work, err := diagram.Unmarshal(data)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, opts.Direction, len(work.Shapes))
	layoutDiagram(work, opts)
	observability.Layout().OnLayoutComplete(ctx, opts.Direction, time.Since(start), nil)

	if laidData, err := diagram.Marshal(work); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, laidData, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(laidData))
		}
	}

	return work, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d *diagram.Diagram, opts Options) (*diagram.Diagram, error) {
	laid, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return laid, err
}

// RouteWithCacheInfo routes edges with caching and returns cache hit info.
// The diagram is modified in place.
func (r *Runner) RouteWithCacheInfo(ctx context.Context, d *diagram.Diagram, opts Options) (int, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return 0, false, err
	}

	data, err := diagram.Marshal(d)
	if err != nil {
		return 0, false, err
	}
	cacheKey := r.Keyer.RouteKey(cache.Hash(data), opts.RouteKeyOpts())

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if routed, err := diagram.Unmarshal(cached); err == nil && len(routed.Connectors) == len(d.Connectors) {
				observability.Cache().OnCacheHit(ctx, "route")
				for i := range d.Connectors {
					d.Connectors[i].Waypoints = routed.Connectors[i].Waypoints
				}
				return countRouted(d), true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "route")
	}

	start := time.Now()
	observability.Layout().OnRouteStart(ctx, len(d.Connectors))
	routed := route.Edges(d, opts.EdgeMargin)
	observability.Layout().OnRouteComplete(ctx, routed, time.Since(start), nil)

	if routedData, err := diagram.Marshal(d); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, routedData, cache.TTLRoute); err == nil {
			observability.Cache().OnCacheSet(ctx, "route", len(routedData))
		}
	}

	return routed, false, nil
}

// countRouted counts connectors that carry waypoints.
func countRouted(d *diagram.Diagram) int {
	n := 0
	for i := range d.Connectors {
		if len(d.Connectors[i].Waypoints) > 0 {
			n++
		}
	}
	return n
}

// copyGeometry transfers shape positions, sizes, and connector waypoints
// from src into dst, matching by index. Both diagrams must describe the
// same content.
func copyGeometry(dst, src *diagram.Diagram) {
	if dst == src {
		return
	}
	for i := range dst.Shapes {
		if i >= len(src.Shapes) {
			break
		}
		dst.Shapes[i].X = src.Shapes[i].X
		dst.Shapes[i].Y = src.Shapes[i].Y
		dst.Shapes[i].Width = src.Shapes[i].Width
		dst.Shapes[i].Height = src.Shapes[i].Height
	}
	for i := range dst.Connectors {
		if i >= len(src.Connectors) {
			break
		}
		dst.Connectors[i].Waypoints = src.Connectors[i].Waypoints
	}
}
