// Package cache provides pluggable result caching for layout and routing.
//
// Layout and routing are deterministic functions of the diagram content and
// the configuration, so their results can be keyed by content hash and reused
// across runs. Several backends are available:
//
//   - MemoryCache: in-process, for servers and tests
//   - FileCache: on-disk, for CLI usage across invocations
//   - RedisCache: shared, for multi-instance deployments
//   - NullCache: disables caching entirely
//
// Keys are produced by a Keyer so that callers never build key strings by
// hand. ScopedKeyer adds a prefix for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Default TTLs per result type. Layout and route results are derived data
// and can always be recomputed, so they expire rather than live forever.
const (
	TTLLayout = 24 * time.Hour
	TTLRoute  = 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the layout parameters that affect cached results.
type LayoutKeyOpts struct {
	Direction   string
	RankSpacing float64
	NodeSpacing float64
	Compact     bool
}

// RouteKeyOpts are the routing parameters that affect cached results.
type RouteKeyOpts struct {
	Margin   float64
	GridSize float64
}

// Keyer generates cache keys for the different result types.
type Keyer interface {
	// DiagramKey generates a key for a stored diagram by name.
	DiagramKey(name string) string

	// LayoutKey generates a key for a computed layout.
	// The hash identifies the diagram content the layout was computed from.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string

	// RouteKey generates a key for computed edge routes.
	RouteKey(diagramHash string, opts RouteKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DiagramKey generates a key for a stored diagram by name.
func (k *DefaultKeyer) DiagramKey(name string) string {
	return "diagram:" + name
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", diagramHash, opts.Direction, opts.RankSpacing, opts.NodeSpacing, opts.Compact)
}

// RouteKey generates a key for computed edge routes.
func (k *DefaultKeyer) RouteKey(diagramHash string, opts RouteKeyOpts) string {
	return hashKey("route", diagramHash, opts.Margin, opts.GridSize)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
