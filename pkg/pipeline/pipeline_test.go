package pipeline

import (
	"context"
	"testing"

	"laygrid/pkg/cache"
	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
	"laygrid/pkg/geom"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}

	if opts.Direction != "TB" {
		t.Errorf("Direction = %q, want TB", opts.Direction)
	}
	if opts.RankSpacing != 100 {
		t.Errorf("RankSpacing = %v, want 100", opts.RankSpacing)
	}
	if opts.NodeSpacing != 60 {
		t.Errorf("NodeSpacing = %v, want 60", opts.NodeSpacing)
	}
	if opts.EdgeMargin != 15 {
		t.Errorf("EdgeMargin = %v, want 15", opts.EdgeMargin)
	}
	if opts.GridSize != 10 {
		t.Errorf("GridSize = %v, want 10", opts.GridSize)
	}
}

func TestOptionsValidateDirection(t *testing.T) {
	opts := Options{Direction: "lr"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("lowercase direction should be accepted: %v", err)
	}
	if opts.Direction != "LR" {
		t.Errorf("Direction = %q, want LR", opts.Direction)
	}

	bad := Options{Direction: "diagonal"}
	err := bad.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("expected invalid direction error, got %v", err)
	}
}

func TestOptionsNegativeSpacing(t *testing.T) {
	opts := Options{RankSpacing: -5}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidSpacing) {
		t.Errorf("expected invalid spacing error, got %v", err)
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Direction: "BT", RankSpacing: 80}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second validation: %v", err)
	}
	if opts.Direction != "BT" || opts.RankSpacing != 80 {
		t.Errorf("options changed on revalidation: %+v", opts)
	}
}

func chainDiagram() *diagram.Diagram {
	d := diagram.New("chain")
	a := d.AddShape("A", 0, 0, 120, 60, "")
	b := d.AddShape("B", 0, 0, 120, 60, "")
	c := d.AddShape("C", 0, 0, 120, 60, "")
	d.AddConnector(a, b, "", "")
	d.AddConnector(b, c, "", "")
	return d
}

func TestRunnerLayoutCaching(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer r.Close()

	d := chainDiagram()
	opts := Options{}

	laid, hit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		t.Fatalf("first layout: %v", err)
	}
	if hit {
		t.Error("first run should miss the cache")
	}
	if laid.Shapes[0].Y == laid.Shapes[2].Y {
		t.Error("chain endpoints should land on different ranks")
	}

	laid2, hit2, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		t.Fatalf("second layout: %v", err)
	}
	if !hit2 {
		t.Error("second run should hit the cache")
	}
	for i := range laid.Shapes {
		if laid.Shapes[i].X != laid2.Shapes[i].X || laid.Shapes[i].Y != laid2.Shapes[i].Y {
			t.Errorf("cached layout differs for shape %d", i)
		}
	}
}

func TestRunnerLayoutRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer r.Close()

	d := chainDiagram()
	if _, _, err := r.LayoutWithCacheInfo(ctx, d, Options{}); err != nil {
		t.Fatalf("warm up: %v", err)
	}

	_, hit, err := r.LayoutWithCacheInfo(ctx, d, Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh layout: %v", err)
	}
	if hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerRouteCaching(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer r.Close()

	d := diagram.New("blocked")
	a := d.AddShape("A", -60, 70, 120, 60, "")
	b := d.AddShape("B", 340, 70, 120, 60, "")
	d.AddShape("Blocker", 180, 80, 100, 100, "")
	d.AddConnector(a, b, "", "")

	routed, hit, err := r.RouteWithCacheInfo(ctx, d, Options{})
	if err != nil {
		t.Fatalf("first route: %v", err)
	}
	if hit {
		t.Error("first run should miss the cache")
	}
	if routed != 1 {
		t.Fatalf("expected 1 routed connector, got %d", routed)
	}
	want := append([]geom.Point(nil), d.Connectors[0].Waypoints...)

	// Clearing the waypoints restores the pre-route content hash, so the
	// second run must be served from cache.
	d.Connectors[0].Waypoints = nil
	_, hit2, err := r.RouteWithCacheInfo(ctx, d, Options{})
	if err != nil {
		t.Fatalf("second route: %v", err)
	}
	if !hit2 {
		t.Error("second run should hit the cache")
	}
	if len(d.Connectors[0].Waypoints) != len(want) {
		t.Errorf("cached waypoints differ: %v vs %v", d.Connectors[0].Waypoints, want)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	d := chainDiagram()
	res, err := r.Execute(ctx, d, Options{RouteEdges: true, Optimize: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if res.Stats.ShapeCount != 3 || res.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.DiagramHash == "" {
		t.Error("diagram hash not computed")
	}
	// Execute writes the layout back into the caller's diagram.
	if d.Shapes[0].Y == d.Shapes[2].Y {
		t.Error("layout not applied to input diagram")
	}
}

func TestTidyEnforcesMargins(t *testing.T) {
	d := diagram.New("tidy")
	d.AddShape("A", -30, -20, 100, 50, "")
	d.AddShape("B", 200, 95, 100, 50, "")

	res := Tidy(d, TidyOptions{Margin: 40})
	if res.Moved == 0 {
		t.Error("expected shapes to move")
	}
	for _, s := range d.Shapes {
		if s.X < 40 || s.Y < 40 {
			t.Errorf("shape %q inside margin: (%v,%v)", s.Label, s.X, s.Y)
		}
	}
}
