package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"laygrid/pkg/cache"
	"laygrid/pkg/pipeline"
	"laygrid/pkg/server"
	"laygrid/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		storeKind string
		mongoURI  string
		cacheKind string
		redisURL  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Diagrams are stored by name and all layout operations run against stored
diagrams. The memory store suits a single instance; use --store mongo for
persistence across restarts and --cache redis to share layout results
between instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, storeKind, mongoURI, cacheKind, redisURL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&storeKind, "store", "memory", "diagram store: memory, mongo")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	cmd.Flags().StringVar(&cacheKind, "cache", "memory", "layout cache: memory, file, redis, none")
	cmd.Flags().StringVar(&redisURL, "redis-url", "redis://localhost:6379/0", "Redis connection URL")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, storeKind, mongoURI, cacheKind, redisURL string) error {
	st, err := newStore(ctx, storeKind, mongoURI)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	cc, err := newServeCache(ctx, cacheKind, redisURL)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(st, runner, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "store", storeKind, "cache", cacheKind)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newStore builds the diagram store for the given kind.
func newStore(ctx context.Context, kind, mongoURI string) (store.Store, error) {
	switch kind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	default:
		return nil, fmt.Errorf("unknown store %q (must be memory or mongo)", kind)
	}
}

// newServeCache builds the layout cache for the given kind.
func newServeCache(ctx context.Context, kind, redisURL string) (cache.Cache, error) {
	switch kind {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, redisURL)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache %q (must be memory, file, redis, or none)", kind)
	}
}
