package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eggsposition/eggsposition/internal/server"
	"github.com/eggsposition/eggsposition/pkg/cache"
	"github.com/eggsposition/eggsposition/pkg/config"
	"github.com/eggsposition/eggsposition/pkg/pipeline"
	"github.com/eggsposition/eggsposition/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes conversion and rendering over HTTP. Uploaded graphs are kept
in the configured store (memory, file or mongo) and conversions are cached
in the configured cache (file, redis or none).`,
		Example: `  eggsposition serve
  eggsposition serve --addr :9090
  EGGSPOSITION_STORE_BACKEND=mongo eggsposition serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Backend == config.CacheRedis {
		// Redis instances are shared; namespace the keys.
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName)
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(runner, st, c.Logger,
		server.WithMaxUploadBytes(c.Config.Server.MaxUploadBytes),
		server.WithRenderDefaults(c.Config.Render.Engine, c.Config.Render.Detailed),
		server.WithStrictMembers(c.Config.Convert.StrictMembers),
	)

	printSuccess("Serving on %s", c.Config.Server.Addr)
	printDetail("cache: %s  store: %s", c.Config.Cache.Backend, c.Config.Store.Backend)
	return srv.ListenAndServe(ctx, c.Config.Server.Addr)
}

// newStore opens the configured document store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Store.Backend {
	case config.StoreMongo:
		st, err := store.NewMongoStore(ctx, c.Config.Store.MongoURI, c.Config.Store.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connect store: %w", err)
		}
		return st, nil
	case config.StoreFile:
		dir := c.Config.Store.Dir
		if dir == "" {
			cacheDir, err := c.Config.CacheDir()
			if err != nil {
				return nil, fmt.Errorf("store dir: %w", err)
			}
			dir = filepath.Join(cacheDir, "graphs")
		}
		return store.NewFileStore(dir)
	default:
		return store.NewMemoryStore(), nil
	}
}
