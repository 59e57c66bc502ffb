package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/archpadhq/archpad/internal/config"
	"github.com/archpadhq/archpad/internal/server"
	"github.com/archpadhq/archpad/pkg/catalog"
	"github.com/archpadhq/archpad/pkg/store"
	"github.com/archpadhq/archpad/pkg/watch"
)

// shutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		backend    string
		noWatch    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the archpad HTTP API",
		Long: `Run the HTTP API backing the canvas frontend.

The server exposes the tool catalog, tool descriptions, and persisted designs
under /api. Configuration comes from a TOML file (archpad.toml by default);
flags override file values.

Missing or unreadable catalog files are not fatal: the server starts with an
empty palette and picks up the files once they appear, provided watching is
enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if backend != "" {
				cfg.Store.Backend = backend
			}
			if noWatch {
				cfg.Catalog.Watch = false
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file path")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&backend, "store", "", "design store backend: memory, file, redis, mongo (overrides config)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable catalog file watching")

	return cmd
}

// runServe wires the store, catalog, watchers, and HTTP server together and
// blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	st, err := c.openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	defer st.Close()

	taxonomy, index := c.loadCatalog(cfg.Catalog)

	srv := server.New(taxonomy, index, st, c.Logger).WithCORSOrigin(cfg.Server.CORSOrigin)

	if cfg.Catalog.Watch {
		reload := func() {
			t, i := c.loadCatalog(cfg.Catalog)
			srv.Reload(t, i)
		}
		for _, path := range []string{cfg.Catalog.Path, cfg.Catalog.Descriptions} {
			w := watch.New(path, reload, c.Logger)
			go func() {
				if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					c.Logger.Error("catalog watcher stopped", "err", err)
				}
			}()
		}
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", "addr", cfg.Server.Addr, "store", cfg.Store.Backend, "tools", taxonomy.ToolCount())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// loadCatalog reads both catalog files. Failures degrade to empty data with a
// warning rather than aborting: the editor works without a palette, and the
// watcher reloads once the files become readable.
func (c *CLI) loadCatalog(cfg config.CatalogConfig) (catalog.Taxonomy, catalog.Index) {
	taxonomy, err := catalog.LoadTaxonomy(cfg.Path)
	if err != nil {
		c.Logger.Warn("catalog unavailable, serving empty palette", "err", err)
	}

	index, err := catalog.LoadIndex(cfg.Descriptions)
	if err != nil {
		c.Logger.Warn("descriptions unavailable", "err", err)
	}

	return taxonomy, index
}

// openStore constructs the design store selected by the config.
func (c *CLI) openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemoryStore(), nil

	case config.BackendFile:
		return store.NewFileStore(cfg.Dir)

	case config.BackendRedis:
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

	case config.BackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
