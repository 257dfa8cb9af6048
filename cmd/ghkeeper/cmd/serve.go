package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/internal/config"
	"github.com/dmitrymomot/ghkeeper/internal/handlers"
	"github.com/dmitrymomot/ghkeeper/middlewares"
	"github.com/dmitrymomot/ghkeeper/pkg/cache"
	"github.com/dmitrymomot/ghkeeper/pkg/cookie"
	"github.com/dmitrymomot/ghkeeper/pkg/db"
	"github.com/dmitrymomot/ghkeeper/pkg/github"
	"github.com/dmitrymomot/ghkeeper/pkg/locale"
	"github.com/dmitrymomot/ghkeeper/pkg/logger"
	"github.com/dmitrymomot/ghkeeper/pkg/oauth"
	"github.com/dmitrymomot/ghkeeper/pkg/redis"
	"github.com/dmitrymomot/ghkeeper/pkg/session"
)

const (
	sessionKeyPrefix   = "ghkeeper:session"
	sentryFlushTimeout = 2 * time.Second
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.Addr = listenAddr
		}

		log := logger.NewWithSentry(cfg.Log, cfg.Sentry, middlewares.RequestIDExtractor())

		app, runOpts, err := buildApp(cmd.Context(), cfg, log)
		if err != nil {
			log.Error("failed to build application", slog.String("error", err.Error()))
			return err
		}

		runOpts = append(runOpts,
			internal.WithContext(cmd.Context()),
			internal.Logger(log),
			internal.ShutdownTimeout(cfg.ShutdownTimeout),
			internal.ShutdownHook(logger.FlushSentry(sentryFlushTimeout)),
		)
		return app.Run(cfg.Addr, runOpts...)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address, overrides APP_ADDR")
}

// storeBackend is an opened session store with its lifecycle hooks.
type storeBackend struct {
	store   session.Store
	expirer session.Expirer
	checks  []internal.HealthOption
	hooks   []internal.RunOption
}

// buildApp wires every component from cfg. Resources opened before a
// failure are released before returning.
func buildApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*internal.App, []internal.RunOption, error) {
	signer, err := cookie.NewSigner(cfg.Session.Secret)
	if err != nil {
		return nil, nil, err
	}
	cookies := cookie.New(
		cookie.WithSigner(signer),
		cookie.WithSecure(!cfg.IsDevelopment()),
		cookie.WithSameSite(http.SameSiteLaxMode),
	)

	backend, err := openStore(ctx, cfg, log)
	if err != nil {
		_ = signer.Close(ctx)
		return nil, nil, err
	}
	runOpts := append([]internal.RunOption{internal.ShutdownHook(signer.Close)}, backend.hooks...)

	if backend.expirer != nil {
		sweeper, err := session.NewSweeper(backend.expirer, cfg.Session.SweepSchedule, log)
		if err != nil {
			closeAll(ctx, runOpts)
			return nil, nil, err
		}
		runOpts = append(runOpts, internal.StartupHook(sweeper.Start), internal.ShutdownHook(sweeper.Stop))
	}

	sessions, err := internal.NewSessionManager(backend.store, cookies)
	if err != nil {
		closeAll(ctx, runOpts)
		return nil, nil, err
	}

	locales, err := locale.NewSet(cfg.Locales, cfg.DefaultLocale)
	if err != nil {
		closeAll(ctx, runOpts)
		return nil, nil, err
	}

	provider, err := oauth.NewGitHubProvider(cfg.OAuth, oauth.WithHTTPClient(&http.Client{Timeout: cfg.GitHub.HTTPTimeout}))
	if err != nil {
		closeAll(ctx, runOpts)
		return nil, nil, err
	}

	gh := github.NewClientFromConfig(cfg.GitHub, github.WithLogger(log))

	var mws []internal.Middleware
	if len(cfg.CORSOrigins) > 0 {
		mws = append(mws, middlewares.CORS(cfg.CORSOrigins))
	}
	mws = append(mws,
		middlewares.RequestID(),
		middlewares.AccessLog(),
		middlewares.Recover(),
		middlewares.Locale(locales, true),
	)

	var ui fs.FS
	opts := []internal.Option{
		internal.WithLogger(log),
		internal.WithSession(sessions),
		internal.WithMiddleware(mws...),
		internal.WithHealthChecks(backend.checks...),
	}
	if cfg.UIDir != "" {
		ui = os.DirFS(cfg.UIDir)
		opts = append(opts, internal.WithStaticFiles("/assets/", ui, "assets"))
	}
	opts = append(opts, internal.WithHandlers(
		handlers.NewAuth(provider, locales),
		handlers.NewAPI(gh, middlewares.Timeout(cfg.RequestTimeout)),
		handlers.NewPages(locales, ui),
	))

	log.Info("application configured",
		slog.String("env", cfg.Env),
		slog.String("session_store", cfg.Session.Store),
		slog.Any("locales", locales.Supported()),
	)
	return internal.New(opts...), runOpts, nil
}

// openStore opens the backend selected by SESSION_STORE.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storeBackend, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		client, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		rc := cache.NewRedis[session.Data](client, nil, cache.WithPrefix(sessionKeyPrefix))
		return &storeBackend{
			store:  session.NewCacheStore(rc),
			checks: []internal.HealthOption{internal.WithReadinessCheck("redis", redis.Healthcheck(client))},
			hooks:  []internal.RunOption{internal.ShutdownHook(redis.Shutdown(client))},
		}, nil

	case config.StorePostgres:
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, pool, session.Migrations, session.MigrationsDir, db.DefaultMigrationsTable, log); err != nil {
			pool.Close()
			return nil, err
		}
		store := session.NewPostgresStore(pool)
		return &storeBackend{
			store:   store,
			expirer: store,
			checks:  []internal.HealthOption{internal.WithReadinessCheck("postgres", db.Healthcheck(pool))},
			hooks:   []internal.RunOption{internal.ShutdownHook(db.Shutdown(pool))},
		}, nil

	case config.StoreBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.BoltPath), 0o700); err != nil {
			return nil, errors.Join(session.ErrStore, err)
		}
		store, err := session.OpenBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return &storeBackend{
			store:   store,
			expirer: store,
			hooks: []internal.RunOption{internal.ShutdownHook(func(context.Context) error {
				return store.Close()
			})},
		}, nil

	default:
		mem := cache.NewMemory[session.Data]()
		return &storeBackend{
			store: session.NewCacheStore(mem),
			hooks: []internal.RunOption{internal.ShutdownHook(func(context.Context) error {
				return mem.Close()
			})},
		}, nil
	}
}

// closeAll runs the shutdown hooks collected in opts.
func closeAll(ctx context.Context, opts []internal.RunOption) {
	_ = internal.RunShutdownHooks(ctx, opts...)
}
