// Command notes serves the notes API on promisemux.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/config"
	"github.com/dmitrymomot/promisemux/core/health"
	"github.com/dmitrymomot/promisemux/core/logger"
	"github.com/dmitrymomot/promisemux/core/router"
	"github.com/dmitrymomot/promisemux/core/server"
	"github.com/dmitrymomot/promisemux/integration/database/pg"
	"github.com/dmitrymomot/promisemux/integration/database/redis"
	"github.com/dmitrymomot/promisemux/internal/notes"
	"github.com/dmitrymomot/promisemux/middleware"
	"github.com/dmitrymomot/promisemux/pkg/metrics"
	"github.com/dmitrymomot/promisemux/pkg/ratelimiter"
)

type Config struct {
	Server server.Config `envPrefix:"NOTES_"`
	Redis  redis.Config
	PG     pg.Config
	Log    logger.Config
	Limit  ratelimiter.Config

	Store          string `env:"NOTES_STORE" envDefault:"memory"` // memory, redis or postgres
	RedisKey       string `env:"NOTES_REDIS_KEY" envDefault:"promisemux:notes"`
	MaxBodySize    int64  `env:"NOTES_MAX_BODY_SIZE" envDefault:"65536"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	LimitEnabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
}

// backend bundles what the selected storage provides to the service.
type backend struct {
	store   notes.Store
	limits  ratelimiter.Store
	checks  []func(context.Context) error
	cleanup func(ctx context.Context) func() error
	close   func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.NewFromConfig(cfg.Log)

	be, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	opts := []promisemux.Option{promisemux.WithLogger(log)}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("notes")
		opts = append(opts, promisemux.WithObserver(m.Observe))
	}

	mux := promisemux.New(router.New(router.WithLogger(log)), opts...)
	mux.Use("",
		middleware.RequestID(),
		middleware.Logging(log),
		middleware.SecurityHeaders(),
	)
	if cfg.LimitEnabled {
		limiter, err := ratelimiter.NewBucket(be.limits, cfg.Limit)
		if err != nil {
			return err
		}
		mux.Use("/notes", middleware.RateLimit(limiter))
	}
	mux.Use("/notes", middleware.BodyLimit(cfg.MaxBodySize))

	mux.Get("/health/live", health.Liveness)
	mux.Get("/health/ready", health.Readiness(log, be.checks...))
	notes.Register(mux, be.store)

	var handler http.Handler = mux
	if m != nil {
		mux.Original().Handle(http.MethodGet, "/metrics", func(w http.ResponseWriter, r *http.Request, next router.Next) {
			m.Handler().ServeHTTP(w, r)
		})
		handler = m.Instrument(mux)
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "notes service configured",
		logger.Component("notes"),
		slog.String("store", cfg.Store),
		slog.Bool("metrics", cfg.MetricsEnabled),
		slog.Bool("rate_limit", cfg.LimitEnabled),
		logger.Count("routes", len(mux.Original().Routes())),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, handler))
	if be.cleanup != nil {
		g.Go(be.cleanup(ctx))
	}
	return g.Wait()
}

// openStore connects the storage selected by cfg.Store.
func openStore(ctx context.Context, cfg Config, log *slog.Logger) (backend, error) {
	switch cfg.Store {
	case "memory":
		limits := ratelimiter.NewMemoryStore()
		return backend{
			store:   notes.NewMemoryStore(),
			limits:  limits,
			cleanup: limits.Run,
			close:   func() {},
		}, nil
	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return backend{}, err
		}
		limits, err := ratelimiter.NewRedisStore(client, cfg.RedisKey+":ratelimit:")
		if err != nil {
			_ = client.Close()
			return backend{}, err
		}
		return backend{
			store:  notes.NewRedisStore(client, cfg.RedisKey),
			limits: limits,
			checks: []func(context.Context) error{redis.Healthcheck(client)},
			close:  func() { _ = client.Close() },
		}, nil
	case "postgres":
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return backend{}, err
		}
		if err := pg.Migrate(ctx, pool, notes.Migrations(), log); err != nil {
			pool.Close()
			return backend{}, err
		}
		// Rate limits stay per process; Postgres holds only notes.
		limits := ratelimiter.NewMemoryStore()
		return backend{
			store:   notes.NewPostgresStore(pool),
			limits:  limits,
			checks:  []func(context.Context) error{pg.Healthcheck(pool)},
			cleanup: limits.Run,
			close:   pool.Close,
		}, nil
	default:
		return backend{}, fmt.Errorf("%w: %q", errUnknownStore, cfg.Store)
	}
}

var errUnknownStore = errors.New("unknown NOTES_STORE")
