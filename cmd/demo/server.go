package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/autoroute/app/colors"
	"github.com/vango-dev/autoroute/app/routes"
	"github.com/vango-dev/autoroute/app/site"
	"github.com/vango-dev/autoroute/internal/config"
	"github.com/vango-dev/autoroute/internal/errors"
	"github.com/vango-dev/autoroute/pkg/middleware"
	"github.com/vango-dev/autoroute/pkg/router"
)

// app is the assembled demo: its handler and what must be released on exit.
type app struct {
	handler http.Handler
	env     *site.Env
	table   *router.Table
	close   func()
}

// newApp opens the store, discovers the routes and builds the handler
// chain. reg receives the request metrics.
func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger, reg *prometheus.Registry, seed bool) (*app, error) {
	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*app, error) {
		closeStore()
		return nil, err
	}

	if seed {
		if err := colors.Seed(ctx, store, time.Now()); err != nil {
			return fail(fmt.Errorf("seed colors: %w", err))
		}
	}

	env, err := site.New(store, log)
	if err != nil {
		return fail(err)
	}

	opts := append(cfg.RouterOptions(), router.WithLogger(log))
	discovered, err := router.Discover[http.Handler](cfg.RoutesPath(), routes.Registry(), opts...)
	if err != nil {
		return fail(errors.FromRouteError(err))
	}
	if err := router.Validate(discovered); err != nil {
		return fail(errors.FromRouteError(err))
	}

	table, err := router.NewTable(discovered, router.WithAppendSlash(cfg.Server.AppendSlash))
	if err != nil {
		return fail(errors.FromRouteError(err))
	}
	env.Table = table

	for _, r := range discovered {
		log.Debug("route", slog.String("pattern", "/"+r.Pattern), slog.String("name", r.Name), slog.String("module", r.Module))
	}
	log.Info("routes discovered", slog.Int("count", len(discovered)), slog.String("root", cfg.RoutesPath()))

	mux := chi.NewRouter()
	mux.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.Logger(log),
		chimw.Recoverer,
		middleware.Prometheus(middleware.WithRegistry(reg), middleware.WithNamespace("demo")),
		middleware.OpenTelemetry(middleware.WithTracerName("autoroute-demo")),
		site.Middleware(env),
	)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Mount("/", table)

	return &app{handler: mux, env: env, table: table, close: closeStore}, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (colors.Store, func(), error) {
	switch cfg.Driver {
	case config.StorePostgres:
		s, closeFn, err := colors.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, closeFn, nil
	case config.StoreS3:
		s, err := colors.OpenS3(ctx, cfg.Bucket, cfg.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		return colors.NewMemoryStore(), func() {}, nil
	}
}

// newRegistry returns a metrics registry with the Go and process collectors.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// serve runs the demo until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, addr string, seed bool) error {
	a, err := newApp(ctx, cfg, log, newRegistry(), seed)
	if err != nil {
		return err
	}
	defer a.close()

	if addr == "" {
		addr = cfg.Address()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", "http://"+ln.Addr().String()), slog.String("store", cfg.Store.Driver))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
