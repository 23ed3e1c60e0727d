package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/hydradoc/config"
	"github.com/c360studio/hydradoc/generator"
	"github.com/c360studio/hydradoc/storage"
)

// App wires configuration, NATS publishing and the generator together.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	// NATS
	natsConn *nats.Conn
	js       jetstream.JetStream

	// Storage
	store *storage.Store

	registry  *prometheus.Registry
	generator *generator.Generator
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
}

// Start connects to NATS when publishing is enabled and creates the
// generator.
func (a *App) Start(ctx context.Context) error {
	opts := []generator.Option{
		generator.WithLogger(a.logger),
		generator.WithMetrics(generator.NewMetrics(a.registry)),
	}

	if a.cfg.PublishEnabled() {
		if err := a.startNATS(ctx); err != nil {
			return fmt.Errorf("start NATS: %w", err)
		}
		opts = append(opts, generator.WithPublisher(a.store))
	}

	gen, err := generator.New(a.cfg, opts...)
	if err != nil {
		return err
	}
	a.generator = gen
	return nil
}

func (a *App) startNATS(ctx context.Context) error {
	a.logger.Info("Connecting to NATS", "url", a.cfg.NATS.URL)
	conn, err := nats.Connect(a.cfg.NATS.URL,
		nats.Name("hydradoc"),
		nats.Timeout(a.cfg.NATS.Timeout))
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	a.natsConn = conn

	// Get JetStream context
	js, err := jetstream.New(a.natsConn)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}
	a.js = js

	ctx, cancel := context.WithTimeout(ctx, a.cfg.NATS.Timeout)
	defer cancel()
	store, err := storage.NewStore(ctx, a.js, a.cfg.NATS.Bucket)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	a.store = store
	return nil
}

// Generate runs a single generation.
func (a *App) Generate(ctx context.Context) (*generator.Result, error) {
	return a.generator.Run(ctx)
}

// Watch regenerates on schema changes until ctx is done.
func (a *App) Watch(ctx context.Context, metricsAddr string) error {
	if len(a.cfg.Schema.Paths) == 0 {
		return errors.New("watch needs schema.paths; the builtin schema never changes")
	}

	w, err := generator.NewWatcher(a.generator, generator.WatcherConfig{
		Patterns:      a.cfg.Schema.Paths,
		DebounceDelay: a.cfg.Watch.Debounce,
		Logger:        a.logger,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	if metricsAddr != "" {
		srv := a.serveMetrics(metricsAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	for ev := range w.Events() {
		if ev.Error != nil {
			a.logger.Error("Regeneration failed", "paths", ev.Paths, "error", ev.Error)
			continue
		}
		a.logger.Info("Regenerated documentation", "paths", ev.Paths, "output", ev.Result.Path)
	}
	return nil
}

func (a *App) serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Metrics server failed", "error", err)
		}
	}()
	return srv
}

// Shutdown releases the NATS connection.
func (a *App) Shutdown() {
	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.logger.Warn("Failed to drain NATS connection", "error", err)
		}
		a.natsConn.Close()
	}
}
