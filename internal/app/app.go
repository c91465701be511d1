package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/shadergraph/internal/catalog"
	"github.com/specialistvlad/shadergraph/internal/config"
	"github.com/specialistvlad/shadergraph/internal/ctxlog"
	"github.com/specialistvlad/shadergraph/internal/document"
	"github.com/specialistvlad/shadergraph/internal/metrics"
	"github.com/specialistvlad/shadergraph/internal/preview"
)

// Publisher receives freshly generated source in watch mode.
type Publisher interface {
	Publish(ctx context.Context, document, source string) error
	Close() error
}

// Dialer opens a Publisher.
type Dialer func(ctx context.Context, opts preview.Options) (Publisher, error)

// App holds the dependencies every command shares.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *config.Config
	registry *catalog.Registry

	metricsRegistry *prometheus.Registry
	metrics         *metrics.Metrics

	dial       Dialer
	httpServer *http.Server
}

// NewApp builds an App. Command output goes to outW and logs to logW, so
// generated source on stdout stays clean.
func NewApp(outW, logW io.Writer, cfg *config.Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := prometheus.NewRegistry()
	a := &App{
		outW:            outW,
		logger:          logger,
		config:          cfg,
		registry:        catalog.Default(),
		metricsRegistry: reg,
		metrics:         metrics.New(reg),
		dial:            dialPreview,
	}
	logger.Debug("Node catalog ready.", "factories", len(a.registry.Entries()))

	return a
}

// WithDialer replaces how the preview publisher is opened.
func (a *App) WithDialer(d Dialer) *App {
	a.dial = d
	return a
}

// Context attaches the app logger to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Registry returns the node catalog. This is primarily for testing.
func (a *App) Registry() *catalog.Registry {
	return a.registry
}

// Metrics returns the collectors documents report to.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

func (a *App) documentOptions() document.Options {
	opts := document.OptionsFromConfig(a.config)
	opts.Registry = a.registry
	opts.Metrics = a.metrics
	return opts
}

func dialPreview(ctx context.Context, opts preview.Options) (Publisher, error) {
	return preview.Dial(ctx, opts)
}
