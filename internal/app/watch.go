package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/shadergraph/internal/ctxlog"
	"github.com/specialistvlad/shadergraph/internal/preview"
	"github.com/specialistvlad/shadergraph/internal/watch"
)

// Watch exports the document at path now and again after every save, until
// ctx is cancelled. When configured it also serves health and metrics and
// publishes each result to the preview host.
func (a *App) Watch(ctx context.Context, path, out string) error {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx).With("document", path)
	if out == "" {
		out = a.config.ExportPath
	}

	a.startHealthcheckServer()
	defer func() { _ = a.closeHealthcheckServer(ctx) }()

	var pub Publisher
	if a.config.Preview.URL != "" {
		p, err := a.dial(ctx, preview.Options{
			URL:   a.config.Preview.URL,
			Event: a.config.Preview.Event,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to preview host: %w", err)
		}
		defer p.Close()
		pub = p
	}

	rebuild := func(ctx context.Context, path string) error {
		doc, err := a.Load(ctx, path)
		if err != nil {
			return err
		}
		if err := doc.Export(ctx, out); err != nil {
			return err
		}
		if pub != nil {
			if err := pub.Publish(ctx, path, doc.Source()); err != nil {
				logger.Warn("Publishing to preview host failed.", "error", err)
			}
		}
		return nil
	}

	if err := rebuild(ctx, path); err != nil {
		logger.Error("Initial export failed, waiting for the next save.", "error", err)
	}

	return watch.New(path, a.config.Watch.Debounce, rebuild).Run(ctx)
}
