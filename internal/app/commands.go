package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/shadergraph/internal/ctxlog"
	"github.com/specialistvlad/shadergraph/internal/document"
	"github.com/specialistvlad/shadergraph/internal/fsutil"
)

// Extensions of saved documents and generated source.
const (
	DocumentExt = ".hcl"
	SourceExt   = ".hlsl"
)

// NewDocument writes an empty document to path. An existing file is left
// alone.
func (a *App) NewDocument(ctx context.Context, path string) error {
	ctx = a.Context(ctx)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return document.New(a.documentOptions()).Save(ctx, path)
}

// Load reads a saved document with the app's settings.
func (a *App) Load(ctx context.Context, path string) (*document.Document, error) {
	return document.Load(a.Context(ctx), path, a.documentOptions())
}

// Generate prints the source of the document at path.
func (a *App) Generate(ctx context.Context, path string) error {
	ctx = a.Context(ctx)
	doc, err := a.Load(ctx, path)
	if err != nil {
		return err
	}
	src, err := doc.GenerateSource(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.outW, src)
	return err
}

// Export writes the source of the document at path to out, or to the
// configured export path when out is empty.
func (a *App) Export(ctx context.Context, path, out string) error {
	ctx = a.Context(ctx)
	if out == "" {
		out = a.config.ExportPath
	}
	doc, err := a.Load(ctx, path)
	if err != nil {
		return err
	}
	return doc.Export(ctx, out)
}

// ExportDir exports every document under dir next to itself. It keeps going
// past broken documents and reports all failures together.
func (a *App) ExportDir(ctx context.Context, dir string) error {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(dir, DocumentExt)
	if err != nil {
		return fmt.Errorf("failed to list documents in %s: %w", dir, err)
	}
	if len(files) == 0 {
		logger.Warn("No documents found.", "dir", dir)
		return nil
	}

	var errs []error
	for _, path := range files {
		if err := a.Export(ctx, path, fsutil.ReplaceExtension(path, SourceExt)); err != nil {
			logger.Error("Export failed.", "document", path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	logger.Info("🏁 Export finished.", "documents", len(files), "failed", len(errs))
	return errors.Join(errs...)
}
