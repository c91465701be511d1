// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package watch calls a handler whenever a single file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/shadergraph/internal/ctxlog"
)

// Handler reacts to a change of the watched file.
type Handler func(ctx context.Context, path string) error

// Watcher follows one file. Events that arrive within the debounce window of
// each other collapse into one handler call.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
}

// New creates a watcher for path.
func New(path string, debounce time.Duration, h Handler) *Watcher {
	return &Watcher{path: path, debounce: debounce, handler: h}
}

// Run blocks until ctx is cancelled. Handler errors are logged and watching
// goes on.
//
// The parent directory is watched rather than the file itself, since editors
// often save by writing a temporary file and renaming it over the original.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("path", w.path)

	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("👀 Watching for changes.", "debounce", w.debounce)

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watcher stopped.")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("File event.", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer, timerC = nil, nil
			if err := w.handler(ctx, w.path); err != nil {
				logger.Error("Handling file change failed.", "error", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		}
	}
}
