// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package preview pushes generated source to an external preview host over
// socket.io, so a running viewer can recompile the material as it is edited.
package preview

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/specialistvlad/shadergraph/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Options configures a Publisher.
type Options struct {
	// URL of the preview host. Its path, if any, is the engine.io path.
	URL       string
	Namespace string
	// Event is the name generated source is emitted under.
	Event              string
	InsecureSkipVerify bool
	// ConnectTimeout bounds Dial. Zero means 15 seconds.
	ConnectTimeout time.Duration
}

// Payload is what every Publish emits.
type Payload struct {
	Document string `json:"document"`
	Source   string `json:"source"`
}

// Publisher is a connected socket.io client.
type Publisher struct {
	io     *socket.Socket
	event  string
	logger *slog.Logger
}

// Dial connects to the preview host and waits until the connection is
// accepted or fails.
func Dial(ctx context.Context, opts Options) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("component", "preview", "url", opts.URL)
	logger.Info("Connecting to preview host...")

	if opts.Event == "" {
		return nil, errors.New("preview event name is empty")
	}
	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("preview URL %q needs a scheme and a host", opts.URL)
	}

	sockOpts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		sockOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(opts.Namespace, sockOpts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to preview host.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Preview connection error.", "error", err)
		select {
		case connected <- err:
		default:
		}
	})
	io.Connect()

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("preview connection failed: %w", err)
		}
		return &Publisher{io: io, event: opts.Event, logger: logger}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while connecting to preview host: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for preview host", timeout)
	}
}

// Publish emits the source of document to the preview host.
func (p *Publisher) Publish(_ context.Context, document, source string) error {
	if !p.io.Connected() {
		return errors.New("preview host is not connected")
	}
	p.logger.Debug("Publishing source.", "event", p.event, "document", document, "bytes", len(source))
	p.io.Emit(p.event, Payload{Document: document, Source: source})
	return nil
}

// Close disconnects from the preview host.
func (p *Publisher) Close() error {
	p.logger.Info("Disconnecting from preview host.", "sid", p.io.Id())
	p.io.Disconnect()
	return nil
}
