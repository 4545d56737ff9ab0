// Package daemon runs the overlay: it owns the window-system backend and
// feeds its events to the overlay controller until shutdown.
package daemon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/1broseidon/glint/internal/config"
	"github.com/1broseidon/glint/internal/overlay"
	"github.com/1broseidon/glint/internal/platform"
	"github.com/1broseidon/glint/internal/render"
)

// Runtime ties a backend to an overlay controller.
type Runtime struct {
	backend    platform.Backend
	controller *overlay.Controller
	logger     *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// New wires the renderer and controller onto backend's surface.
func New(cfg *config.Config, backend platform.Backend, logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	surface := backend.Surface()
	controller := overlay.NewController(overlay.Options{
		Config:  cfg,
		Querier: backend,
		Painter: render.New(surface),
		Self:    surface.ID(),
		Logger:  logger,
	})
	return &Runtime{
		backend:    backend,
		controller: controller,
		logger:     logger,
	}
}

// Controller exposes the overlay state machine.
func (r *Runtime) Controller() *overlay.Controller { return r.controller }

// Run processes backend events until ctx is cancelled or the backend loop
// fails. The backend's first event evaluates the current foreground window.
func (r *Runtime) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return nil
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			r.backend.Stop()
		case <-done:
		}
	}()

	r.logger.Info("overlay running")
	err := r.backend.Run(r.handle)
	if err != nil {
		return fmt.Errorf("event loop: %w", err)
	}
	r.logger.Info("overlay stopped")
	return nil
}

func (r *Runtime) handle(ev platform.Event) {
	// A bad event must not take the loop down with it.
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("event handler panic recovered",
				"event", ev.Kind.String(), "window", ev.Window, "panic", p)
		}
	}()
	r.controller.HandleEvent(ev)
}

// Close hides the overlay and releases the backend. Run must have returned.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		r.controller.Hide()
		r.closeErr = r.backend.Close()
	})
	return r.closeErr
}
