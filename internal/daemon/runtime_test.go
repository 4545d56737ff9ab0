package daemon

import (
	"context"
	"testing"
	"time"

	"github.com/1broseidon/glint/internal/config"
	"github.com/1broseidon/glint/internal/platform"
	"github.com/1broseidon/glint/internal/platform/platformtest"
)

const surfaceID platform.WindowID = 999

func newBackend() *platformtest.Backend {
	b := platformtest.NewBackend(surfaceID)
	b.Set(1, &platformtest.Window{
		Class:    "Alacritty",
		Title:    "shell",
		Visible:  true,
		Extended: platform.Rect{Left: 100, Top: 100, Right: 500, Bottom: 400},
		Raw:      platform.Rect{Left: 100, Top: 100, Right: 500, Bottom: 400},
		Display: platform.Display{
			Bounds: platform.Rect{Right: 1920, Bottom: 1080},
			Work:   platform.Rect{Right: 1920, Bottom: 1040},
		},
		DPI: 96,
	})
	b.Foreground = 1
	return b
}

func runWithTimeout(t *testing.T, rt *Runtime, ctx context.Context) error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- rt.Run(ctx) }()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRunShowsOverlayAndStopsOnCancel(t *testing.T) {
	b := newBackend()
	ctx, cancel := context.WithCancel(context.Background())
	b.Events = []platform.Event{{Kind: platform.EventLocation, Window: 1}}
	b.Before = func(int, platform.Event) { cancel() }

	rt := New(config.DefaultConfig(), b, nil)
	if err := runWithTimeout(t, rt, ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !b.Surf.Visible {
		t.Fatal("overlay not visible after initial foreground event")
	}
	// Initial foreground event plus the location change of the foreground window.
	if b.Surf.Presents != 2 {
		t.Fatalf("presents = %d, want 2", b.Surf.Presents)
	}
	want := platform.Frame{X: 97, Y: 97, Width: 406, Height: 306}
	got := b.Surf.Last
	if got.X != want.X || got.Y != want.Y || got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("frame = (%d,%d %dx%d), want (%d,%d %dx%d)",
			got.X, got.Y, got.Width, got.Height, want.X, want.Y, want.Width, want.Height)
	}
	if !rt.Controller().State().Visible {
		t.Fatal("controller state not visible")
	}
}

func TestRunWithCancelledContext(t *testing.T) {
	b := newBackend()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rt := New(config.DefaultConfig(), b, nil)
	if err := rt.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if b.Surf.Presents != 0 {
		t.Fatalf("presents = %d, want 0", b.Surf.Presents)
	}
}

func TestRunIgnoresOwnSurface(t *testing.T) {
	b := newBackend()
	b.Foreground = surfaceID
	ctx, cancel := context.WithCancel(context.Background())
	b.Events = []platform.Event{{Kind: platform.EventLocation, Window: surfaceID}}
	b.Before = func(int, platform.Event) { cancel() }

	rt := New(config.DefaultConfig(), b, nil)
	if err := runWithTimeout(t, rt, ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if b.Surf.Presents != 0 {
		t.Fatalf("presents = %d, want 0", b.Surf.Presents)
	}
}

type panickyBackend struct {
	*platformtest.Backend
	panics int
}

func (b *panickyBackend) ForegroundWindow() platform.WindowID {
	if b.panics > 0 {
		b.panics--
		panic("query failed")
	}
	return b.Backend.ForegroundWindow()
}

func TestRunRecoversHandlerPanic(t *testing.T) {
	b := &panickyBackend{Backend: newBackend(), panics: 1}
	ctx, cancel := context.WithCancel(context.Background())
	b.Events = []platform.Event{{Kind: platform.EventForeground, Window: 1}}
	b.Before = func(int, platform.Event) { cancel() }

	rt := New(config.DefaultConfig(), b, nil)
	if err := runWithTimeout(t, rt, ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !b.Surf.Visible || b.Surf.Presents != 1 {
		t.Fatalf("visible=%v presents=%d, want the event after the panic to paint",
			b.Surf.Visible, b.Surf.Presents)
	}
}

func TestCloseHidesAndReleases(t *testing.T) {
	b := newBackend()
	ctx, cancel := context.WithCancel(context.Background())
	b.Events = []platform.Event{{Kind: platform.EventForeground, Window: 1}}
	b.Before = func(int, platform.Event) { cancel() }

	rt := New(config.DefaultConfig(), b, nil)
	if err := runWithTimeout(t, rt, ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	hides := b.Surf.Hides

	if err := rt.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if b.Surf.Visible {
		t.Fatal("overlay still visible after Close")
	}
	if b.Surf.Hides != hides+1 {
		t.Fatalf("hides = %d, want %d", b.Surf.Hides, hides+1)
	}
	if !b.Closed() {
		t.Fatal("backend not closed")
	}
}
