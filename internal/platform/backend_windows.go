//go:build windows

package platform

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/1broseidon/glint/internal/win32"
	"golang.org/x/sys/windows"
)

// WindowsBackend owns one locked OS thread. The overlay window is created
// on it, and the WinEvent hooks deliver events on it, so every Present and
// Hide issued from the event handler runs on the window's own thread.
type WindowsBackend struct {
	logger  *slog.Logger
	surface *windowsSurface
	loop    win32.Loop

	start  chan func(Event)
	done   chan error
	quit   chan struct{}
	exited chan struct{}

	stopOnce sync.Once
}

var _ Backend = (*WindowsBackend)(nil)

// Open starts the overlay thread and creates the overlay window on it.
func Open(logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &WindowsBackend{
		logger: logger,
		start:  make(chan func(Event)),
		done:   make(chan error, 1),
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	ready := make(chan error, 1)
	go b.thread(ready)
	if err := <-ready; err != nil {
		<-b.exited
		return nil, fmt.Errorf("failed to create overlay surface: %w", err)
	}
	return b, nil
}

func (b *WindowsBackend) thread(ready chan<- error) {
	defer close(b.exited)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := win32.EnableDPIAwareness(); err != nil {
		b.logger.Debug("per-monitor DPI awareness unavailable", "error", err)
	}
	s, err := win32.NewSurface()
	if err != nil {
		ready <- err
		return
	}
	b.surface = &windowsSurface{s: s, owner: windows.GetCurrentThreadId()}
	ready <- nil
	defer b.surface.destroy()

	select {
	case handler := <-b.start:
		started := func() {
			handler(Event{Kind: EventForeground, Window: b.ForegroundWindow()})
		}
		err := b.loop.Run(started, func(ev win32.HookEvent) {
			switch ev.Kind {
			case win32.HookForeground:
				handler(Event{Kind: EventForeground, Window: WindowID(ev.HWND)})
			case win32.HookLocation:
				handler(Event{Kind: EventLocation, Window: WindowID(ev.HWND)})
			}
		})
		// The window is gone before Run returns, so a Hide issued after Run
		// from another goroutine finds it destroyed and does nothing.
		b.surface.destroy()
		b.done <- err
	case <-b.quit:
	}
}

func (b *WindowsBackend) Surface() Surface { return b.surface }

// Run hands handler to the overlay thread and blocks until Stop.
func (b *WindowsBackend) Run(handler func(Event)) error {
	select {
	case b.start <- handler:
	case <-b.quit:
		return nil
	}
	return <-b.done
}

// Stop makes Run return. It is safe to call from any goroutine.
func (b *WindowsBackend) Stop() {
	b.stopOnce.Do(func() {
		close(b.quit)
		b.loop.Stop()
	})
}

// Close stops the overlay thread, which destroys the window on its way out.
func (b *WindowsBackend) Close() error {
	b.Stop()
	<-b.exited
	return nil
}

func (b *WindowsBackend) ForegroundWindow() WindowID {
	return WindowID(win32.ForegroundWindow())
}

func (b *WindowsBackend) IsVisible(id WindowID) bool {
	return win32.IsVisible(windows.HWND(id))
}

func (b *WindowsBackend) ClassName(id WindowID) string {
	return win32.ClassName(windows.HWND(id))
}

func (b *WindowsBackend) Title(id WindowID) string {
	return win32.Title(windows.HWND(id))
}

func (b *WindowsBackend) ExtendedFrameBounds(id WindowID) (Rect, error) {
	r, err := win32.ExtendedFrameBounds(windows.HWND(id))
	if err != nil {
		return Rect{}, err
	}
	return rectFromWin32(r), nil
}

func (b *WindowsBackend) WindowRect(id WindowID) (Rect, error) {
	r, err := win32.WindowRect(windows.HWND(id))
	if err != nil {
		return Rect{}, err
	}
	return rectFromWin32(r), nil
}

func (b *WindowsBackend) DisplayForWindow(id WindowID) (Display, error) {
	m, err := win32.MonitorFor(windows.HWND(id))
	if err != nil {
		return Display{}, err
	}
	return Display{Bounds: rectFromWin32(m.Bounds), Work: rectFromWin32(m.Work)}, nil
}

func (b *WindowsBackend) DPI(id WindowID) (int, error) {
	return win32.DPI(windows.HWND(id))
}

func (b *WindowsBackend) IsMaximized(id WindowID) bool {
	return win32.IsZoomed(windows.HWND(id))
}

var errWrongThread = errors.New("overlay window used off its owner thread")

// windowsSurface refuses calls from other threads: SetWindowPos on a
// window whose thread is not pumping messages would block forever.
type windowsSurface struct {
	mu        sync.Mutex
	s         *win32.Surface
	owner     uint32
	visible   bool
	destroyed bool
}

func (w *windowsSurface) ID() WindowID { return WindowID(w.s.HWND()) }

func (w *windowsSurface) Present(f Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return errors.New("overlay window destroyed")
	}
	if windows.GetCurrentThreadId() != w.owner {
		return errWrongThread
	}
	if err := w.s.Present(f.X, f.Y, f.Width, f.Height, f.Pixels); err != nil {
		return err
	}
	w.visible = true
	return nil
}

func (w *windowsSurface) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed || !w.visible {
		return nil
	}
	if windows.GetCurrentThreadId() != w.owner {
		return errWrongThread
	}
	if err := w.s.Hide(); err != nil {
		return err
	}
	w.visible = false
	return nil
}

func (w *windowsSurface) destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.s.Destroy()
	w.visible = false
	w.destroyed = true
}

func rectFromWin32(r windows.Rect) Rect {
	return Rect{
		Left:   int(r.Left),
		Top:    int(r.Top),
		Right:  int(r.Right),
		Bottom: int(r.Bottom),
	}
}
