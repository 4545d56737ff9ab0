//go:build linux

package platform

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/1broseidon/glint/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn    *x11.Connection
	surface *linuxSurface
	logger  *slog.Logger

	stopOnce sync.Once
}

var (
	_ Backend          = (*LinuxBackend)(nil)
	_ SystemClassifier = (*LinuxBackend)(nil)
)

// Open connects to $DISPLAY and creates the overlay surface.
func Open(logger *slog.Logger) (Backend, error) {
	return NewLinuxBackendFromDisplay(os.Getenv("DISPLAY"), logger)
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(display string, logger *slog.Logger) (*LinuxBackend, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	if !conn.HasShape {
		logger.Warn("X11 SHAPE extension unavailable; overlay will not be click-through")
	}

	surf, err := x11.NewSurface(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create overlay surface: %w", err)
	}
	if !surf.ARGB() {
		logger.Info("no 32-bit visual; border edges will not be blended")
	}

	if err := conn.QuitOnWake(surf.Window()); err != nil {
		surf.Destroy()
		conn.Close()
		return nil, err
	}

	conn.OnError(func(err error) {
		logger.Debug("x11 request failed", "error", err)
	})

	return &LinuxBackend{
		conn:    conn,
		surface: &linuxSurface{s: surf},
		logger:  logger,
	}, nil
}

func (b *LinuxBackend) Surface() Surface { return b.surface }

// Run selects events and blocks in the X11 event loop until Stop.
func (b *LinuxBackend) Run(handler func(Event)) error {
	_, err := b.conn.Watch(b.surface.s, func(kind x11.EventKind, win xproto.Window) {
		switch kind {
		case x11.ActiveChanged:
			handler(Event{Kind: EventForeground, Window: WindowID(win)})
		case x11.GeometryChanged:
			handler(Event{Kind: EventLocation, Window: WindowID(win)})
		}
	})
	if err != nil {
		return fmt.Errorf("watch window events: %w", err)
	}
	handler(Event{Kind: EventForeground, Window: b.ForegroundWindow()})
	b.conn.EventLoop()
	return nil
}

// Stop makes Run return. It is safe to call from any goroutine.
func (b *LinuxBackend) Stop() {
	b.stopOnce.Do(func() {
		b.conn.Quit(b.surface.s.Window())
	})
}

// Close destroys the overlay and disconnects.
func (b *LinuxBackend) Close() error {
	b.surface.s.Destroy()
	b.conn.Close()
	return nil
}

func (b *LinuxBackend) ForegroundWindow() WindowID {
	wid, err := b.conn.GetActiveWindow()
	if err != nil {
		return 0
	}
	return WindowID(wid)
}

func (b *LinuxBackend) IsVisible(id WindowID) bool {
	return b.conn.IsViewable(xproto.Window(id))
}

func (b *LinuxBackend) ClassName(id WindowID) string {
	return b.conn.WindowClass(xproto.Window(id))
}

func (b *LinuxBackend) Title(id WindowID) string {
	return b.conn.WindowTitle(xproto.Window(id))
}

// ExtendedFrameBounds is the client area plus the window manager's
// decorations.
func (b *LinuxBackend) ExtendedFrameBounds(id WindowID) (Rect, error) {
	g, err := b.conn.FrameGeometry(xproto.Window(id))
	if err != nil {
		return Rect{}, err
	}
	return rectFromGeometry(g), nil
}

func (b *LinuxBackend) WindowRect(id WindowID) (Rect, error) {
	g, err := b.conn.ClientGeometry(xproto.Window(id))
	if err != nil {
		return Rect{}, err
	}
	return rectFromGeometry(g), nil
}

func (b *LinuxBackend) DisplayForWindow(id WindowID) (Display, error) {
	g, err := b.conn.ClientGeometry(xproto.Window(id))
	if err != nil {
		return Display{}, err
	}
	mon, err := b.conn.MonitorFor(g.X, g.Y, g.Width, g.Height)
	if err != nil {
		return Display{}, err
	}
	return displayFromMonitor(*mon, b.conn.WorkArea(*mon)), nil
}

func (b *LinuxBackend) DPI(WindowID) (int, error) {
	return b.conn.DPI()
}

func (b *LinuxBackend) IsMaximized(id WindowID) bool {
	return b.conn.IsMaximized(xproto.Window(id))
}

func (b *LinuxBackend) IsSystemWindow(id WindowID) bool {
	return b.conn.IsSystemWindow(xproto.Window(id))
}

type linuxSurface struct {
	s *x11.Surface
}

func (l *linuxSurface) ID() WindowID { return WindowID(l.s.Window()) }

func (l *linuxSurface) Present(f Frame) error {
	return l.s.Present(f.X, f.Y, f.Width, f.Height, f.Pixels)
}

func (l *linuxSurface) Hide() error { return l.s.Hide() }

func rectFromGeometry(g x11.Geometry) Rect {
	return RectFromXYWH(g.X, g.Y, g.Width, g.Height)
}

func displayFromMonitor(m, work x11.Monitor) Display {
	return Display{
		Bounds: RectFromXYWH(m.X, m.Y, m.Width, m.Height),
		Work:   RectFromXYWH(work.X, work.Y, work.Width, work.Height),
	}
}
