package platform

import "errors"

// ErrUnsupported is returned by Open on operating systems without a backend.
var ErrUnsupported = errors.New("platform: no window-system backend for this OS")

// BaselineDPI is the DPI that maps to a scale factor of 1.0.
const BaselineDPI = 96

// WindowID is a platform-neutral window identifier. Zero means "no window".
type WindowID uintptr

// Rect describes a rectangle in screen coordinates as edges. Right and
// Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Display describes the monitor a window is on and its usable work area.
type Display struct {
	Bounds Rect
	Work   Rect
}

// EventKind classifies window-manager notifications.
type EventKind int

const (
	// EventForeground fires when a new window becomes the foreground window.
	EventForeground EventKind = iota + 1
	// EventLocation fires when any window moves or resizes.
	EventLocation
)

func (k EventKind) String() string {
	switch k {
	case EventForeground:
		return "foreground"
	case EventLocation:
		return "location"
	default:
		return "unknown"
	}
}

// Event is a single window-manager notification.
type Event struct {
	Kind   EventKind
	Window WindowID
}

// Frame is a premultiplied BGRA pixel buffer, top-down, stride 4*Width,
// positioned at (X, Y) in screen coordinates.
type Frame struct {
	X      int
	Y      int
	Width  int
	Height int
	Pixels []byte
}

// Querier answers the window-manager questions the overlay logic needs.
// Implementations degrade instead of failing where they can.
type Querier interface {
	ForegroundWindow() WindowID
	IsVisible(id WindowID) bool
	ClassName(id WindowID) string
	Title(id WindowID) string

	// ExtendedFrameBounds returns the compositor-reported visual bounds.
	ExtendedFrameBounds(id WindowID) (Rect, error)
	// WindowRect returns the raw window rectangle.
	WindowRect(id WindowID) (Rect, error)
	DisplayForWindow(id WindowID) (Display, error)
	DPI(id WindowID) (int, error)
	IsMaximized(id WindowID) bool
}

// SystemClassifier is implemented by backends that can identify shell
// windows (docks, desktops) by something other than their class name.
type SystemClassifier interface {
	IsSystemWindow(id WindowID) bool
}

// Surface is the single always-on-top, click-through overlay window.
type Surface interface {
	// ID returns the surface's own window identity.
	ID() WindowID
	// Present uploads the frame and shows the surface at the frame position.
	Present(frame Frame) error
	// Hide removes the surface from the screen without destroying it.
	Hide() error
}

// Backend abstracts the window system: queries, the overlay surface and the
// event loop.
type Backend interface {
	Querier
	Surface() Surface

	// Run delivers events to handler serially until Stop is called. The
	// first event is always EventForeground for the window that was in the
	// foreground when the loop started.
	Run(handler func(Event)) error
	// Stop asks Run to return. Safe to call from any goroutine.
	Stop()
	// Close releases the surface, event subscriptions and connection.
	Close() error
}
