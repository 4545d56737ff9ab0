// Package platformtest provides in-memory platform fakes for tests.
package platformtest

import (
	"errors"
	"sync"

	"github.com/1broseidon/glint/internal/platform"
)

// ErrNoData is returned by fake queries for windows without configured data.
var ErrNoData = errors.New("platformtest: no data")

// Window is the fake state of a single window.
type Window struct {
	Class     string
	Title     string
	Visible   bool
	Maximized bool
	System    bool

	// Extended is returned by ExtendedFrameBounds; ExtendedErr forces the
	// fallback path.
	Extended    platform.Rect
	ExtendedErr error
	Raw         platform.Rect
	RawErr      error

	Display    platform.Display
	DisplayErr error
	DPI        int
	DPIErr     error
}

// Querier is a scriptable platform.Querier and platform.SystemClassifier.
type Querier struct {
	Foreground platform.WindowID
	Windows    map[platform.WindowID]*Window

	// Calls counts every query, keyed by method name.
	Calls map[string]int
}

var (
	_ platform.Querier          = (*Querier)(nil)
	_ platform.SystemClassifier = (*Querier)(nil)
)

// NewQuerier returns an empty fake.
func NewQuerier() *Querier {
	return &Querier{
		Windows: make(map[platform.WindowID]*Window),
		Calls:   make(map[string]int),
	}
}

// Set registers w under id.
func (q *Querier) Set(id platform.WindowID, w *Window) *Window {
	q.Windows[id] = w
	return w
}

// TotalCalls sums all recorded queries.
func (q *Querier) TotalCalls() int {
	n := 0
	for _, c := range q.Calls {
		n += c
	}
	return n
}

func (q *Querier) window(method string, id platform.WindowID) (*Window, bool) {
	q.Calls[method]++
	w, ok := q.Windows[id]
	return w, ok
}

func (q *Querier) ForegroundWindow() platform.WindowID {
	q.Calls["ForegroundWindow"]++
	return q.Foreground
}

func (q *Querier) IsVisible(id platform.WindowID) bool {
	w, ok := q.window("IsVisible", id)
	return ok && w.Visible
}

func (q *Querier) ClassName(id platform.WindowID) string {
	if w, ok := q.window("ClassName", id); ok {
		return w.Class
	}
	return ""
}

func (q *Querier) Title(id platform.WindowID) string {
	if w, ok := q.window("Title", id); ok {
		return w.Title
	}
	return ""
}

func (q *Querier) ExtendedFrameBounds(id platform.WindowID) (platform.Rect, error) {
	w, ok := q.window("ExtendedFrameBounds", id)
	if !ok {
		return platform.Rect{}, ErrNoData
	}
	if w.ExtendedErr != nil {
		return platform.Rect{}, w.ExtendedErr
	}
	return w.Extended, nil
}

func (q *Querier) WindowRect(id platform.WindowID) (platform.Rect, error) {
	w, ok := q.window("WindowRect", id)
	if !ok {
		return platform.Rect{}, ErrNoData
	}
	if w.RawErr != nil {
		return platform.Rect{}, w.RawErr
	}
	return w.Raw, nil
}

func (q *Querier) DisplayForWindow(id platform.WindowID) (platform.Display, error) {
	w, ok := q.window("DisplayForWindow", id)
	if !ok {
		return platform.Display{}, ErrNoData
	}
	if w.DisplayErr != nil {
		return platform.Display{}, w.DisplayErr
	}
	return w.Display, nil
}

func (q *Querier) DPI(id platform.WindowID) (int, error) {
	w, ok := q.window("DPI", id)
	if !ok {
		return 0, ErrNoData
	}
	if w.DPIErr != nil {
		return 0, w.DPIErr
	}
	return w.DPI, nil
}

func (q *Querier) IsMaximized(id platform.WindowID) bool {
	w, ok := q.window("IsMaximized", id)
	return ok && w.Maximized
}

func (q *Querier) IsSystemWindow(id platform.WindowID) bool {
	w, ok := q.window("IsSystemWindow", id)
	return ok && w.System
}

// Surface records Present and Hide calls.
type Surface struct {
	mu sync.Mutex

	SurfaceID  platform.WindowID
	PresentErr error

	Visible  bool
	Last     platform.Frame
	Presents int
	Hides    int
}

var _ platform.Surface = (*Surface)(nil)

func (s *Surface) ID() platform.WindowID { return s.SurfaceID }

func (s *Surface) Present(frame platform.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Presents++
	if s.PresentErr != nil {
		return s.PresentErr
	}
	s.Last = frame
	s.Last.Pixels = append([]byte(nil), frame.Pixels...)
	s.Visible = true
	return nil
}

func (s *Surface) Hide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Hides++
	s.Visible = false
	return nil
}

// Backend couples a Querier and a Surface and replays scripted events.
type Backend struct {
	*Querier
	Surf *Surface

	// Events are delivered in order by Run. Before, when set, is called
	// ahead of each event so tests can mutate the fake between events.
	Events []platform.Event
	Before func(i int, ev platform.Event)

	mu      sync.Mutex
	stopped bool
	closed  bool
	stop    chan struct{}
}

var _ platform.Backend = (*Backend)(nil)

// NewBackend returns a fake backend with an empty querier and a surface
// identified as surfaceID.
func NewBackend(surfaceID platform.WindowID) *Backend {
	return &Backend{
		Querier: NewQuerier(),
		Surf:    &Surface{SurfaceID: surfaceID},
		stop:    make(chan struct{}),
	}
}

func (b *Backend) Surface() platform.Surface { return b.Surf }

// Run delivers a foreground event for the current Foreground, then the
// scripted events, and then blocks until Stop.
func (b *Backend) Run(handler func(platform.Event)) error {
	handler(platform.Event{Kind: platform.EventForeground, Window: b.Foreground})
	for i, ev := range b.Events {
		if b.Before != nil {
			b.Before(i, ev)
		}
		handler(ev)
	}
	<-b.stop
	return nil
}

func (b *Backend) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.stopped {
		b.stopped = true
		close(b.stop)
	}
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Closed reports whether Close was called.
func (b *Backend) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
