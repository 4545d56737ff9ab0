// Package geometry resolves where a window is, whether it fills its
// monitor, and how much its DPI scales the border.
package geometry

import (
	"io"
	"log/slog"
	"math"

	"github.com/1broseidon/glint/internal/platform"
)

// Reason explains why a window is not decorated.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonNoWindow   Reason = "no-foreground"
	ReasonInvisible  Reason = "invisible"
	ReasonSystem     Reason = "system-window"
	ReasonFullscreen Reason = "fullscreen"
	ReasonWorkArea   Reason = "work-area"
)

// Window is the resolved geometry of a tracked window.
type Window struct {
	// Bounds is the extended frame bounds when available, else the raw
	// window rectangle. It is the only rectangle used for both exemption
	// and rendering.
	Bounds    platform.Rect
	Scale     float64
	Maximized bool
	Exempt    bool
	Reason    Reason
}

// Resolver computes Window values from a platform.Querier.
type Resolver struct {
	q      platform.Querier
	logger *slog.Logger
}

// NewResolver creates a resolver. A nil logger discards diagnostics.
func NewResolver(q platform.Querier, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{q: q, logger: logger}
}

// Resolve returns the window's geometry. ok is false only for a null or
// invisible window; every other query failure degrades to a fallback. When
// neither bounds query succeeds, Bounds is the zero Rect.
func (r *Resolver) Resolve(id platform.WindowID) (win Window, ok bool) {
	if id == 0 {
		return Window{Exempt: true, Reason: ReasonNoWindow}, false
	}
	if !r.q.IsVisible(id) {
		return Window{Exempt: true, Reason: ReasonInvisible}, false
	}

	bounds, err := r.q.ExtendedFrameBounds(id)
	if err != nil {
		r.logger.Debug("extended frame bounds unavailable, using window rect", "window", id, "error", err)
		if bounds, err = r.q.WindowRect(id); err != nil {
			r.logger.Debug("window rect unavailable, using empty bounds", "window", id, "error", err)
			bounds = platform.Rect{}
		}
	}

	win = Window{
		Bounds:    bounds,
		Scale:     1,
		Maximized: r.q.IsMaximized(id),
	}

	if sc, isClassifier := r.q.(platform.SystemClassifier); isClassifier && sc.IsSystemWindow(id) {
		win.Exempt = true
		win.Reason = ReasonSystem
		return win, true
	}

	if display, err := r.q.DisplayForWindow(id); err != nil {
		r.logger.Debug("monitor info unavailable, treating window as non-exempt", "window", id, "error", err)
	} else if reason := FillsDisplay(bounds, display); reason != ReasonNone {
		win.Exempt = true
		win.Reason = reason
		return win, true
	}

	if dpi, err := r.q.DPI(id); err != nil || dpi <= 0 {
		r.logger.Debug("dpi unavailable, using baseline", "window", id, "error", err)
	} else {
		win.Scale = ScaleForDPI(dpi)
	}

	return win, true
}

// FillsDisplay reports whether bounds exactly covers the monitor
// (fullscreen) or its work area (maximized). There is no tolerance.
func FillsDisplay(bounds platform.Rect, display platform.Display) Reason {
	switch bounds {
	case display.Bounds:
		return ReasonFullscreen
	case display.Work:
		return ReasonWorkArea
	default:
		return ReasonNone
	}
}

// ScaleForDPI converts a DPI value into a scale factor relative to the
// platform baseline.
func ScaleForDPI(dpi int) float64 {
	return float64(dpi) / platform.BaselineDPI
}

// ScalePx scales a configured pixel size, rounding up.
func ScalePx(px int, scale float64) int {
	return int(math.Ceil(float64(px) * scale))
}
