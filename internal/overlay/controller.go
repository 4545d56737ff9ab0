// Package overlay decides, on every window-manager event, whether the focus
// border is shown and where.
package overlay

import (
	"io"
	"log/slog"

	"github.com/1broseidon/glint/internal/config"
	"github.com/1broseidon/glint/internal/geometry"
	"github.com/1broseidon/glint/internal/ignore"
	"github.com/1broseidon/glint/internal/platform"
	"github.com/1broseidon/glint/internal/render"
)

// Painter is the rendering side of the controller.
type Painter interface {
	Render(p render.Params) error
	Hide() error
}

// State is the controller's view of the overlay.
type State struct {
	Visible bool
	// Target is the foreground window the overlay was last evaluated for.
	Target platform.WindowID
	Params render.Params
	// Reason is set when the overlay is hidden.
	Reason geometry.Reason
}

// Controller is the single-threaded overlay state machine. All methods must
// be called from the event loop.
type Controller struct {
	cfg      *config.Config
	q        platform.Querier
	matcher  *ignore.Matcher
	resolver *geometry.Resolver
	painter  Painter
	self     platform.WindowID
	logger   *slog.Logger

	state State
}

// Options wires a controller.
type Options struct {
	Config   *config.Config
	Querier  platform.Querier
	Matcher  *ignore.Matcher
	Resolver *geometry.Resolver
	Painter  Painter
	// Self is the overlay surface's own window, whose events are ignored.
	Self   platform.WindowID
	Logger *slog.Logger
}

// NewController builds a controller in the Hidden state.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	matcher := opts.Matcher
	if matcher == nil {
		matcher = ignore.NewMatcher(opts.Config.IgnoredPatterns)
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = geometry.NewResolver(opts.Querier, logger)
	}
	return &Controller{
		cfg:      opts.Config,
		q:        opts.Querier,
		matcher:  matcher,
		resolver: resolver,
		painter:  opts.Painter,
		self:     opts.Self,
		logger:   logger,
	}
}

// State returns the current overlay state.
func (c *Controller) State() State {
	return c.state
}

// HandleEvent filters an event and re-evaluates the overlay when it matters.
// Location changes only count for the current foreground window; events
// for the overlay surface itself never drive a transition.
func (c *Controller) HandleEvent(ev platform.Event) {
	switch ev.Kind {
	case platform.EventForeground:
		c.Update()
	case platform.EventLocation:
		if ev.Window == 0 || ev.Window == c.self {
			return
		}
		if ev.Window != c.q.ForegroundWindow() {
			return
		}
		c.Update()
	}
}

// Update re-evaluates the foreground window and either hides the overlay or
// repaints it. Every call that ends in Shown repaints.
func (c *Controller) Update() {
	fg := c.q.ForegroundWindow()
	if fg == 0 {
		c.hide(fg, geometry.ReasonNoWindow)
		return
	}
	if fg == c.self {
		// The overlay cannot take focus; treat a report of it as no window.
		c.hide(fg, geometry.ReasonNoWindow)
		return
	}
	if !c.q.IsVisible(fg) {
		c.hide(fg, geometry.ReasonInvisible)
		return
	}

	class := c.q.ClassName(fg)
	title := c.q.Title(fg)
	if c.matcher.IsExempt(class, title) {
		c.logger.Debug("foreground window ignored", "window", fg, "class", class, "title", title)
		c.hide(fg, ReasonIgnored)
		return
	}

	win, ok := c.resolver.Resolve(fg)
	if !ok || win.Exempt {
		c.hide(fg, win.Reason)
		return
	}

	p := Layout(win, c.cfg.BorderWidth, c.cfg.BorderRadius)
	c.show(fg, p)
}

// Layout computes render parameters for a resolved window.
func Layout(win geometry.Window, borderWidth, borderRadius int) render.Params {
	bw := geometry.ScalePx(borderWidth, win.Scale)
	radius := 0
	if !win.Maximized {
		radius = geometry.ScalePx(borderRadius, win.Scale)
	}
	rect := win.Bounds.Inflate(bw)
	if win.Bounds.Empty() {
		// Nothing to surround; the renderer rejects the empty rect and the
		// paint is skipped.
		rect = win.Bounds
	}
	return render.Params{
		Rect:        rect,
		BorderWidth: bw,
		Radius:      radius,
	}
}

const (
	// ReasonIgnored marks windows exempted by class or user pattern.
	ReasonIgnored geometry.Reason = "ignored"
	// ReasonShutdown is recorded by Hide.
	ReasonShutdown geometry.Reason = "shutdown"
)

// Hide takes the overlay off screen without looking at the foreground
// window. It is used on shutdown and is safe to call repeatedly.
func (c *Controller) Hide() {
	c.hide(0, ReasonShutdown)
}

func (c *Controller) hide(target platform.WindowID, reason geometry.Reason) {
	if c.state.Visible {
		c.logger.Debug("hiding overlay", "window", target, "reason", string(reason))
	}
	if err := c.painter.Hide(); err != nil {
		c.logger.Warn("failed to hide overlay", "error", err)
	}
	c.state = State{Target: target, Reason: reason}
}

func (c *Controller) show(target platform.WindowID, p render.Params) {
	if err := c.painter.Render(p); err != nil {
		// Keep the prior state; the next qualifying event retries.
		c.logger.Warn("overlay paint failed", "window", target, "error", err)
		return
	}
	if !c.state.Visible || c.state.Target != target {
		c.logger.Debug("showing overlay", "window", target,
			"left", p.Rect.Left, "top", p.Rect.Top,
			"width", p.Rect.Width(), "height", p.Rect.Height(),
			"border", p.BorderWidth, "radius", p.Radius)
	}
	c.state = State{Visible: true, Target: target, Params: p}
}
