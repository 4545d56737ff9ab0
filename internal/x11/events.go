package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EventKind classifies what the watcher saw.
type EventKind int

const (
	// ActiveChanged fires when _NET_ACTIVE_WINDOW changes on the root.
	ActiveChanged EventKind = iota + 1
	// GeometryChanged fires when the tracked window (or its frame) is moved,
	// resized, or changes _NET_WM_STATE or _NET_FRAME_EXTENTS.
	GeometryChanged
)

// Watcher follows the active window. Only one window at a time, plus its
// window-manager frame, has StructureNotify selected.
type Watcher struct {
	conn    *Connection
	handler func(EventKind, xproto.Window)

	activeAtom  xproto.Atom
	stateAtom   xproto.Atom
	extentsAtom xproto.Atom

	tracked xproto.Window
	frame   xproto.Window
}

// Watch selects events on the root window and routes them to handler. The
// handler runs on the goroutine running EventLoop. surface, when not nil,
// is repainted on Expose.
func (c *Connection) Watch(surface *Surface, handler func(EventKind, xproto.Window)) (*Watcher, error) {
	w := &Watcher{conn: c, handler: handler}

	var err error
	if w.activeAtom, err = xprop.Atm(c.XUtil, "_NET_ACTIVE_WINDOW"); err != nil {
		return nil, err
	}
	if w.stateAtom, err = xprop.Atm(c.XUtil, "_NET_WM_STATE"); err != nil {
		return nil, err
	}
	if w.extentsAtom, err = xprop.Atm(c.XUtil, "_NET_FRAME_EXTENTS"); err != nil {
		return nil, err
	}

	if err := xwindow.New(c.XUtil, c.Root).Listen(xproto.EventMaskPropertyChange); err != nil {
		return nil, fmt.Errorf("select root events: %w", err)
	}
	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if ev.Atom != w.activeAtom {
			return
		}
		active, _ := c.GetActiveWindow()
		w.track(active)
		w.handler(ActiveChanged, active)
	}).Connect(c.XUtil, c.Root)

	if surface != nil {
		xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
			if ev.Count == 0 {
				surface.Redraw()
			}
		}).Connect(c.XUtil, surface.Window())
	}

	if active, err := c.GetActiveWindow(); err == nil {
		w.track(active)
	}
	return w, nil
}

// OnError replaces xgbutil's default error logging.
func (c *Connection) OnError(fn func(error)) {
	xevent.ErrorHandlerSet(c.XUtil, func(err xgb.Error) { fn(err) })
}

// Tracked returns the window currently followed for geometry changes.
func (w *Watcher) Tracked() xproto.Window { return w.tracked }

func (w *Watcher) track(win xproto.Window) {
	if win == w.tracked {
		return
	}
	w.untrack()
	if win == 0 || win == w.conn.Root {
		return
	}

	w.tracked = win
	w.listen(win)
	if frame := w.conn.topLevel(win); frame != 0 && frame != win {
		w.frame = frame
		w.listen(frame)
	}
}

func (w *Watcher) listen(win xproto.Window) {
	xu := w.conn.XUtil
	xwindow.New(xu, win).Listen(xproto.EventMaskStructureNotify, xproto.EventMaskPropertyChange)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		if w.tracked != 0 {
			w.handler(GeometryChanged, w.tracked)
		}
	}).Connect(xu, win)
	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if w.tracked != 0 && (ev.Atom == w.stateAtom || ev.Atom == w.extentsAtom) {
			w.handler(GeometryChanged, w.tracked)
		}
	}).Connect(xu, win)
}

func (w *Watcher) untrack() {
	xu := w.conn.XUtil
	for _, win := range []xproto.Window{w.tracked, w.frame} {
		if win == 0 {
			continue
		}
		xevent.Detach(xu, win)
		// The window may already be gone; the error lands in the event loop.
		xproto.ChangeWindowAttributes(xu.Conn(), win, xproto.CwEventMask, []uint32{xproto.EventMaskNoEvent})
	}
	w.tracked, w.frame = 0, 0
}

// topLevel walks up from win to the child of the root, which is the
// window-manager frame under a reparenting window manager.
func (c *Connection) topLevel(win xproto.Window) xproto.Window {
	for {
		tree, err := xproto.QueryTree(c.XUtil.Conn(), win).Reply()
		if err != nil {
			return 0
		}
		if tree.Parent == c.Root || tree.Parent == 0 {
			return win
		}
		win = tree.Parent
	}
}
