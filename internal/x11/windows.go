package x11

import (
	"slices"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// Geometry is a window rectangle in root coordinates.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// systemWindowTypes never get a focus border.
var systemWindowTypes = []string{
	"_NET_WM_WINDOW_TYPE_DESKTOP",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_WINDOW_TYPE_SPLASH",
	"_NET_WM_WINDOW_TYPE_NOTIFICATION",
}

// GetActiveWindow returns _NET_ACTIVE_WINDOW.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// IsViewable reports whether the window is mapped and not iconified.
func (c *Connection) IsViewable(windowID xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil || attrs.MapState != xproto.MapStateViewable {
		return false
	}
	return !c.hasState(windowID, "_NET_WM_STATE_HIDDEN")
}

// IsMaximized reports a window maximized in both directions, or fullscreen.
func (c *Connection) IsMaximized(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	return isMaximizedState(states)
}

func isMaximizedState(states []string) bool {
	if slices.Contains(states, "_NET_WM_STATE_FULLSCREEN") {
		return true
	}
	return slices.Contains(states, "_NET_WM_STATE_MAXIMIZED_VERT") &&
		slices.Contains(states, "_NET_WM_STATE_MAXIMIZED_HORZ")
}

func (c *Connection) hasState(windowID xproto.Window, state string) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	return slices.Contains(states, state)
}

// IsSystemWindow checks if a window is a desktop, dock, splash or
// notification surface rather than an application window.
func (c *Connection) IsSystemWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return false
	}
	for _, t := range types {
		if slices.Contains(systemWindowTypes, t) {
			return true
		}
	}
	return false
}

// WindowClass returns the class part of WM_CLASS.
func (c *Connection) WindowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// WindowTitle prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// ClientGeometry returns the client area of a window in root coordinates.
func (c *Connection) ClientGeometry(windowID xproto.Window) (Geometry, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Geometry{}, err
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Geometry{}, err
	}

	return Geometry{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// FrameGeometry returns the client area grown by _NET_FRAME_EXTENTS, which
// is what the user sees as the window. It fails when the window manager
// publishes no extents.
func (c *Connection) FrameGeometry(windowID xproto.Window) (Geometry, error) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return Geometry{}, err
	}
	client, err := c.ClientGeometry(windowID)
	if err != nil {
		return Geometry{}, err
	}
	return addExtents(client, extents.Left, extents.Right, extents.Top, extents.Bottom), nil
}

func addExtents(g Geometry, left, right, top, bottom int) Geometry {
	return Geometry{
		X:      g.X - left,
		Y:      g.Y - top,
		Width:  g.Width + left + right,
		Height: g.Height + top + bottom,
	}
}
