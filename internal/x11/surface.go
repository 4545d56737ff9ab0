package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// putImageHeader is the fixed size of a PutImage request in bytes.
const putImageHeader = 24

// Surface is a single override-redirect window that shows premultiplied
// 32-bit pixels. Input passes through it; it is never managed by the window
// manager and never takes focus.
type Surface struct {
	conn *Connection
	win  xproto.Window
	gc   xproto.Gcontext

	depth    byte
	argb     bool
	msbFirst bool
	maxReq   int

	mapped              bool
	x, y, width, height int
	pixels              []byte
}

// NewSurface creates the overlay window. A 32-bit TrueColor visual is used
// when the server offers one so a compositor can blend the border; the
// bounding shape keeps the interior transparent either way.
func NewSurface(c *Connection) (*Surface, error) {
	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()
	setup := c.XUtil.Setup()

	s := &Surface{
		conn:     c,
		depth:    screen.RootDepth,
		msbFirst: setup.ImageByteOrder == xproto.ImageOrderMSBFirst,
		maxReq:   int(setup.MaximumRequestLength) * 4,
	}
	visual := screen.RootVisual
	colormap := screen.DefaultColormap

	if v, ok := findARGBVisual(screen); ok {
		cmap, err := xproto.NewColormapId(conn)
		if err != nil {
			return nil, err
		}
		if err := xproto.CreateColormapChecked(conn, xproto.ColormapAllocNone, cmap, c.Root, v).Check(); err != nil {
			return nil, fmt.Errorf("create colormap: %w", err)
		}
		visual, colormap, s.depth, s.argb = v, cmap, 32, true
	}

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	// Value list order follows the bit positions of the mask (low to high).
	err = xproto.CreateWindowChecked(
		conn,
		s.depth,
		wid,
		c.Root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		visual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwOverrideRedirect|xproto.CwEventMask|xproto.CwColormap,
		[]uint32{0, 0, 1, xproto.EventMaskExposure, uint32(colormap)},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("create overlay window: %w", err)
	}
	s.win = wid

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		s.Destroy()
		return nil, err
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(wid), 0, nil).Check(); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("create gc: %w", err)
	}
	s.gc = gc

	icccm.WmClassSet(c.XUtil, wid, &icccm.WmClass{Instance: "glint", Class: "Glint"})
	ewmh.WmNameSet(c.XUtil, wid, "glint overlay")
	ewmh.WmWindowTypeSet(c.XUtil, wid, []string{"_NET_WM_WINDOW_TYPE_NOTIFICATION"})

	if c.HasShape {
		// An empty input region makes the window click-through.
		shape.Rectangles(conn, shape.SoSet, shape.SkInput, xproto.ClipOrderingUnsorted, wid, 0, 0, nil)
	}

	return s, nil
}

func findARGBVisual(screen *xproto.ScreenInfo) (xproto.Visualid, bool) {
	for _, d := range screen.AllowedDepths {
		if d.Depth != 32 {
			continue
		}
		for _, v := range d.Visuals {
			if v.Class == xproto.VisualClassTrueColor {
				return v.VisualId, true
			}
		}
	}
	return 0, false
}

// Window returns the overlay window ID.
func (s *Surface) Window() xproto.Window { return s.win }

// ARGB reports whether the surface has a 32-bit visual.
func (s *Surface) ARGB() bool { return s.argb }

// Present moves the surface to (x, y), resizes it and uploads pixels, which
// are premultiplied BGRA rows of width*4 bytes. The window is raised and
// mapped if needed.
func (s *Surface) Present(x, y, width, height int, pixels []byte) error {
	if width <= 0 || height <= 0 || width > 0xffff || height > 0xffff {
		return fmt.Errorf("invalid overlay size %dx%d", width, height)
	}
	if len(pixels) < width*height*4 {
		return fmt.Errorf("short pixel buffer: %d bytes for %dx%d", len(pixels), width, height)
	}
	conn := s.conn.XUtil.Conn()

	if x != s.x || y != s.y || width != s.width || height != s.height || !s.mapped {
		xproto.ConfigureWindow(
			conn,
			s.win,
			xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
			[]uint32{
				uint32(int32(x)),
				uint32(int32(y)),
				uint32(width),
				uint32(height),
				xproto.StackModeAbove,
			},
		)
		s.x, s.y, s.width, s.height = x, y, width, height
	} else {
		xproto.ConfigureWindow(conn, s.win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	}

	if s.conn.HasShape {
		rects := opaqueRects(pixels, width, height)
		shape.Rectangles(conn, shape.SoSet, shape.SkBounding, xproto.ClipOrderingUnsorted, s.win, 0, 0, rects)
	}

	s.pixels = serverOrder(s.pixels, pixels[:width*height*4], s.msbFirst)

	if !s.mapped {
		if err := xproto.MapWindowChecked(conn, s.win).Check(); err != nil {
			return fmt.Errorf("map overlay: %w", err)
		}
		s.mapped = true
	}
	return s.upload()
}

// Redraw re-uploads the last frame, for Expose events.
func (s *Surface) Redraw() error {
	if !s.mapped || len(s.pixels) == 0 {
		return nil
	}
	return s.upload()
}

func (s *Surface) upload() error {
	conn := s.conn.XUtil.Conn()
	stride := s.width * 4
	rows := rowsPerRequest(s.width, s.height, s.maxReq)

	for top := 0; top < s.height; top += rows {
		n := min(rows, s.height-top)
		data := s.pixels[top*stride : (top+n)*stride]
		if top+n < s.height {
			xproto.PutImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(s.win), s.gc,
				uint16(s.width), uint16(n), 0, int16(top), 0, s.depth, data)
			continue
		}
		// Errors from earlier chunks arrive through the event loop.
		err := xproto.PutImageChecked(conn, xproto.ImageFormatZPixmap, xproto.Drawable(s.win), s.gc,
			uint16(s.width), uint16(n), 0, int16(top), 0, s.depth, data).Check()
		if err != nil {
			return fmt.Errorf("put image: %w", err)
		}
	}
	return nil
}

// Hide unmaps the window. It is a no-op when already hidden.
func (s *Surface) Hide() error {
	if !s.mapped {
		return nil
	}
	s.mapped = false
	return xproto.UnmapWindowChecked(s.conn.XUtil.Conn(), s.win).Check()
}

// Destroy releases the window and its GC.
func (s *Surface) Destroy() {
	conn := s.conn.XUtil.Conn()
	if s.gc != 0 {
		xproto.FreeGC(conn, s.gc)
		s.gc = 0
	}
	if s.win != 0 {
		xproto.DestroyWindow(conn, s.win)
		s.win = 0
	}
	s.mapped = false
}
