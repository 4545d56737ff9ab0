package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// HasShape reports whether the SHAPE extension is available. Without it
	// the overlay cannot be made click-through.
	HasShape bool

	quitAtom xproto.Atom
}

// NewConnection connects to display (or $DISPLAY when empty) and initializes
// the RandR and SHAPE extensions.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, err
	}

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	return &Connection{
		XUtil:    xu,
		Root:     xu.RootWin(),
		HasShape: shape.Init(xu.Conn()) == nil,
	}, nil
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// QuitOnWake makes EventLoop return when win receives the client message
// sent by Quit. The quit flag is then set on the event loop goroutine, the
// only one that reads it.
func (c *Connection) QuitOnWake(win xproto.Window) error {
	atom, err := xprop.Atm(c.XUtil, "_GLINT_QUIT")
	if err != nil {
		return fmt.Errorf("intern quit atom: %w", err)
	}
	c.quitAtom = atom
	xevent.ClientMessageFun(c.handleWake).Connect(c.XUtil, win)
	return nil
}

func (c *Connection) handleWake(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
	if c.quitAtom != 0 && ev.Type == c.quitAtom {
		xevent.Quit(xu)
	}
}

// Quit asks EventLoop to return by sending the wake-up message to win,
// which must have been registered with QuitOnWake. Safe from any goroutine.
func (c *Connection) Quit(win xproto.Window) {
	if win == 0 || c.quitAtom == 0 {
		return
	}
	ev := wakeMessage(win, c.quitAtom)
	xproto.SendEvent(c.XUtil.Conn(), false, win, xproto.EventMaskNoEvent, string(ev.Bytes()))
	c.XUtil.Sync()
}

func wakeMessage(win xproto.Window, atom xproto.Atom) xproto.ClientMessageEvent {
	return xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
