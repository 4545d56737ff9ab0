//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// overlayClass is the registered window class of the overlay.
const overlayClass = "glint_overlay"

var wndProcCallback = windows.NewCallback(overlayWndProc)

func overlayWndProc(hwnd, message, wParam, lParam uintptr) uintptr {
	if uint32(message) == _WM_NCHITTEST {
		return _HTTRANSPARENT
	}
	r, _, _ := procDefWindowProcW.Call(hwnd, message, wParam, lParam)
	return r
}

// Surface is a topmost, click-through, never-activated layered window that
// displays premultiplied BGRA frames. All methods must be called on the
// thread that created it.
type Surface struct {
	hwnd      windows.HWND
	instance  windows.Handle
	className *uint16

	// DIB section reused while the size is unchanged.
	memDC  uintptr
	bitmap uintptr
	old    uintptr
	bits   unsafe.Pointer
	width  int
	height int
}

// NewSurface registers the overlay window class and creates the hidden
// overlay window.
func NewSurface() (*Surface, error) {
	var instance windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
		return nil, fmt.Errorf("GetModuleHandleEx: %w", err)
	}
	className, err := windows.UTF16PtrFromString(overlayClass)
	if err != nil {
		return nil, err
	}

	wc := wndClassEx{
		LpfnWndProc:   wndProcCallback,
		HInstance:     instance,
		LpszClassName: className,
	}
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	if atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		return nil, fmt.Errorf("RegisterClassExW: %w", err)
	}

	title, _ := windows.UTF16PtrFromString("")
	hwnd, _, err := procCreateWindowExW.Call(
		uintptr(_WS_EX_TOPMOST|_WS_EX_TRANSPARENT|_WS_EX_LAYERED|_WS_EX_TOOLWINDOW|_WS_EX_NOACTIVATE),
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		uintptr(_WS_POPUP),
		0, 0, 0, 0,
		0, 0,
		uintptr(instance),
		0,
	)
	if hwnd == 0 {
		procUnregisterClassW.Call(uintptr(unsafe.Pointer(className)), uintptr(instance))
		return nil, fmt.Errorf("CreateWindowExW: %w", err)
	}

	return &Surface{
		hwnd:      windows.HWND(hwnd),
		instance:  instance,
		className: className,
	}, nil
}

// HWND returns the overlay window handle.
func (s *Surface) HWND() windows.HWND { return s.hwnd }

// Present copies pixels (premultiplied BGRA, top-down, width*4 per row)
// into the layered window, places it at (x, y) and shows it topmost without
// activating it.
func (s *Surface) Present(x, y, width, height int, pixels []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid overlay size %dx%d", width, height)
	}
	n := width * height * 4
	if len(pixels) < n {
		return fmt.Errorf("short pixel buffer: %d bytes for %dx%d", len(pixels), width, height)
	}

	screenDC, _, err := procGetDC.Call(0)
	if screenDC == 0 {
		return fmt.Errorf("GetDC: %w", err)
	}
	defer procReleaseDC.Call(0, screenDC)

	if err := s.ensureDIB(screenDC, width, height); err != nil {
		return err
	}
	copy(unsafe.Slice((*byte)(s.bits), n), pixels[:n])

	dst := point{X: int32(x), Y: int32(y)}
	sz := size{CX: int32(width), CY: int32(height)}
	src := point{}
	blend := blendFunction{
		BlendOp:             _AC_SRC_OVER,
		SourceConstantAlpha: 255,
		AlphaFormat:         _AC_SRC_ALPHA,
	}
	ok, _, err := procUpdateLayeredWindow.Call(
		uintptr(s.hwnd),
		screenDC,
		uintptr(unsafe.Pointer(&dst)),
		uintptr(unsafe.Pointer(&sz)),
		s.memDC,
		uintptr(unsafe.Pointer(&src)),
		0,
		uintptr(unsafe.Pointer(&blend)),
		uintptr(_ULW_ALPHA),
	)
	if ok == 0 {
		return fmt.Errorf("UpdateLayeredWindow: %w", err)
	}

	ok, _, err = procSetWindowPos.Call(
		uintptr(s.hwnd),
		_HWND_TOPMOST,
		uintptr(int32(x)), uintptr(int32(y)),
		uintptr(width), uintptr(height),
		uintptr(_SWP_SHOWWINDOW|_SWP_NOACTIVATE),
	)
	if ok == 0 {
		return fmt.Errorf("SetWindowPos: %w", err)
	}
	return nil
}

func (s *Surface) ensureDIB(screenDC uintptr, width, height int) error {
	if s.bitmap != 0 && s.width == width && s.height == height {
		return nil
	}
	s.releaseDIB()

	memDC, _, err := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return fmt.Errorf("CreateCompatibleDC: %w", err)
	}

	bi := bitmapInfoHeader{
		BiWidth:       int32(width),
		BiHeight:      -int32(height), // negative height: top-down rows
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: _BI_RGB,
	}
	bi.BiSize = uint32(unsafe.Sizeof(bi))

	var bits unsafe.Pointer
	bitmap, _, err := procCreateDIBSection.Call(
		memDC,
		uintptr(unsafe.Pointer(&bi)),
		uintptr(_DIB_RGB_COLORS),
		uintptr(unsafe.Pointer(&bits)),
		0, 0,
	)
	if bitmap == 0 || bits == nil {
		procDeleteDC.Call(memDC)
		return fmt.Errorf("CreateDIBSection %dx%d: %w", width, height, err)
	}

	old, _, _ := procSelectObject.Call(memDC, bitmap)
	s.memDC, s.bitmap, s.old, s.bits = memDC, bitmap, old, bits
	s.width, s.height = width, height
	return nil
}

func (s *Surface) releaseDIB() {
	if s.memDC != 0 {
		procSelectObject.Call(s.memDC, s.old)
	}
	if s.bitmap != 0 {
		procDeleteObject.Call(s.bitmap)
	}
	if s.memDC != 0 {
		procDeleteDC.Call(s.memDC)
	}
	s.memDC, s.bitmap, s.old, s.bits = 0, 0, 0, nil
	s.width, s.height = 0, 0
}

// Hide hides the window without moving, resizing or reordering it.
func (s *Surface) Hide() error {
	ok, _, err := procSetWindowPos.Call(
		uintptr(s.hwnd), 0,
		0, 0, 0, 0,
		uintptr(_SWP_HIDEWINDOW|_SWP_NOMOVE|_SWP_NOSIZE|_SWP_NOZORDER|_SWP_NOACTIVATE),
	)
	if ok == 0 {
		return fmt.Errorf("SetWindowPos(hide): %w", err)
	}
	return nil
}

// Destroy releases the window, its class and the DIB.
func (s *Surface) Destroy() {
	s.releaseDIB()
	if s.hwnd != 0 {
		procDestroyWindow.Call(uintptr(s.hwnd))
		s.hwnd = 0
	}
	procUnregisterClassW.Call(uintptr(unsafe.Pointer(s.className)), uintptr(s.instance))
}
