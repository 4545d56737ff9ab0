//go:build windows

package win32

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ErrNoMonitor is returned when a window has no associated monitor.
var ErrNoMonitor = errors.New("win32: no monitor for window")

// Monitor is a display and its work area in physical pixels.
type Monitor struct {
	Bounds windows.Rect
	Work   windows.Rect
}

// ForegroundWindow returns the window with keyboard focus, or 0.
func ForegroundWindow() windows.HWND {
	return windows.GetForegroundWindow()
}

func IsVisible(hwnd windows.HWND) bool {
	return windows.IsWindowVisible(hwnd)
}

// ClassName returns the registered class of hwnd, or "" on failure.
func ClassName(hwnd windows.HWND) string {
	buf := make([]uint16, 256)
	n, err := windows.GetClassName(hwnd, &buf[0], int32(len(buf)))
	if err != nil || n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// Title returns the window text of hwnd, or "" when it has none.
func Title(hwnd windows.HWND) string {
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	copied, _, _ := procGetWindowTextW.Call(
		uintptr(hwnd),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	return windows.UTF16ToString(buf[:copied])
}

// ExtendedFrameBounds returns the visible frame as drawn by DWM, without
// the invisible resize borders GetWindowRect includes.
func ExtendedFrameBounds(hwnd windows.HWND) (windows.Rect, error) {
	var r windows.Rect
	err := windows.DwmGetWindowAttribute(hwnd, windows.DWMWA_EXTENDED_FRAME_BOUNDS, unsafe.Pointer(&r), uint32(unsafe.Sizeof(r)))
	if err != nil {
		return windows.Rect{}, fmt.Errorf("DwmGetWindowAttribute: %w", err)
	}
	return r, nil
}

func WindowRect(hwnd windows.HWND) (windows.Rect, error) {
	var r windows.Rect
	ok, _, err := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return windows.Rect{}, fmt.Errorf("GetWindowRect: %w", err)
	}
	return r, nil
}

// MonitorFor returns the monitor nearest to hwnd.
func MonitorFor(hwnd windows.HWND) (Monitor, error) {
	hmon, _, _ := procMonitorFromWindow.Call(uintptr(hwnd), _MONITOR_DEFAULTTONEAREST)
	if hmon == 0 {
		return Monitor{}, ErrNoMonitor
	}
	mi := monitorInfo{CbSize: uint32(unsafe.Sizeof(monitorInfo{}))}
	ok, _, err := procGetMonitorInfoW.Call(hmon, uintptr(unsafe.Pointer(&mi)))
	if ok == 0 {
		return Monitor{}, fmt.Errorf("GetMonitorInfoW: %w", err)
	}
	return Monitor{Bounds: mi.RcMonitor, Work: mi.RcWork}, nil
}

// DPI returns the DPI of the monitor hwnd is on.
func DPI(hwnd windows.HWND) (int, error) {
	if err := procGetDpiForWindow.Find(); err != nil {
		return 0, err
	}
	dpi, _, _ := procGetDpiForWindow.Call(uintptr(hwnd))
	if dpi == 0 {
		return 0, errors.New("GetDpiForWindow returned 0")
	}
	return int(dpi), nil
}

func IsZoomed(hwnd windows.HWND) bool {
	r, _, _ := procIsZoomed.Call(uintptr(hwnd))
	return r != 0
}
