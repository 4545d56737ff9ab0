//go:build windows

// Package win32 talks to user32, gdi32 and dwmapi for the overlay: window
// queries, WinEvent hooks and a per-pixel-alpha layered window.
package win32

import (
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procSetProcessDpiAwarenessContext = user32.NewProc("SetProcessDpiAwarenessContext")
	procGetDpiForWindow               = user32.NewProc("GetDpiForWindow")
	procGetWindowTextLengthW          = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW                = user32.NewProc("GetWindowTextW")
	procGetWindowRect                 = user32.NewProc("GetWindowRect")
	procIsZoomed                      = user32.NewProc("IsZoomed")
	procMonitorFromWindow             = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW               = user32.NewProc("GetMonitorInfoW")
	procSetWinEventHook               = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent                = user32.NewProc("UnhookWinEvent")
	procGetMessageW                   = user32.NewProc("GetMessageW")
	procPeekMessageW                  = user32.NewProc("PeekMessageW")
	procTranslateMessage              = user32.NewProc("TranslateMessage")
	procDispatchMessageW              = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW            = user32.NewProc("PostThreadMessageW")
	procRegisterClassExW              = user32.NewProc("RegisterClassExW")
	procUnregisterClassW              = user32.NewProc("UnregisterClassW")
	procCreateWindowExW               = user32.NewProc("CreateWindowExW")
	procDestroyWindow                 = user32.NewProc("DestroyWindow")
	procDefWindowProcW                = user32.NewProc("DefWindowProcW")
	procUpdateLayeredWindow           = user32.NewProc("UpdateLayeredWindow")
	procSetWindowPos                  = user32.NewProc("SetWindowPos")
	procGetDC                         = user32.NewProc("GetDC")
	procReleaseDC                     = user32.NewProc("ReleaseDC")

	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
)

const (
	_WS_POPUP          uint32 = 0x80000000
	_WS_EX_TOPMOST     uint32 = 0x00000008
	_WS_EX_TRANSPARENT uint32 = 0x00000020
	_WS_EX_TOOLWINDOW  uint32 = 0x00000080
	_WS_EX_LAYERED     uint32 = 0x00080000
	_WS_EX_NOACTIVATE  uint32 = 0x08000000

	_HWND_TOPMOST   uintptr = ^uintptr(0) // (HWND)-1
	_SWP_NOSIZE     uint32  = 0x0001
	_SWP_NOMOVE     uint32  = 0x0002
	_SWP_NOZORDER   uint32  = 0x0004
	_SWP_NOACTIVATE uint32  = 0x0010
	_SWP_SHOWWINDOW uint32  = 0x0040
	_SWP_HIDEWINDOW uint32  = 0x0080

	_ULW_ALPHA      uint32 = 0x00000002
	_AC_SRC_OVER    byte   = 0x00
	_AC_SRC_ALPHA   byte   = 0x01
	_BI_RGB         uint32 = 0
	_DIB_RGB_COLORS uint32 = 0

	_WM_QUIT                  uint32  = 0x0012
	_WM_NCHITTEST             uint32  = 0x0084
	_WM_USER                  uint32  = 0x0400
	_PM_NOREMOVE              uint32  = 0x0000
	_HTTRANSPARENT            uintptr = ^uintptr(0) // -1
	_MONITOR_DEFAULTTONEAREST uintptr = 2

	_EVENT_SYSTEM_FOREGROUND     uint32 = 0x0003
	_EVENT_OBJECT_LOCATIONCHANGE uint32 = 0x800B
	_WINEVENT_OUTOFCONTEXT       uint32 = 0x0000
	_WINEVENT_SKIPOWNPROCESS     uint32 = 0x0002
	_OBJID_WINDOW                int32  = 0
	_CHILDID_SELF                int32  = 0

	// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is (DPI_AWARENESS_CONTEXT)-4.
	_DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 uintptr = ^uintptr(3)
)

type point struct {
	X, Y int32
}

type size struct {
	CX, CY int32
}

type msg struct {
	HWnd    windows.HWND
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
	Private uint32
}

type monitorInfo struct {
	CbSize    uint32
	RcMonitor windows.Rect
	RcWork    windows.Rect
	DwFlags   uint32
}

type blendFunction struct {
	BlendOp             byte
	BlendFlags          byte
	SourceConstantAlpha byte
	AlphaFormat         byte
}

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type wndClassEx struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     windows.Handle
	HIcon         windows.Handle
	HCursor       windows.Handle
	HbrBackground windows.Handle
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       windows.Handle
}

// EnableDPIAwareness opts the process into per-monitor v2 DPI awareness so
// window rectangles are reported in physical pixels. Failure is harmless on
// systems that predate it.
func EnableDPIAwareness() error {
	if err := procSetProcessDpiAwarenessContext.Find(); err != nil {
		return err
	}
	r, _, err := procSetProcessDpiAwarenessContext.Call(_DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2)
	if r == 0 {
		return err
	}
	return nil
}
