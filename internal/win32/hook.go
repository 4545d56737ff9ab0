//go:build windows

package win32

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

// HookKind is the kind of WinEvent forwarded by Loop.
type HookKind int

const (
	HookForeground HookKind = iota + 1
	HookLocation
)

// HookEvent is a filtered WinEvent.
type HookEvent struct {
	Kind HookKind
	HWND windows.HWND
}

// The WinEvent callback is a process-wide trampoline; only one Loop may
// run at a time.
var (
	hookMu      sync.Mutex
	hookHandler func(HookEvent)

	winEventCallback = windows.NewCallback(winEventProc)
)

func winEventProc(hook, event, hwnd, idObject, idChild, eventThread, eventTime uintptr) uintptr {
	kind, ok := classifyWinEvent(uint32(event), int32(idObject), int32(idChild))
	if !ok {
		return 0
	}
	// The hook is out-of-context, so this runs on the Loop thread inside
	// GetMessageW and needs no lock against Run.
	if h := hookHandler; h != nil {
		h(HookEvent{Kind: kind, HWND: windows.HWND(hwnd)})
	}
	return 0
}

// classifyWinEvent keeps foreground changes and location changes of whole
// windows. Location changes of carets, cursors and child objects are
// dropped here since they arrive at a very high rate.
func classifyWinEvent(event uint32, idObject, idChild int32) (HookKind, bool) {
	switch event {
	case _EVENT_SYSTEM_FOREGROUND:
		return HookForeground, true
	case _EVENT_OBJECT_LOCATIONCHANGE:
		if idObject == _OBJID_WINDOW && idChild == _CHILDID_SELF {
			return HookLocation, true
		}
	}
	return 0, false
}

// Loop installs the WinEvent hooks and pumps messages on one OS thread.
type Loop struct {
	threadID atomic.Uint32
	quit     atomic.Bool
}

// Run blocks until Stop. The caller must have locked the goroutine to its
// OS thread, and windows that handler touches must belong to that thread.
// started runs on the loop thread once the hooks are installed; handler
// runs there for every forwarded event.
func (l *Loop) Run(started func(), handler func(HookEvent)) error {
	hookMu.Lock()
	if hookHandler != nil {
		hookMu.Unlock()
		return errors.New("win32: event loop already running")
	}
	hookHandler = handler
	hookMu.Unlock()
	defer func() {
		hookMu.Lock()
		hookHandler = nil
		hookMu.Unlock()
	}()

	// Force creation of the thread message queue so Stop can post to it.
	var m msg
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, uintptr(_WM_USER), uintptr(_WM_USER), uintptr(_PM_NOREMOVE))
	l.threadID.Store(windows.GetCurrentThreadId())
	defer l.threadID.Store(0)

	var hooks []uintptr
	defer func() {
		for _, h := range hooks {
			procUnhookWinEvent.Call(h)
		}
	}()
	for _, event := range []uint32{_EVENT_SYSTEM_FOREGROUND, _EVENT_OBJECT_LOCATIONCHANGE} {
		h, _, err := procSetWinEventHook.Call(
			uintptr(event), uintptr(event),
			0,
			winEventCallback,
			0, 0,
			uintptr(_WINEVENT_OUTOFCONTEXT|_WINEVENT_SKIPOWNPROCESS),
		)
		if h == 0 {
			return fmt.Errorf("SetWinEventHook(0x%04x): %w", event, err)
		}
		hooks = append(hooks, h)
	}

	if l.quit.Load() {
		return nil
	}
	if started != nil {
		started()
	}
	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			return fmt.Errorf("GetMessageW: %w", err)
		case 0:
			return nil
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// Stop asks Run to return. It is safe to call from any goroutine and more
// than once.
func (l *Loop) Stop() {
	l.quit.Store(true)
	if tid := l.threadID.Load(); tid != 0 {
		procPostThreadMessageW.Call(uintptr(tid), uintptr(_WM_QUIT), 0, 0)
	}
}
