//go:build windows

package platform

import (
	"testing"
	"time"
)

func TestWindowsBackendHideAfterRunReturns(t *testing.T) {
	b, err := Open(nil)
	if err != nil {
		t.Skipf("no desktop session: %v", err)
	}
	defer b.Close()

	presented := make(chan error, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- b.Run(func(ev Event) {
			if ev.Kind != EventForeground {
				return
			}
			frame := Frame{X: 0, Y: 0, Width: 4, Height: 4, Pixels: make([]byte, 4*4*4)}
			select {
			case presented <- b.Surface().Present(frame):
			default:
			}
		})
	}()

	select {
	case err := <-presented:
		if err != nil {
			t.Fatalf("Present on the loop thread: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no initial foreground event")
	}
	b.Stop()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	// Shutdown hides from the main goroutine once Run has returned.
	if err := b.Surface().Hide(); err != nil {
		t.Fatalf("Hide after Run returned: %v", err)
	}
}
