//go:build windows

package win32

import "testing"

func TestClassifyWinEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    uint32
		idObject int32
		idChild  int32
		want     HookKind
		wantOK   bool
	}{
		{"foreground", _EVENT_SYSTEM_FOREGROUND, _OBJID_WINDOW, _CHILDID_SELF, HookForeground, true},
		{"foreground any object", _EVENT_SYSTEM_FOREGROUND, -8, 3, HookForeground, true},
		{"window moved", _EVENT_OBJECT_LOCATIONCHANGE, _OBJID_WINDOW, _CHILDID_SELF, HookLocation, true},
		{"caret moved", _EVENT_OBJECT_LOCATIONCHANGE, -8, _CHILDID_SELF, 0, false},
		{"child moved", _EVENT_OBJECT_LOCATIONCHANGE, _OBJID_WINDOW, 4, 0, false},
		{"other event", 0x8002, _OBJID_WINDOW, _CHILDID_SELF, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifyWinEvent(tt.event, tt.idObject, tt.idChild)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("classifyWinEvent = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
