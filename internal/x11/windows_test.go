package x11

import "testing"

func TestIsMaximizedState(t *testing.T) {
	tests := []struct {
		states []string
		want   bool
	}{
		{nil, false},
		{[]string{"_NET_WM_STATE_MAXIMIZED_VERT"}, false},
		{[]string{"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ"}, true},
		{[]string{"_NET_WM_STATE_FULLSCREEN"}, true},
		{[]string{"_NET_WM_STATE_HIDDEN"}, false},
	}
	for _, tt := range tests {
		if got := isMaximizedState(tt.states); got != tt.want {
			t.Errorf("isMaximizedState(%v) = %v, want %v", tt.states, got, tt.want)
		}
	}
}

func TestAddExtents(t *testing.T) {
	client := Geometry{X: 102, Y: 130, Width: 396, Height: 268}
	got := addExtents(client, 2, 2, 30, 2)
	want := Geometry{X: 100, Y: 100, Width: 400, Height: 300}
	if got != want {
		t.Fatalf("addExtents = %+v, want %+v", got, want)
	}
}
