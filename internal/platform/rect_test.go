package platform

import "testing"

func TestRectInflate(t *testing.T) {
	r := Rect{Left: 100, Top: 100, Right: 500, Bottom: 400}
	got := r.Inflate(3)
	want := Rect{Left: 97, Top: 97, Right: 503, Bottom: 403}
	if got != want {
		t.Fatalf("Inflate(3) = %+v, want %+v", got, want)
	}
	if !got.Contains(r) {
		t.Fatalf("inflated rect %+v does not contain %+v", got, r)
	}
	if got.Width() != 406 || got.Height() != 306 {
		t.Fatalf("unexpected size %dx%d", got.Width(), got.Height())
	}
}

func TestRectIntersect(t *testing.T) {
	a := RectFromXYWH(0, 0, 100, 100)
	b := RectFromXYWH(50, 60, 100, 100)
	got := a.Intersect(b)
	want := Rect{Left: 50, Top: 60, Right: 100, Bottom: 100}
	if got != want {
		t.Fatalf("Intersect = %+v, want %+v", got, want)
	}

	disjoint := RectFromXYWH(200, 200, 10, 10)
	if got := a.Intersect(disjoint); got != (Rect{}) {
		t.Fatalf("expected zero rect for disjoint intersect, got %+v", got)
	}
}

func TestRectContainsPoint(t *testing.T) {
	r := RectFromXYWH(10, 10, 20, 20)
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{29, 29, true},
		{30, 10, false},
		{9, 15, false},
	}
	for _, tt := range tests {
		if got := r.ContainsPoint(tt.x, tt.y); got != tt.want {
			t.Errorf("ContainsPoint(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestEventKindString(t *testing.T) {
	if EventForeground.String() != "foreground" || EventLocation.String() != "location" {
		t.Fatalf("unexpected event kind names: %s %s", EventForeground, EventLocation)
	}
	if EventKind(99).String() != "unknown" {
		t.Fatalf("expected unknown for out-of-range kind")
	}
}
