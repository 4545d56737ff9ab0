package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

// frameWithBorder builds a BGRA buffer with an opaque square border.
func frameWithBorder(width, height, border int) []byte {
	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < border || y < border || x >= width-border || y >= height-border {
				pix[(y*width+x)*4+3] = 0xff
			}
		}
	}
	return pix
}

func TestOpaqueRectsSquareBorder(t *testing.T) {
	rects := opaqueRects(frameWithBorder(406, 306, 3), 406, 306)
	want := []xproto.Rectangle{
		{X: 0, Y: 0, Width: 406, Height: 3},
		{X: 0, Y: 3, Width: 3, Height: 300},
		{X: 403, Y: 3, Width: 3, Height: 300},
		{X: 0, Y: 303, Width: 406, Height: 3},
	}
	if len(rects) != len(want) {
		t.Fatalf("got %d rects %v, want %v", len(rects), rects, want)
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("rect %d = %+v, want %+v", i, rects[i], want[i])
		}
	}
}

func TestOpaqueRectsTransparentFrame(t *testing.T) {
	if rects := opaqueRects(make([]byte, 10*10*4), 10, 10); len(rects) != 0 {
		t.Fatalf("expected no rects, got %v", rects)
	}
}

func TestOpaqueRectsCoversEveryOpaquePixel(t *testing.T) {
	const w, h = 12, 9
	pix := make([]byte, w*h*4)
	// A diagonal staircase defeats vertical merging.
	for y := 0; y < h; y++ {
		for x := y; x < y+3 && x < w; x++ {
			pix[(y*w+x)*4+3] = 0x80
		}
	}
	covered := make([]bool, w*h)
	for _, r := range opaqueRects(pix, w, h) {
		for y := int(r.Y); y < int(r.Y)+int(r.Height); y++ {
			for x := int(r.X); x < int(r.X)+int(r.Width); x++ {
				if covered[y*w+x] {
					t.Fatalf("pixel (%d,%d) covered twice", x, y)
				}
				covered[y*w+x] = true
			}
		}
	}
	for i := range covered {
		if covered[i] != (pix[i*4+3] != 0) {
			t.Fatalf("pixel %d coverage %v, alpha %d", i, covered[i], pix[i*4+3])
		}
	}
}

func TestRowsPerRequest(t *testing.T) {
	tests := []struct {
		width, height, max int
		want               int
	}{
		{406, 306, 262140, 161},
		{10, 5, 262140, 5},
		{70000, 2, 262140, 1},
		{0, 7, 262140, 7},
	}
	for _, tt := range tests {
		if got := rowsPerRequest(tt.width, tt.height, tt.max); got != tt.want {
			t.Errorf("rowsPerRequest(%d, %d, %d) = %d, want %d", tt.width, tt.height, tt.max, got, tt.want)
		}
	}
}

func TestServerOrder(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	lsb := serverOrder(nil, src, false)
	if string(lsb) != string(src) {
		t.Fatalf("LSB order changed pixels: %v", lsb)
	}
	msb := serverOrder(nil, src, true)
	want := []byte{4, 3, 2, 1, 8, 7, 6, 5}
	if string(msb) != string(want) {
		t.Fatalf("MSB order = %v, want %v", msb, want)
	}
}
