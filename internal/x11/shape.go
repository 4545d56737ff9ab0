package x11

import "github.com/BurntSushi/xgb/xproto"

// opaqueRects turns the non-transparent pixels of a BGRA buffer into a
// bounding region. Each row is split into runs; a run identical to one on
// the previous row extends that rectangle downwards, so a plain border
// needs only four rectangles.
func opaqueRects(pixels []byte, width, height int) []xproto.Rectangle {
	var out []xproto.Rectangle
	prev := make(map[[2]int]int)
	cur := make(map[[2]int]int)

	for y := 0; y < height; y++ {
		row := pixels[y*width*4 : (y+1)*width*4]
		for x := 0; x < width; {
			if row[x*4+3] == 0 {
				x++
				continue
			}
			start := x
			for x < width && row[x*4+3] != 0 {
				x++
			}
			run := [2]int{start, x}
			if i, ok := prev[run]; ok {
				out[i].Height++
				cur[run] = i
				continue
			}
			out = append(out, xproto.Rectangle{
				X:      int16(start),
				Y:      int16(y),
				Width:  uint16(x - start),
				Height: 1,
			})
			cur[run] = len(out) - 1
		}
		prev, cur = cur, prev
		clear(cur)
	}
	return out
}

// rowsPerRequest returns how many rows of a width-pixel, 32bpp image fit in
// one PutImage request of at most maxRequest bytes.
func rowsPerRequest(width, height, maxRequest int) int {
	stride := width * 4
	if stride <= 0 {
		return height
	}
	rows := (maxRequest - putImageHeader) / stride
	return max(1, min(rows, height))
}

// serverOrder copies BGRA pixels into dst in the server's image byte order.
// LSB-first servers take BGRA as is; MSB-first servers expect ARGB.
func serverOrder(dst, src []byte, msbFirst bool) []byte {
	if cap(dst) < len(src) {
		dst = make([]byte, len(src))
	}
	dst = dst[:len(src)]
	if !msbFirst {
		copy(dst, src)
		return dst
	}
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+3]
		dst[i+1] = src[i+2]
		dst[i+2] = src[i+1]
		dst[i+3] = src[i+0]
	}
	return dst
}
