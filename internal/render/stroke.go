package render

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"
)

// BorderColor is the fixed border colour (#8dbcff, opaque).
var BorderColor = color.RGBA{R: 0x8d, G: 0xbc, B: 0xff, A: 0xff}

// kappa places cubic control points so a Bézier approximates a quarter circle.
const kappa = 0.5522847498

// strokeRoundedRect paints a rounded-rectangle stroke of the given width
// into dst. The stroke is centred on a path inset by half the width from
// dst's edges, so it never leaves the buffer. radius is applied to the inset
// path unchanged.
func strokeRoundedRect(z *vector.Rasterizer, dst *image.RGBA, borderWidth, radius int) {
	b := dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	if borderWidth <= 0 || w <= 0 || h <= 0 {
		return
	}

	bw := float32(borderWidth)
	hw := bw / 2

	// Radius is clamped against the path rectangle like a rounded-rect
	// primitive would.
	rp := float32(radius)
	rp = min(rp, (w-bw)/2, (h-bw)/2)
	if rp < 0 {
		rp = 0
	}

	outerR := float32(0)
	if rp > 0 {
		outerR = rp + hw
	}
	innerR := max(rp-hw, 0)

	z.Reset(b.Dx(), b.Dy())
	addRoundedRect(z, 0, 0, w, h, outerR, true)
	if w > 2*bw && h > 2*bw {
		addRoundedRect(z, bw, bw, w-bw, h-bw, innerR, false)
	}
	z.Draw(dst, b, image.NewUniform(BorderColor), image.Point{})
}

// addRoundedRect appends a closed rounded rectangle to z. The rasteriser
// accumulates signed coverage, so an inner contour wound the other way
// cuts a hole.
func addRoundedRect(z *vector.Rasterizer, x0, y0, x1, y1, r float32, clockwise bool) {
	fx := func(x float32) float32 { return x }
	if !clockwise {
		// Mirroring across the vertical centre line reverses the winding and
		// leaves the symmetric shape unchanged.
		fx = func(x float32) float32 { return x0 + x1 - x }
	}

	if r <= 0 {
		z.MoveTo(fx(x0), y0)
		z.LineTo(fx(x1), y0)
		z.LineTo(fx(x1), y1)
		z.LineTo(fx(x0), y1)
		z.ClosePath()
		return
	}

	k := r * kappa
	z.MoveTo(fx(x0+r), y0)
	z.LineTo(fx(x1-r), y0)
	z.CubeTo(fx(x1-r+k), y0, fx(x1), y0+r-k, fx(x1), y0+r)
	z.LineTo(fx(x1), y1-r)
	z.CubeTo(fx(x1), y1-r+k, fx(x1-r+k), y1, fx(x1-r), y1)
	z.LineTo(fx(x0+r), y1)
	z.CubeTo(fx(x0+r-k), y1, fx(x0), y1-r+k, fx(x0), y1-r)
	z.LineTo(fx(x0), y0+r)
	z.CubeTo(fx(x0), y0+r-k, fx(x0+r-k), y0, fx(x0+r), y0)
	z.ClosePath()
}

// toBGRA converts premultiplied RGBA pixels into premultiplied BGRA, the
// layout both the Win32 layered-window and X11 ARGB paths expect.
func toBGRA(out []byte, src *image.RGBA) []byte {
	b := src.Bounds()
	n := b.Dx() * b.Dy() * 4
	if cap(out) < n {
		out = make([]byte, n)
	}
	out = out[:n]

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
		for x := 0; x < len(row); x += 4 {
			out[i+0] = row[x+2]
			out[i+1] = row[x+1]
			out[i+2] = row[x+0]
			out[i+3] = row[x+3]
			i += 4
		}
	}
	return out
}
