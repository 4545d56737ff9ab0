// Package render paints the focus border and hands it to the overlay
// surface.
package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/1broseidon/glint/internal/platform"
	"golang.org/x/image/vector"
)

// ErrEmptyFrame is returned when asked to paint a zero-sized overlay.
var ErrEmptyFrame = errors.New("render: empty overlay rectangle")

// Params describes one paint.
type Params struct {
	// Rect is the overlay rectangle in screen coordinates: the tracked
	// window's bounds inflated by BorderWidth.
	Rect        platform.Rect
	BorderWidth int
	Radius      int
}

// Renderer owns the off-screen buffer and the overlay surface. It is not
// safe for concurrent use.
type Renderer struct {
	surface platform.Surface
	canvas  *image.RGBA
	z       *vector.Rasterizer
	pixels  []byte
}

// New creates a renderer that presents onto surface.
func New(surface platform.Surface) *Renderer {
	return &Renderer{
		surface: surface,
		z:       vector.NewRasterizer(1, 1),
	}
}

// Render paints the border described by p and shows the surface at
// p.Rect. A failure abandons this paint only; the caller may retry on the
// next event.
func (r *Renderer) Render(p Params) error {
	w, h := p.Rect.Width(), p.Rect.Height()
	if w <= 0 || h <= 0 {
		return ErrEmptyFrame
	}

	canvas := r.ensureCanvas(w, h)
	strokeRoundedRect(r.z, canvas, p.BorderWidth, p.Radius)
	r.pixels = toBGRA(r.pixels, canvas)

	frame := platform.Frame{
		X:      p.Rect.Left,
		Y:      p.Rect.Top,
		Width:  w,
		Height: h,
		Pixels: r.pixels,
	}
	if err := r.surface.Present(frame); err != nil {
		return fmt.Errorf("present overlay %dx%d at (%d,%d): %w", w, h, frame.X, frame.Y, err)
	}
	return nil
}

// Hide removes the overlay from the screen. Calling it repeatedly is fine.
func (r *Renderer) Hide() error {
	return r.surface.Hide()
}

// Canvas exposes the most recently painted RGBA buffer.
func (r *Renderer) Canvas() *image.RGBA {
	return r.canvas
}

func (r *Renderer) ensureCanvas(w, h int) *image.RGBA {
	if r.canvas != nil && r.canvas.Rect.Dx() == w && r.canvas.Rect.Dy() == h {
		clear(r.canvas.Pix)
		return r.canvas
	}
	r.canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	return r.canvas
}
