// Package export writes a heart's frame cache to image files.
package export

import (
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"

	"github.com/iburimskiy/beating-heart/internal/heart"
	"github.com/iburimskiy/beating-heart/internal/render"
)

// GIF encodes one full loop as an endlessly repeating animated GIF played at
// fps frames per second.
func GIF(w io.Writer, h *heart.Heart, p render.Painter, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("export: fps must be positive, got %d", fps)
	}

	c := h.Canvas()
	bounds := image.Rect(0, 0, c.Width, c.Height)
	pal := p.Palette()
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}

	anim := &gif.GIF{LoopCount: 0}
	for f := 0; f < h.LoopLength(); f++ {
		img := image.NewPaletted(bounds, pal)
		p.PaintPaletted(img, h.Frame(f))
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("export: encode gif: %w", err)
	}
	return nil
}

// PNG writes frame n as a single still image.
func PNG(w io.Writer, h *heart.Heart, p render.Painter, n int) error {
	c := h.Canvas()
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	p.Paint(img, h.Frame(n))

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}
