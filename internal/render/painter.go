// Package render paints heart drawables onto images.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/iburimskiy/beating-heart/internal/heart"
)

// Painter draws each drawable as a filled square in one foreground color on
// a black background.
type Painter struct {
	Canvas heart.Canvas
	Color  color.RGBA
	// Shading dims every particle but the halo linearly with distance from
	// the center.
	Shading bool
}

// Level returns the brightness of d in 1..255. The halo is never shaded.
func (p Painter) Level(d heart.Drawable) uint8 {
	if !p.Shading || d.Layer == heart.LayerHalo {
		return 255
	}
	dist := p.Canvas.Distance(heart.Point{X: float64(d.X), Y: float64(d.Y)})
	maxDist := math.Hypot(float64(p.Canvas.Width), float64(p.Canvas.Height))
	lvl := uint8(255 * clamp01(1-dist/maxDist))
	if lvl == 0 {
		lvl = 1
	}
	return lvl
}

// ColorOf returns the color d is painted with.
func (p Painter) ColorOf(d heart.Drawable) color.RGBA {
	return scale(p.Color, p.Level(d))
}

// Paint clears dst to black and fills every drawable of frame, clipped to
// dst's bounds.
func (p Painter) Paint(dst draw.Image, frame []heart.Drawable) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.Black, image.Point{}, draw.Src)

	for _, d := range frame {
		r := image.Rect(d.X, d.Y, d.X+d.Size, d.Y+d.Size).Intersect(bounds)
		if r.Empty() {
			continue
		}
		draw.Draw(dst, r, image.NewUniform(p.ColorOf(d)), image.Point{}, draw.Src)
	}
}

// Palette returns 256 entries where index i is the foreground at level i and
// index 0 is the black background.
func (p Painter) Palette() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = scale(p.Color, uint8(i))
	}
	return pal
}

// PaintPaletted is Paint for images using Palette, writing palette indexes
// directly.
func (p Painter) PaintPaletted(dst *image.Paletted, frame []heart.Drawable) {
	for i := range dst.Pix {
		dst.Pix[i] = 0
	}

	bounds := dst.Bounds()
	for _, d := range frame {
		r := image.Rect(d.X, d.Y, d.X+d.Size, d.Y+d.Size).Intersect(bounds)
		lvl := p.Level(d)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				dst.SetColorIndex(x, y, lvl)
			}
		}
	}
}

func scale(c color.RGBA, lvl uint8) color.RGBA {
	k := float64(lvl) / 255
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
