package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

const (
	WindowWidth  = 640
	WindowHeight = 600
	WindowTitle  = "Beating Heart"

	// Animation
	LoopLength  = 20
	FPS         = 20
	PulsePeriod = 20.0

	// Particle field
	EdgeSamples            = 2000
	CenterDiffusionSamples = 4000
	InnerDenseSamples      = 30000
	InnerSparseSamples     = 3500

	// Audio
	SampleRate = 44100
)

// HeartColor is the default foreground color (#ff2121).
var HeartColor = color.RGBA{R: 255, G: 33, B: 33, A: 255}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds everything a heart animation session is built from.
type Config struct {
	Width  int
	Height int
	Color  color.RGBA

	LoopLength int
	FPS        int
	// PulsePeriod is K in ratio(f) = 10*curve(f/K*pi); it sets pulse speed.
	PulsePeriod float64
	Seed        int64

	EdgeSamples            int
	CenterDiffusionSamples int
	InnerDenseSamples      int
	InnerSparseSamples     int

	// DrawInnerDense draws the inner-dense layer after inner-sparse. Turning
	// it off leaves only the sparse interior.
	DrawInnerDense bool
	// Shading dims particles with distance from the canvas center.
	Shading bool

	Audio  bool
	Volume float64
	Sample string
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Width:                  WindowWidth,
		Height:                 WindowHeight,
		Color:                  HeartColor,
		LoopLength:             LoopLength,
		FPS:                    FPS,
		PulsePeriod:            PulsePeriod,
		EdgeSamples:            EdgeSamples,
		CenterDiffusionSamples: CenterDiffusionSamples,
		InnerDenseSamples:      InnerDenseSamples,
		InnerSparseSamples:     InnerSparseSamples,
		DrawInnerDense:         true,
		Audio:                  true,
	}
}

// Validate rejects configurations that would produce a degenerate animation.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalid, c.Width, c.Height)
	case c.LoopLength <= 0:
		return fmt.Errorf("%w: loop length must be positive, got %d", ErrInvalid, c.LoopLength)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case !(c.PulsePeriod > 0) || math.IsInf(c.PulsePeriod, 0):
		return fmt.Errorf("%w: pulse period must be positive, got %v", ErrInvalid, c.PulsePeriod)
	case c.EdgeSamples <= 0:
		return fmt.Errorf("%w: edge samples must be positive, got %d", ErrInvalid, c.EdgeSamples)
	case c.CenterDiffusionSamples < 0 || c.InnerDenseSamples < 0 || c.InnerSparseSamples < 0:
		return fmt.Errorf("%w: sample counts must not be negative", ErrInvalid)
	case math.IsNaN(c.Volume) || math.IsInf(c.Volume, 0):
		return fmt.Errorf("%w: volume must be finite, got %v", ErrInvalid, c.Volume)
	}
	return nil
}

// CenterX is the integer half width.
func (c *Config) CenterX() int { return c.Width / 2 }

// CenterY is the integer half height.
func (c *Config) CenterY() int { return c.Height / 2 }
