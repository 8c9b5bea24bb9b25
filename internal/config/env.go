package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Load returns the default configuration with HEART_* environment overrides applied.
func Load() (*Config, error) {
	cfg := Default()

	ints := []struct {
		key string
		dst *int
	}{
		{"HEART_WIDTH", &cfg.Width},
		{"HEART_HEIGHT", &cfg.Height},
		{"HEART_FRAMES", &cfg.LoopLength},
		{"HEART_FPS", &cfg.FPS},
	}
	for _, v := range ints {
		if s := os.Getenv(v.key); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", v.key, err)
			}
			*v.dst = n
		}
	}

	if s := os.Getenv("HEART_SEED"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("HEART_SEED: %w", err)
		}
		cfg.Seed = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"HEART_PERIOD", &cfg.PulsePeriod},
		{"HEART_VOLUME", &cfg.Volume},
	}
	for _, v := range floats {
		if s := os.Getenv(v.key); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", v.key, err)
			}
			*v.dst = f
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"HEART_SHADING", &cfg.Shading},
		{"HEART_DENSE", &cfg.DrawInnerDense},
		{"HEART_AUDIO", &cfg.Audio},
	}
	for _, v := range bools {
		if s := os.Getenv(v.key); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", v.key, err)
			}
			*v.dst = b
		}
	}

	if s := os.Getenv("HEART_COLOR"); s != "" {
		c, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("HEART_COLOR: %w", err)
		}
		cfg.Color = c
	}

	if s := os.Getenv("HEART_SAMPLE"); s != "" {
		cfg.Sample = s
	}

	return cfg, nil
}

// ParseColor parses an opaque "#rrggbb" or "#rgb" color. The leading '#' is
// optional.
func ParseColor(s string) (color.RGBA, error) {
	hex := "#" + strings.TrimPrefix(s, "#")
	if len(hex) != 4 && len(hex) != 7 {
		return color.RGBA{}, fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalid, s)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
