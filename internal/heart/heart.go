// Package heart builds the particle field of a beating heart and precomputes
// a looping sequence of frames from it.
//
// A Heart is built eagerly: New samples the four base point layers, then
// synthesizes every frame of the loop. Afterwards it is read only and safe to
// share.
package heart

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/iburimskiy/beating-heart/internal/config"
)

// beatEpsilon absorbs the float noise of sin at multiples of pi.
const beatEpsilon = 1e-9

// Heart is one animation session: a static field and its frame cache.
type Heart struct {
	canvas Canvas
	field  *Field
	frames [][]Drawable
	ratios []float64
	beats  []int
}

// New validates cfg, builds the field and fills the frame cache. The same
// configuration and seed always yield identical frames.
func New(cfg *config.Config) (*Heart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	canvas := Canvas{Width: cfg.Width, Height: cfg.Height}
	field := buildField(canvas, rng, Counts{
		Edge:            cfg.EdgeSamples,
		CenterDiffusion: cfg.CenterDiffusionSamples,
		InnerDense:      cfg.InnerDenseSamples,
		InnerSparse:     cfg.InnerSparseSamples,
	})

	syn := &synthesizer{
		canvas:     canvas,
		field:      field,
		rng:        rng,
		period:     cfg.PulsePeriod,
		innerDense: cfg.DrawInnerDense,
	}

	h := &Heart{
		canvas: canvas,
		field:  field,
		frames: make([][]Drawable, cfg.LoopLength),
		ratios: make([]float64, cfg.LoopLength),
	}
	for f := range h.frames {
		frame, err := syn.frame(f)
		if err != nil {
			return nil, fmt.Errorf("heart: frame %d: %w", f, err)
		}
		h.frames[f] = frame
		h.ratios[f] = syn.ratio(f)
	}

	for f := range h.ratios {
		prev := h.ratios[h.index(f-1)]
		if prev > beatEpsilon && h.ratios[f] <= beatEpsilon {
			h.beats = append(h.beats, f)
		}
	}
	return h, nil
}

func (h *Heart) index(n int) int {
	l := len(h.frames)
	return ((n % l) + l) % l
}

// Frame returns a copy of the drawables of frame n mod LoopLength.
func (h *Heart) Frame(n int) []Drawable {
	return slices.Clone(h.frames[h.index(n)])
}

// FrameLen returns the number of drawables in frame n mod LoopLength.
func (h *Heart) FrameLen(n int) int {
	return len(h.frames[h.index(n)])
}

func (h *Heart) LoopLength() int { return len(h.frames) }

func (h *Heart) Canvas() Canvas { return h.canvas }

func (h *Heart) Field() *Field { return h.field }

// Ratio returns the deformation radius used for frame n mod LoopLength.
func (h *Heart) Ratio(n int) float64 {
	return h.ratios[h.index(n)]
}

// IsBeat reports whether frame n starts an expansion of the heart.
func (h *Heart) IsBeat(n int) bool {
	return slices.Contains(h.beats, h.index(n))
}

// Beats lists the frame indexes within one loop where expansion starts.
func (h *Heart) Beats() []int {
	return slices.Clone(h.beats)
}
