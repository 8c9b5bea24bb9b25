package heart

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// haloPeriod is the fixed period constant the halo pulse uses,
	// independent of the configured deformation period.
	haloPeriod = 10.0
	haloJitter = 14

	deformAmplitude = 10.0
)

// layer is a point set drawn every frame and how its particle sizes are drawn.
type layer struct {
	tag  Layer
	set  *PointSet
	size func() int
}

// synthesizer turns the static field into drawables for one frame index.
type synthesizer struct {
	canvas     Canvas
	field      *Field
	rng        *rand.Rand
	period     float64
	innerDense bool
}

// ratio is the signed deformation radius at frame f. Positive contracts.
func (s *synthesizer) ratio(f int) float64 {
	return deformAmplitude * Curve(float64(f)/s.period*math.Pi)
}

func (s *synthesizer) frame(f int) ([]Drawable, error) {
	ratio := s.ratio(f)

	n := 7000 + s.field.Edge.Len() + s.field.CenterDiffusion.Len() + s.field.InnerSparse.Len()
	if s.innerDense {
		n += s.field.InnerDense.Len()
	}
	out := make([]Drawable, 0, n)

	out, err := s.halo(out, f)
	if err != nil {
		return nil, err
	}

	layers := []layer{
		{LayerEdge, s.field.Edge, func() int { return intRange(s.rng, 1, 3) }},
		{LayerCenterDiffusion, s.field.CenterDiffusion, func() int { return intRange(s.rng, 1, 2) }},
		{LayerInnerSparse, s.field.InnerSparse, func() int { return 1 + s.rng.Intn(2) }},
	}
	if s.innerDense {
		layers = append(layers, layer{LayerInnerDense, s.field.InnerDense, func() int { return 1 + s.rng.Intn(2) }})
	}

	for _, l := range layers {
		for _, p := range l.set.points {
			q, err := s.canvas.Deform(s.rng, p, ratio)
			if err != nil {
				return nil, err
			}
			out = append(out, drawable(q, l.size(), l.tag))
		}
	}
	return out, nil
}

// halo resamples the glow ring from scratch. It is never cached between
// frames so it sparkles.
func (s *synthesizer) halo(out []Drawable, f int) ([]Drawable, error) {
	c := Curve(float64(f) / haloPeriod * math.Pi)
	radius := float64(int(4 + 6*(1+c)))
	number := int(3000 + 4000*c*c)

	seen := make(map[Point]struct{}, number)
	for i := 0; i < number; i++ {
		p := s.canvas.HeartPoint(uniform(s.rng, 0, 2*math.Pi), HaloScale)
		p, err := s.canvas.Shrink(p, radius)
		if err != nil {
			return nil, fmt.Errorf("halo: %w", err)
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		p.X += float64(intRange(s.rng, -haloJitter, haloJitter))
		p.Y += float64(intRange(s.rng, -haloJitter, haloJitter))
		out = append(out, drawable(p, 1+s.rng.Intn(3), LayerHalo))
	}
	return out, nil
}

func drawable(p Point, size int, l Layer) Drawable {
	return Drawable{X: int(math.Round(p.X)), Y: int(math.Round(p.Y)), Size: size, Layer: l}
}
