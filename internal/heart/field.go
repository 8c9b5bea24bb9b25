package heart

import (
	"math"
	"math/rand"
)

const (
	edgeVariants = 3
	edgeBeta     = 0.05
	centerBeta   = 0.17

	innerScaleMin = 7.0
	innerScaleMax = 10.5
	innerJitter   = 8
)

// Field holds the four base point layers. It is built once and only read
// afterwards.
type Field struct {
	Edge            *PointSet
	CenterDiffusion *PointSet
	InnerDense      *PointSet
	InnerSparse     *PointSet
}

// Counts sets how many samples each layer of the field draws.
type Counts struct {
	Edge            int
	CenterDiffusion int
	InnerDense      int
	InnerSparse     int
}

func buildField(c Canvas, rng *rand.Rand, n Counts) *Field {
	f := &Field{}
	f.Edge = buildEdge(c, rng, n.Edge)
	f.CenterDiffusion = buildCenterDiffusion(c, rng, f.Edge, n.CenterDiffusion)
	f.InnerDense = buildInner(c, rng, n.InnerDense, func(d float64) float64 {
		return 1 / (1 + d*d/40)
	})
	f.InnerSparse = buildInner(c, rng, n.InnerSparse, func(d float64) float64 {
		return 1 / (1 + d/100)
	})
	return f
}

func buildEdge(c Canvas, rng *rand.Rand, n int) *PointSet {
	s := newPointSet(n * (edgeVariants + 1))
	for i := 0; i < n; i++ {
		s.add(c.HeartPoint(uniform(rng, 0, 2*math.Pi), Enlargement))
	}

	// thicken the outline inward, variants land in the same set
	for _, p := range s.Points() {
		for i := 0; i < edgeVariants; i++ {
			s.add(c.Scatter(rng, p, edgeBeta))
		}
	}
	return s
}

func buildCenterDiffusion(c Canvas, rng *rand.Rand, edge *PointSet, n int) *PointSet {
	s := newPointSet(n)
	for i := 0; i < n; i++ {
		p := edge.At(rng.Intn(edge.Len()))
		s.add(c.Scatter(rng, p, centerBeta))
	}
	return s
}

// buildInner draws n candidates from concentric heart curves and keeps each
// with probability density(distance from center).
func buildInner(c Canvas, rng *rand.Rand, n int, density func(float64) float64) *PointSet {
	s := newPointSet(n / 4)
	for i := 0; i < n; i++ {
		t := uniform(rng, 0, 2*math.Pi)
		p := c.HeartPoint(t, uniform(rng, innerScaleMin, innerScaleMax))
		p.X += float64(intRange(rng, -innerJitter, innerJitter))
		p.Y += float64(intRange(rng, -innerJitter, innerJitter))

		if rng.Float64() < density(c.Distance(p)) {
			s.add(p)
		}
	}
	return s
}
