package heart

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

const (
	// Enlargement is the default heart curve scale.
	Enlargement = 11.0
	// HaloScale is the curve scale the halo is sampled from.
	HaloScale = 11.6

	deformExponent = 0.52
	shrinkExponent = 0.6

	// minOffset2 is the smallest squared offset from center the radial
	// transforms accept.
	minOffset2 = 1e-12
)

// ErrCenterCollapse is returned when a point sits on the canvas center, where
// the radial force is undefined.
var ErrCenterCollapse = errors.New("point collapsed onto canvas center")

// Point is a real valued canvas coordinate.
type Point struct {
	X, Y float64
}

// Layer identifies the particle group a drawable came from. Frames list
// drawables in Layer order.
type Layer uint8

const (
	LayerHalo Layer = iota
	LayerEdge
	LayerCenterDiffusion
	LayerInnerSparse
	LayerInnerDense
)

// Drawable is a filled square of Size pixels at integer canvas coordinates.
type Drawable struct {
	X, Y  int
	Size  int
	Layer Layer
}

// Canvas is the fixed drawing area every spatial computation is relative to.
type Canvas struct {
	Width, Height int
}

// Center returns the integer half width and half height.
func (c Canvas) Center() Point {
	return Point{X: float64(c.Width / 2), Y: float64(c.Height / 2)}
}

// offset returns p relative to the canvas center.
func (c Canvas) offset(p Point) (float64, float64) {
	o := c.Center()
	return p.X - o.X, p.Y - o.Y
}

// HeartPoint evaluates the parametric heart curve at t, scaled and placed on
// the canvas. y is inverted because canvas y grows downward.
func (c Canvas) HeartPoint(t, scale float64) Point {
	s := math.Sin(t)
	x := 16 * s * s * s * scale
	y := (13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)) * scale
	o := c.Center()
	return Point{X: math.Round(x + o.X), Y: math.Round(-y + o.Y)}
}

// Distance returns the euclidean distance of p from the canvas center.
func (c Canvas) Distance(p Point) float64 {
	dx, dy := c.offset(p)
	return math.Hypot(dx, dy)
}

// Curve is the pulse oscillator 4*sin(4p)/(2*pi), period pi/2 in p.
func Curve(p float64) float64 {
	return 4 * math.Sin(4*p) / (2 * math.Pi)
}

// Scatter pulls p toward the center by an exponentially distributed fraction
// of its offset, drawn independently per axis. Larger beta scatters deeper.
func (c Canvas) Scatter(rng *rand.Rand, p Point, beta float64) Point {
	pullX := -beta * math.Log(openUnit(rng))
	pullY := -beta * math.Log(openUnit(rng))
	dx, dy := c.offset(p)
	return Point{X: p.X - pullX*dx, Y: p.Y - pullY*dy}
}

// Deform displaces p toward the center by ratio*|o|^-1.04*o plus integer
// jitter in [-1, 1] per axis. Negative ratios push outward.
func (c Canvas) Deform(rng *rand.Rand, p Point, ratio float64) (Point, error) {
	dx, dy := c.offset(p)
	d2 := dx*dx + dy*dy
	if d2 < minOffset2 {
		return Point{}, fmt.Errorf("%w at (%.2f, %.2f)", ErrCenterCollapse, p.X, p.Y)
	}
	force := 1 / math.Pow(d2, deformExponent)
	mx := ratio*force*dx + float64(intRange(rng, -1, 1))
	my := ratio*force*dy + float64(intRange(rng, -1, 1))
	return Point{X: p.X - mx, Y: p.Y - my}, nil
}

// Shrink is the halo transform: a positive ratio pushes p away from the
// center by ratio*|o|^-1.2*o.
func (c Canvas) Shrink(p Point, ratio float64) (Point, error) {
	dx, dy := c.offset(p)
	d2 := dx*dx + dy*dy
	if d2 < minOffset2 {
		return Point{}, fmt.Errorf("%w at (%.2f, %.2f)", ErrCenterCollapse, p.X, p.Y)
	}
	force := -1 / math.Pow(d2, shrinkExponent)
	return Point{X: p.X - ratio*force*dx, Y: p.Y - ratio*force*dy}, nil
}

// openUnit draws from the open interval (0, 1).
func openUnit(rng *rand.Rand) float64 {
	for {
		if u := rng.Float64(); u > 0 {
			return u
		}
	}
}

// intRange draws an integer from the closed interval [lo, hi].
func intRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
