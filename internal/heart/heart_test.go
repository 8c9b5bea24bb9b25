package heart

import (
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"github.com/iburimskiy/beating-heart/internal/config"
)

func testConfig(loop int, seed int64) *config.Config {
	cfg := config.Default()
	cfg.LoopLength = loop
	cfg.Seed = seed
	return cfg
}

func mustNew(t *testing.T, cfg *config.Config) *Heart {
	t.Helper()
	h, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return h
}

func TestPointSetDedup(t *testing.T) {
	s := newPointSet(4)
	if !s.add(Point{X: 1, Y: 2}) {
		t.Error("Expected first insert to be new")
	}
	if s.add(Point{X: 1, Y: 2}) {
		t.Error("Expected duplicate insert to be rejected")
	}
	s.add(Point{X: 1, Y: 2.0000001})
	s.add(Point{X: 0, Y: 0})

	if s.Len() != 3 {
		t.Errorf("Expected 3 points, got %d", s.Len())
	}
	want := []Point{{1, 2}, {1, 2.0000001}, {0, 0}}
	if got := s.Points(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected insertion order %v, got %v", want, got)
	}

	// Points hands out a copy
	s.Points()[0] = Point{X: 99, Y: 99}
	if s.At(0) != (Point{X: 1, Y: 2}) {
		t.Errorf("Expected set to be unaffected by copy mutation, got %v", s.At(0))
	}
	if !s.Contains(Point{X: 0, Y: 0}) || s.Contains(Point{X: 99, Y: 99}) {
		t.Error("Contains reported wrong membership")
	}
}

func TestFieldFloors(t *testing.T) {
	h := mustNew(t, testConfig(1, 11))
	f := h.Field()

	if f.Edge.Len() < 2000 {
		t.Errorf("Expected at least 2000 edge points, got %d", f.Edge.Len())
	}
	if f.CenterDiffusion.Len() < 3000 {
		t.Errorf("Expected at least 3000 center-diffusion points, got %d", f.CenterDiffusion.Len())
	}
	if f.InnerDense.Len() == 0 {
		t.Error("Expected non-empty inner-dense set")
	}
	if f.InnerSparse.Len() < 500 {
		t.Errorf("Expected at least 500 inner-sparse points, got %d", f.InnerSparse.Len())
	}
	if f.Edge.Len() > 4*config.EdgeSamples {
		t.Errorf("Expected at most %d edge points, got %d", 4*config.EdgeSamples, f.Edge.Len())
	}
}

func TestEdgeBaseOnCurve(t *testing.T) {
	c := Canvas{Width: 640, Height: 600}
	rng := rand.New(rand.NewSource(5))
	s := buildEdge(c, rng, 50)

	// the first inserted points are integer curve samples, variants follow
	for i := 0; i < s.Len(); i++ {
		p := s.At(i)
		if d := c.Distance(p); d > 200 {
			t.Fatalf("Edge point %v too far from center: %v", p, d)
		}
	}
	if s.Len() > 200 {
		t.Errorf("Expected at most 200 points from 50 samples, got %d", s.Len())
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := mustNew(t, testConfig(4, 1234))
	b := mustNew(t, testConfig(4, 1234))

	for f := 0; f < 4; f++ {
		if !reflect.DeepEqual(a.Frame(f), b.Frame(f)) {
			t.Fatalf("Frame %d differs between identically seeded builds", f)
		}
	}

	c := mustNew(t, testConfig(4, 4321))
	if reflect.DeepEqual(a.Frame(0), c.Frame(0)) {
		t.Error("Expected different seeds to produce different frames")
	}
}

func TestFramePeriodicity(t *testing.T) {
	h := mustNew(t, testConfig(3, 99))

	for f := 0; f < 3; f++ {
		if !reflect.DeepEqual(h.Frame(f), h.Frame(f+3)) {
			t.Errorf("Frame %d != frame %d", f, f+3)
		}
		if !reflect.DeepEqual(h.Frame(f), h.Frame(f+300)) {
			t.Errorf("Frame %d != frame %d", f, f+300)
		}
	}
	if !reflect.DeepEqual(h.Frame(-1), h.Frame(2)) {
		t.Error("Expected negative frame numbers to wrap")
	}
}

func TestDrawableBounds(t *testing.T) {
	cfg := testConfig(20, 2024)
	h := mustNew(t, cfg)

	for f := 0; f < h.LoopLength(); f++ {
		frame := h.Frame(f)
		if len(frame) == 0 {
			t.Fatalf("Frame %d is empty", f)
		}
		for _, d := range frame {
			if d.Size < 1 || d.Size > 3 {
				t.Fatalf("Frame %d: size %d out of {1,2,3}", f, d.Size)
			}
			if d.X < -50 || d.X > cfg.Width+50 || d.Y < -50 || d.Y > cfg.Height+50 {
				t.Fatalf("Frame %d: drawable %+v outside canvas margin", f, d)
			}
		}
	}
}

func TestInnerDenseDrawnByDefault(t *testing.T) {
	h := mustNew(t, testConfig(1, 7))
	f := h.Field()
	counts := layerCounts(h.Frame(0))

	if counts[LayerInnerDense] != f.InnerDense.Len() {
		t.Errorf("Expected %d inner-dense drawables, got %d", f.InnerDense.Len(), counts[LayerInnerDense])
	}
	// halo count for frame 0: curve(0)=0 so exactly 3000 draws before dedup
	if halo := counts[LayerHalo]; halo <= 0 || halo > 3000 {
		t.Errorf("Expected 1..3000 halo drawables, got %d", halo)
	}

	cfg := testConfig(1, 7)
	cfg.DrawInnerDense = false
	sparse := mustNew(t, cfg)
	if got := layerCounts(sparse.Frame(0))[LayerInnerDense]; got != 0 {
		t.Errorf("Expected no inner-dense drawables when turned off, got %d", got)
	}
	if got, want := sparse.FrameLen(0), h.FrameLen(0)-f.InnerDense.Len(); got != want {
		t.Errorf("Expected %d drawables without inner-dense, got %d", want, got)
	}
}

func layerCounts(frame []Drawable) map[Layer]int {
	counts := map[Layer]int{}
	for _, d := range frame {
		counts[d.Layer]++
	}
	return counts
}

func TestLayerOrderAndSizes(t *testing.T) {
	h := mustNew(t, testConfig(4, 31))
	f := h.Field()

	sizes := map[Layer][]int{
		LayerHalo:            {1, 2, 3},
		LayerEdge:            {1, 2, 3},
		LayerCenterDiffusion: {1, 2},
		LayerInnerSparse:     {1, 2},
		LayerInnerDense:      {1, 2},
	}
	wantCounts := map[Layer]int{
		LayerEdge:            f.Edge.Len(),
		LayerCenterDiffusion: f.CenterDiffusion.Len(),
		LayerInnerSparse:     f.InnerSparse.Len(),
		LayerInnerDense:      f.InnerDense.Len(),
	}

	for n := 0; n < h.LoopLength(); n++ {
		frame := h.Frame(n)
		seen := map[Layer]map[int]bool{}
		for i, d := range frame {
			if i > 0 && d.Layer < frame[i-1].Layer {
				t.Fatalf("Frame %d: layer %d drawn after layer %d at index %d", n, d.Layer, frame[i-1].Layer, i)
			}
			if !slices.Contains(sizes[d.Layer], d.Size) {
				t.Fatalf("Frame %d: layer %d has size %d, want one of %v", n, d.Layer, d.Size, sizes[d.Layer])
			}
			if seen[d.Layer] == nil {
				seen[d.Layer] = map[int]bool{}
			}
			seen[d.Layer][d.Size] = true
		}

		counts := layerCounts(frame)
		for l, want := range wantCounts {
			if counts[l] != want {
				t.Errorf("Frame %d: expected %d drawables in layer %d, got %d", n, want, l, counts[l])
			}
		}
		// thousands of draws per layer hit every allowed size
		for l, allowed := range sizes {
			if len(seen[l]) != len(allowed) {
				t.Errorf("Frame %d: layer %d used sizes %v, want all of %v", n, l, seen[l], allowed)
			}
		}
	}
}

func haloOf(frame []Drawable) []Drawable {
	for i, d := range frame {
		if d.Layer != LayerHalo {
			return frame[:i]
		}
	}
	return frame
}

func TestHaloResampledEveryFrame(t *testing.T) {
	// The halo pulse has period 10, so frames 0 and 10 share its radius
	// and particle count.
	h := mustNew(t, testConfig(20, 17))

	a, b := haloOf(h.Frame(0)), haloOf(h.Frame(10))
	if len(a) == 0 || len(b) == 0 {
		t.Fatalf("Expected halo drawables in both frames, got %d and %d", len(a), len(b))
	}
	if reflect.DeepEqual(a, b) {
		t.Error("Expected the halo to be resampled, frames 0 and 10 share it")
	}

	same := 0
	for i := 0; i < min(len(a), len(b)); i++ {
		if a[i] == b[i] {
			same++
		}
	}
	if same > len(a)/10 {
		t.Errorf("Expected independent halos, %d of %d drawables coincide", same, len(a))
	}
}

func TestFrameReturnsCopy(t *testing.T) {
	h := mustNew(t, testConfig(2, 5))
	want := h.Frame(1)

	got := h.Frame(1)
	for i := range got {
		got[i].X += 1000
	}
	if !reflect.DeepEqual(h.Frame(1), want) {
		t.Error("Expected writes to a returned frame to leave the cache intact")
	}
	if h.FrameLen(1) != len(want) || h.FrameLen(3) != len(want) {
		t.Errorf("Expected FrameLen %d, got %d and %d", len(want), h.FrameLen(1), h.FrameLen(3))
	}
}

func TestBeats(t *testing.T) {
	h := mustNew(t, testConfig(20, 1))

	want := []int{5, 15}
	if got := h.Beats(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Expected beats %v, got %v", want, got)
	}
	if !h.IsBeat(25) || h.IsBeat(6) {
		t.Error("IsBeat disagrees with Beats")
	}
	if h.Ratio(2) <= 0 || h.Ratio(7) >= 0 {
		t.Errorf("Expected contraction at 2 and expansion at 7, got %v and %v", h.Ratio(2), h.Ratio(7))
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(0, 1)
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for zero loop length, got %v", err)
	}

	cfg = testConfig(5, 1)
	cfg.Height = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for zero height, got %v", err)
	}
}

// Loop of five on the stock canvas with a fixed seed.
func TestFiveFrameLoop(t *testing.T) {
	cfg := testConfig(5, 20241019)
	h := mustNew(t, cfg)

	first := h.Frame(0)
	if len(first) == 0 {
		t.Fatal("Expected frame 0 to be non-empty")
	}
	if !reflect.DeepEqual(h.Frame(5), first) {
		t.Error("Expected frame 5 to equal frame 0")
	}
	for f := 0; f < 5; f++ {
		for _, d := range h.Frame(f) {
			if d.Y < -100 || d.Y > 700 {
				t.Fatalf("Frame %d: y=%d outside [-100, 700]", f, d.Y)
			}
		}
	}
}
