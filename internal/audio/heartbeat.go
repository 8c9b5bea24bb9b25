// Package audio produces the heartbeat sound that follows the animation.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
)

// Heartbeat is an endless streamer that stays silent until Trigger starts a
// beat. Trigger may be called from the game loop while the speaker goroutine
// is streaming.
type Heartbeat struct {
	rate   beep.SampleRate
	sample *beep.Buffer
	voice  beep.Streamer
	mu     sync.Mutex
}

func NewHeartbeat(rate beep.SampleRate) *Heartbeat {
	return &Heartbeat{rate: rate}
}

// SetSample replaces the synthesized thump with a recorded one. nil restores
// the synthesized thump.
func (h *Heartbeat) SetSample(buf *beep.Buffer) {
	h.mu.Lock()
	h.sample = buf
	h.mu.Unlock()
}

// Trigger restarts the beat from its beginning.
func (h *Heartbeat) Trigger() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sample != nil {
		h.voice = h.sample.Streamer(0, h.sample.Len())
		return
	}
	h.voice = newThump(h.rate)
}

func (h *Heartbeat) Stream(samples [][2]float64) (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	if h.voice != nil {
		var ok bool
		n, ok = h.voice.Stream(samples)
		if !ok || n < len(samples) {
			h.voice = nil
		}
	}
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (h *Heartbeat) Err() error { return nil }

// thump is a synthesized "lub-dub": two pitch dropping sine kicks.
type thump struct {
	rate  beep.SampleRate
	pos   int
	total int
}

const (
	lubFreq  = 62.0
	dubFreq  = 48.0
	dubDelay = 0.18
	dubGain  = 0.7
)

func newThump(rate beep.SampleRate) *thump {
	return &thump{
		rate:  rate,
		total: rate.N(450 * time.Millisecond),
	}
}

func (g *thump) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.rate)
		sample := kick(t, 0, lubFreq) + dubGain*kick(t, dubDelay, dubFreq)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *thump) Err() error { return nil }

// kick is a decaying sine starting at onset whose pitch falls toward freq.
func kick(t, onset, freq float64) float64 {
	if t < onset {
		return 0
	}
	dt := t - onset
	env := math.Exp(-dt * 18)
	f := freq * (1 + env)
	return 0.6 * env * math.Sin(2*math.Pi*f*dt)
}
