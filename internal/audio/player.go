package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player plays a Heartbeat through the system speaker.
type Player struct {
	rate beep.SampleRate
	beat *Heartbeat
	ctrl *beep.Ctrl
}

// NewPlayer initializes the speaker and starts the (silent) heartbeat.
// volume is in powers of two, 0 leaves the level unchanged. A non-empty
// sample path replaces the synthesized thump.
func NewPlayer(rate beep.SampleRate, volume float64, sample string) (*Player, error) {
	beat := NewHeartbeat(rate)
	if sample != "" {
		buf, err := LoadSample(sample, rate)
		if err != nil {
			return nil, err
		}
		beat.SetSample(buf)
	}

	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}

	vol := &effects.Volume{Streamer: beat, Base: 2, Volume: volume}
	ctrl := &beep.Ctrl{Streamer: vol, Paused: false}
	speaker.Play(ctrl)

	return &Player{rate: rate, beat: beat, ctrl: ctrl}, nil
}

// Beat starts one heartbeat.
func (p *Player) Beat() { p.beat.Trigger() }

// ToggleMute flips muting and returns the new state.
func (p *Player) ToggleMute() bool {
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	muted := p.ctrl.Paused
	speaker.Unlock()
	return muted
}

func (p *Player) Muted() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// LoadSample swaps the beat for the decoded file at path.
func (p *Player) LoadSample(path string) error {
	buf, err := LoadSample(path, p.rate)
	if err != nil {
		return err
	}
	p.beat.SetSample(buf)
	return nil
}

func (p *Player) Close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}

// Pulse is the part of an animation loop the beat schedule is read from.
type Pulse interface {
	LoopLength() int
	IsBeat(frame int) bool
}

// EncodeLoop writes one animation loop worth of heartbeat audio as WAV,
// beating on the same frames the animation does when played at fps.
func EncodeLoop(w io.WriteSeeker, pulse Pulse, fps int, rate beep.SampleRate, sample *beep.Buffer) error {
	if fps <= 0 {
		return fmt.Errorf("audio: fps must be positive, got %d", fps)
	}

	beat := NewHeartbeat(rate)
	beat.SetSample(sample)

	perFrame := rate.N(time.Second / time.Duration(fps))
	buf := beep.NewBuffer(Format(rate))
	for f := 0; f < pulse.LoopLength(); f++ {
		if pulse.IsBeat(f) {
			beat.Trigger()
		}
		buf.Append(beep.Take(perFrame, beat))
	}

	if err := wav.Encode(w, buf.Streamer(0, buf.Len()), buf.Format()); err != nil {
		return fmt.Errorf("audio: encode wav: %w", err)
	}
	return nil
}
