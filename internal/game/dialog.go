package game

import (
	"errors"
	"log"
	"os"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/beating-heart/internal/export"
)

var errAudioOff = errors.New("audio is disabled")

// saveLoopDialog asks for a destination and writes the whole loop as a GIF.
func (g *Game) saveLoopDialog() error {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Export Loop"),
		zenity.Filename("heart.gif"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "GIF",
			Patterns: []string{"*.gif"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := export.GIF(f, g.heart, g.painter, g.cfg.FPS); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("exported %d frames to %s", g.heart.LoopLength(), filename)
	return nil
}

// openSoundDialog replaces the heartbeat with a sound file picked by the user.
func (g *Game) openSoundDialog() error {
	if g.player == nil {
		return errAudioOff
	}

	filename, err := zenity.SelectFile(
		zenity.Title("Open Heartbeat Sound"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	if err := g.player.LoadSample(filename); err != nil {
		return err
	}
	log.Printf("heartbeat sound loaded from %s", filename)
	return nil
}
