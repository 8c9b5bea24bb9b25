package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/beating-heart/internal/audio"
	"github.com/iburimskiy/beating-heart/internal/config"
	"github.com/iburimskiy/beating-heart/internal/export"
	"github.com/iburimskiy/beating-heart/internal/game"
	"github.com/iburimskiy/beating-heart/internal/heart"
	"github.com/iburimskiy/beating-heart/internal/render"
)

type options struct {
	gifPath string
	pngPath string
	wavPath string
	frame   int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	opts, err := parseFlags(cfg, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	start := time.Now()
	h, err := heart.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("built %d frames (seed %d) in %v", h.LoopLength(), cfg.Seed, time.Since(start).Round(time.Millisecond))

	if opts.headless() {
		if err := runExports(cfg, h, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	var player *audio.Player
	if cfg.Audio {
		player, err = audio.NewPlayer(beep.SampleRate(config.SampleRate), cfg.Volume, cfg.Sample)
		if err != nil {
			log.Printf("audio disabled: %v", err)
		}
	}

	g := game.New(cfg, h, player)
	defer g.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// parseFlags applies command line overrides on top of cfg.
func parseFlags(cfg *config.Config, args []string) (options, error) {
	var (
		opts  options
		color string
	)
	fs := flag.NewFlagSet("beating-heart", flag.ContinueOnError)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "canvas width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "canvas height in pixels")
	fs.IntVar(&cfg.LoopLength, "frames", cfg.LoopLength, "number of precomputed frames in the loop")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 picks one from the clock")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "playback frames per second")
	fs.Float64Var(&cfg.PulsePeriod, "period", cfg.PulsePeriod, "deformation period constant, larger beats slower")
	fs.StringVar(&color, "color", "", "foreground color as #rrggbb")
	fs.BoolVar(&cfg.Shading, "shading", cfg.Shading, "dim particles away from the center")
	fs.BoolVar(&cfg.DrawInnerDense, "dense", cfg.DrawInnerDense, "also draw the inner-dense particle layer")
	fs.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play a heartbeat sound")
	fs.Float64Var(&cfg.Volume, "volume", cfg.Volume, "heartbeat volume in powers of two")
	fs.StringVar(&cfg.Sample, "sample", cfg.Sample, "wav, mp3 or flac file to use as the heartbeat")
	fs.StringVar(&opts.gifPath, "gif", "", "write the loop as an animated GIF and exit")
	fs.StringVar(&opts.pngPath, "png", "", "write one frame as PNG and exit")
	fs.StringVar(&opts.wavPath, "wav", "", "write one loop of heartbeat audio as WAV and exit")
	fs.IntVar(&opts.frame, "frame", 0, "frame written by -png")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if color != "" {
		c, err := config.ParseColor(color)
		if err != nil {
			return opts, err
		}
		cfg.Color = c
	}
	return opts, nil
}

func (o options) headless() bool {
	return o.gifPath != "" || o.pngPath != "" || o.wavPath != ""
}

func runExports(cfg *config.Config, h *heart.Heart, o options) error {
	painter := render.Painter{Canvas: h.Canvas(), Color: cfg.Color, Shading: cfg.Shading}

	if o.gifPath != "" {
		if err := writeFile(o.gifPath, func(f *os.File) error {
			return export.GIF(f, h, painter, cfg.FPS)
		}); err != nil {
			return err
		}
	}
	if o.pngPath != "" {
		if err := writeFile(o.pngPath, func(f *os.File) error {
			return export.PNG(f, h, painter, o.frame)
		}); err != nil {
			return err
		}
	}
	if o.wavPath != "" {
		rate := beep.SampleRate(config.SampleRate)
		var sample *beep.Buffer
		if cfg.Sample != "" {
			buf, err := audio.LoadSample(cfg.Sample, rate)
			if err != nil {
				return err
			}
			sample = buf
		}
		if err := writeFile(o.wavPath, func(f *os.File) error {
			return audio.EncodeLoop(f, h, cfg.FPS, rate, sample)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	return nil
}
