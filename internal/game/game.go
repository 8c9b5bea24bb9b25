// Package game plays a precomputed heart loop in an ebiten window.
package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/beating-heart/internal/audio"
	"github.com/iburimskiy/beating-heart/internal/config"
	"github.com/iburimskiy/beating-heart/internal/heart"
	"github.com/iburimskiy/beating-heart/internal/render"
)

const helpText = "Space: pause  M: mute  H: hud  S: save gif  O: open sound  Esc/Q: quit"

type Game struct {
	cfg     *config.Config
	heart   *heart.Heart
	painter render.Painter
	player  *audio.Player // nil when audio is off

	// one offscreen image per cached frame, painted on first use
	images []*ebiten.Image

	frame   int
	elapsed time.Duration

	// input edge detection
	prevKey map[ebiten.Key]bool

	// state
	paused  bool
	hud     bool
	lastErr error
}

// New wires a built heart and an optional player into a game.
func New(cfg *config.Config, h *heart.Heart, player *audio.Player) *Game {
	return &Game{
		cfg:   cfg,
		heart: h,
		painter: render.Painter{
			Canvas:  h.Canvas(),
			Color:   cfg.Color,
			Shading: cfg.Shading,
		},
		player:  player,
		images:  make([]*ebiten.Image, h.LoopLength()),
		prevKey: map[ebiten.Key]bool{},
	}
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if justPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if justPressed(ebiten.KeyM) && g.player != nil {
		g.player.ToggleMute()
	}
	if justPressed(ebiten.KeyS) {
		if err := g.saveLoopDialog(); err != nil {
			g.lastErr = err
		}
	}
	if justPressed(ebiten.KeyO) {
		if err := g.openSoundDialog(); err != nil {
			g.lastErr = err
		}
	}

	if !g.paused {
		g.advance()
	}
	return nil
}

// advance moves to the next frame and fires the heartbeat on beat frames.
func (g *Game) advance() {
	g.frame++
	g.elapsed += time.Second / time.Duration(g.cfg.FPS)
	if g.player != nil && g.heart.IsBeat(g.frame) {
		g.player.Beat()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	screen.DrawImage(g.frameImage(g.frame), nil)

	if g.hud {
		ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
		ebitenutil.DebugPrintAt(screen, helpText, 12, g.cfg.Height-24)
	} else if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), 12, 12)
	}
}

// frameImage returns the painted image of frame n, painting it on first use.
func (g *Game) frameImage(n int) *ebiten.Image {
	i := n % len(g.images)
	if img := g.images[i]; img != nil {
		return img
	}

	img := ebiten.NewImage(g.cfg.Width, g.cfg.Height)
	for _, d := range g.heart.Frame(i) {
		s := float32(d.Size)
		vector.DrawFilledRect(img, float32(d.X), float32(d.Y), s, s, g.painter.ColorOf(d), false)
	}
	g.images[i] = img
	return img
}

func (g *Game) status() string {
	s := fmt.Sprintf("frame %d/%d  particles %d  %s",
		g.frame%g.heart.LoopLength()+1, g.heart.LoopLength(),
		g.heart.FrameLen(g.frame), formatDuration(g.elapsed))
	if g.paused {
		s += "  [paused]"
	}
	if g.player != nil && g.player.Muted() {
		s += "  [muted]"
	}
	if g.lastErr != nil {
		s += " | Error: " + g.lastErr.Error()
	}
	return s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Close releases the audio device.
func (g *Game) Close() {
	if g.player != nil {
		g.player.Close()
	}
}
