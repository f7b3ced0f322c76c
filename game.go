package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/audio"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/prefabs"
	"github.com/milk9111/bossrush/render"
	"github.com/milk9111/bossrush/save"
	"github.com/milk9111/bossrush/script"
	"github.com/milk9111/bossrush/session"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = common.ScreenWidth
	screenHeight = common.ScreenHeight
)

// Options are the command line settings.
type Options struct {
	Level        string
	Debug        bool
	AllAbilities bool
	SlotDir      string
	Mute         bool
}

type Game struct {
	session *session.Session
	input   inputReader
	canvas  *render.Canvas
	pauseUI *ebitenui.UI
	sound   *audio.Player
	watcher *prefabs.Watcher
	debug   bool
}

func NewGame(opts Options) (*Game, error) {
	roster, err := prefabs.LoadRosterSpec()
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	levels := session.LevelsFromRoster(roster)

	tuning := encounter.DefaultTuning()
	if spec, err := prefabs.LoadPlayerSpec(); err != nil {
		log.Printf("failed to load player tuning, using defaults: %v", err)
	} else {
		tuning = spec.Tuning()
	}

	cfg := session.Config{
		Levels:      levels,
		Tuning:      tuning,
		Store:       save.NewStore(opts.SlotDir),
		Seed:        uint64(time.Now().UnixNano()),
		Debug:       opts.Debug,
		AllUnlocked: opts.AllAbilities,
		StartLevel:  opts.Level,
	}

	if picker, err := script.NewPicker(script.DefaultWeights); err != nil {
		log.Printf("pattern weights unavailable, using uniform picks: %v", err)
	} else {
		cfg.Picker = picker
	}

	g := &Game{debug: opts.Debug}

	sound := audio.NewPlayer()
	sound.SetMuted(opts.Mute)
	g.sound = sound
	cfg.Sound = sound

	if opts.Debug {
		w, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			log.Printf("prefab hot reload disabled: %v", err)
		} else {
			g.watcher = w
			cfg.Watcher = w
		}
	}

	g.session = session.New(cfg)
	g.canvas = render.NewCanvas()
	g.pauseUI = NewPauseUI(g.session)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.session.Update(g.input.read())
	if g.session.Mode == session.ModePaused {
		g.pauseUI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	dx, dy := g.session.ShakeOffset()
	g.canvas.Begin(screen, cp.Vector{X: dx, Y: dy})
	g.session.Draw(g.canvas)

	if g.session.Mode == session.ModePaused {
		g.pauseUI.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  mode: %s", ebiten.ActualFPS(), g.session.Mode), 4, screenHeight-16)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return screenWidth, screenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
