// Package encounter holds the state of a single boss fight. Every attempt,
// including a retry, is built by New so nothing leaks between attempts.
package encounter

import (
	"fmt"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
)

// Result is the outcome of an encounter.
type Result int

const (
	Pending Result = iota
	Won
	Lost
)

func (r Result) String() string {
	switch r {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "pending"
}

// Tuning holds the player numbers loaded from prefabs.
type Tuning struct {
	Speed            float64
	Width            float64
	Height           float64
	Lives            int
	InvincibleFrames int
	FireInterval     int
	DashWindow       int
	DashDistance     float64
	DashCooldown     int
	DashInvFrames    int
	DashActiveFrames int
}

// DefaultTuning returns the built-in player numbers.
func DefaultTuning() Tuning {
	return Tuning{
		Speed:            4,
		Width:            16,
		Height:           20,
		Lives:            3,
		InvincibleFrames: 120,
		FireInterval:     6,
		DashWindow:       15,
		DashDistance:     120,
		DashCooldown:     60,
		DashInvFrames:    20,
		DashActiveFrames: 8,
	}
}

// Marker is a short-lived explosion drawn on top of the fight.
type Marker struct {
	Pos    cp.Vector
	Radius float64
	Timer  int
	Frames int
}

// Config describes one encounter start.
type Config struct {
	// Boss is nil for a level without a boss; such an encounter is won at once.
	Boss       *boss.Template
	Equipped   component.Abilities
	Checkpoint bool
	Seed       uint64
	NoDamage   bool
	Tuning     Tuning
	Picker     boss.Picker
}

// Encounter is the complete mutable state of one fight.
type Encounter struct {
	Frame   int
	Player  component.Player
	Player2 *component.Player
	Boss    *boss.Boss
	Bullets []component.Projectile
	Markers []Marker

	// Input is the raw snapshot for this frame; Controls is the same snapshot
	// after control inversion.
	Input    component.Input
	Controls component.Input

	InvertTimer int
	Shake       int
	Result      Result
	Events      EventQueue
	Rand        *rand.Rand
	Picker      boss.Picker

	Equipped component.Abilities
	NoDamage bool
	// Checkpoint is set once a resumable boss phase was reached.
	Checkpoint bool
	Tuning     Tuning

	out boss.Output
}

// New builds a fresh encounter. It is the only place an encounter is reset.
func New(cfg Config) (*Encounter, error) {
	tn := cfg.Tuning
	if tn.Lives <= 0 {
		tn = DefaultTuning()
	}

	e := &Encounter{
		Player:     newPlayer(tn, cfg.Equipped),
		Rand:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		Picker:     cfg.Picker,
		Equipped:   cfg.Equipped,
		NoDamage:   cfg.NoDamage,
		Checkpoint: cfg.Checkpoint,
		Tuning:     tn,
	}
	if cfg.Boss != nil {
		b, err := boss.New(*cfg.Boss, cfg.Checkpoint)
		if err != nil {
			return nil, fmt.Errorf("encounter: new boss %q: %w", cfg.Boss.Name, err)
		}
		e.Boss = b
	}
	return e, nil
}

func newPlayer(tn Tuning, eq component.Abilities) component.Player {
	lives := tn.Lives
	if eq.HPBoost {
		lives++
	}
	return component.Player{
		Pos:    cp.Vector{X: common.ScreenWidth / 2, Y: common.ScreenHeight - 80},
		W:      tn.Width,
		H:      tn.Height,
		Speed:  tn.Speed,
		Lives:  lives,
		Weapon: component.WeaponNormal,
		Dash:   component.NewDash(),
		Shield: eq.Shield,
	}
}

// Players returns the live ships, primary first.
func (e *Encounter) Players() []*component.Player {
	if e.Player2 == nil {
		return []*component.Player{&e.Player}
	}
	return []*component.Player{&e.Player, e.Player2}
}

// Weapons lists the weapons the player can cycle through.
func (e *Encounter) Weapons() []component.Weapon {
	ws := []component.Weapon{component.WeaponNormal}
	if e.Equipped.Homing {
		ws = append(ws, component.WeaponHoming)
	}
	if e.Equipped.Spread {
		ws = append(ws, component.WeaponSpread)
	}
	return ws
}

// Done reports whether the encounter has resolved.
func (e *Encounter) Done() bool {
	return e.Result != Pending
}

// Emit queues an audio cue for this frame.
func (e *Encounter) Emit(c component.Cue) {
	e.Events.Push(Event{Frame: e.Frame, Cue: c})
}

// Explode adds an explosion marker.
func (e *Encounter) Explode(pos cp.Vector, radius float64) {
	e.Markers = append(e.Markers, Marker{Pos: pos, Radius: radius, Frames: 24})
}

// BossOutput returns the reusable output buffer, emptied.
func (e *Encounter) BossOutput() *boss.Output {
	e.out.Reset()
	return &e.out
}

// Apply copies what a boss emitted into the encounter.
func (e *Encounter) Apply(out *boss.Output) {
	if out == nil {
		return
	}
	e.Bullets = append(e.Bullets, out.Projectiles...)
	for _, c := range out.Cues {
		e.Emit(c)
	}
	for _, fx := range out.Effects {
		switch fx.Kind {
		case boss.EffectExplosion:
			e.Markers = append(e.Markers, Marker{Pos: fx.Pos, Radius: fx.Radius, Frames: fx.Frames})
		case boss.EffectShake:
			e.Shake = max(e.Shake, fx.Frames)
		}
	}
	if out.InvertControls > 0 {
		e.InvertTimer = out.InvertControls
	}
	if out.SpawnPlayer2 {
		e.SpawnPlayer2()
	}
	if out.DespawnPlayer2 {
		e.Player2 = nil
	}
	if out.Checkpoint {
		e.Checkpoint = true
	}
}

// SpawnPlayer2 adds the mirrored helper ship next to the player.
func (e *Encounter) SpawnPlayer2() {
	if e.Player2 != nil {
		return
	}
	p := newPlayer(e.Tuning, component.Abilities{})
	p.Pos = cp.Vector{X: common.ScreenWidth - e.Player.Pos.X, Y: e.Player.Pos.Y}
	p.Lives = 0
	p.Mirror = true
	p.Weapon = e.Player.Weapon
	p.Invincible = e.Player.Invincible
	p.InvTimer = e.Player.InvTimer
	e.Player2 = &p
}

// BossInput builds the read-only snapshot the boss sees this frame.
func (e *Encounter) BossInput() *boss.Input {
	in := &boss.Input{
		Frame:  e.Frame,
		Player: e.Player.Pos,
		Rand:   e.Rand,
		Picker: e.Picker,
	}
	if e.Player2 != nil {
		in.Player2 = e.Player2.Pos
		in.HasPlayer2 = true
	}
	return in
}
