package boss

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/gfx"
)

// ExplosionFrames is how long a defeated boss keeps exploding before the
// encounter resolves.
const ExplosionFrames = 90

const hitFlashFrames = 4

var ErrUnknownArchetype = errors.New("boss: unknown archetype")

// Archetype identifies which state machine drives a boss.
type Archetype string

const (
	ArchetypeStomp     Archetype = "stomp"
	ArchetypeOrbit     Archetype = "orbit"
	ArchetypeBounce    Archetype = "bounce"
	ArchetypeSplitCore Archetype = "split_core"
	ArchetypeCrescent  Archetype = "crescent"
	ArchetypeGrand     Archetype = "grand"
)

// Template is the authored description a boss is built from.
type Template struct {
	Name      string
	Archetype Archetype
	HP        float64
	Radius    float64
	Spawn     cp.Vector
	Color     color.RGBA
}

// State is the per-archetype variant holding only what its FSM needs.
type State interface {
	// Tick advances the FSM by exactly one frame.
	Tick(b *Boss, in *Input, out *Output)
	// HitTest classifies a player projectile against the boss geometry.
	HitTest(b *Boss, p *component.Projectile) Hit
	// Damage applies a damaging hit and runs any HP-triggered transition.
	Damage(b *Boss, hit Hit, amount float64, out *Output)
	// Hazards lists the boss-owned zones that hurt the player this frame.
	Hazards(b *Boss) []Hazard
	// ClearHazards drops transient boss-owned hazards after the player is hit.
	ClearHazards(b *Boss)
	// Target is the point homing bullets steer toward.
	Target(b *Boss) (cp.Vector, bool)
	Draw(b *Boss, c gfx.Canvas)
}

// Mover is implemented by states that keep moving while attacks are
// suspended by a grace period.
type Mover interface {
	Move(b *Boss, in *Input)
}

// Canceller lets a state grow or shrink the box used for spread-vs-enemy
// cancellation.
type Canceller interface {
	CancelMargin(b *Boss) float64
}

// Overlay is drawn after every other layer, e.g. blackout fades.
type Overlay interface {
	DrawOverlay(b *Boss, c gfx.Canvas)
}

// Boss is one encounter's boss. It is always built by New; nothing survives
// between two encounter starts.
type Boss struct {
	Archetype Archetype
	Name      string
	Pos       cp.Vector
	Radius    float64
	Health    component.Health
	Color     color.RGBA
	Phase     int

	Alive        bool
	ExplodeTimer int
	// Grace suspends attack progression after a phase change.
	Grace int
	Flash int

	State State
}

// New builds a fresh boss from t. checkpoint starts bosses that support it at
// their later phase.
func New(t Template, checkpoint bool) (*Boss, error) {
	hp := t.HP
	if hp <= 0 {
		hp = 1
	}
	radius := t.Radius
	if radius <= 0 {
		radius = 40
	}
	b := &Boss{
		Archetype: t.Archetype,
		Name:      t.Name,
		Pos:       t.Spawn,
		Radius:    radius,
		Health:    component.NewHealth(hp),
		Color:     t.Color,
		Phase:     1,
		Alive:     true,
	}
	switch t.Archetype {
	case ArchetypeStomp:
		b.State = newStompState(b)
	case ArchetypeOrbit:
		b.State = newOrbitState(b)
	case ArchetypeBounce:
		b.State = newBounceState(b)
	case ArchetypeSplitCore:
		b.State = newSplitCoreState(b)
	case ArchetypeCrescent:
		b.State = newCrescentState(b)
	case ArchetypeGrand:
		b.State = newGrandState(b, checkpoint)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, t.Archetype)
	}
	return b, nil
}

// HP returns the remaining hit points across all parts.
func (b *Boss) HP() float64 {
	if b == nil {
		return 0
	}
	return b.Health.Current
}

// Defeated reports whether the boss is dead and its explosion has finished.
func (b *Boss) Defeated() bool {
	return b != nil && !b.Alive && b.ExplodeTimer >= ExplosionFrames
}

// Update advances the boss by one frame.
func (b *Boss) Update(in *Input, out *Output) {
	if b == nil || b.State == nil {
		return
	}
	if b.Flash > 0 {
		b.Flash--
	}
	if !b.Alive {
		b.ExplodeTimer++
		if b.ExplodeTimer < ExplosionFrames && b.ExplodeTimer%10 == 0 {
			a := float64(b.ExplodeTimer) * 2.4
			out.Explode(b.Pos.Add(cp.ForAngle(a).Mult(b.Radius*0.6)), b.Radius*0.8)
			out.Cue(component.CueExplosion)
		}
		return
	}
	if b.Grace > 0 {
		b.Grace--
		if m, ok := b.State.(Mover); ok {
			m.Move(b, in)
		}
		return
	}
	b.State.Tick(b, in, out)
}

// HitTest classifies p against the live boss.
func (b *Boss) HitTest(p *component.Projectile) Hit {
	if b == nil || b.State == nil || !b.Alive || p == nil {
		return Hit{}
	}
	return b.State.HitTest(b, p)
}

// Damage routes a damaging hit to the archetype.
func (b *Boss) Damage(hit Hit, amount float64, out *Output) {
	if b == nil || b.State == nil || !b.Alive || amount <= 0 {
		return
	}
	b.State.Damage(b, hit, amount, out)
}

// Hazards returns the zones that hurt the player this frame.
func (b *Boss) Hazards() []Hazard {
	if b == nil || b.State == nil || !b.Alive {
		return nil
	}
	return b.State.Hazards(b)
}

// ClearHazards runs the player-hit reset hook.
func (b *Boss) ClearHazards() {
	if b == nil || b.State == nil {
		return
	}
	b.State.ClearHazards(b)
}

// Target returns the homing target while the boss is alive.
func (b *Boss) Target() (cp.Vector, bool) {
	if b == nil || b.State == nil || !b.Alive {
		return cp.Vector{}, false
	}
	return b.State.Target(b)
}

// CancelMargin returns the spread cancellation margin for the current phase.
func (b *Boss) CancelMargin() float64 {
	if b == nil {
		return 0
	}
	if c, ok := b.State.(Canceller); ok {
		return c.CancelMargin(b)
	}
	return 0
}

// Draw renders the boss body.
func (b *Boss) Draw(c gfx.Canvas) {
	if b == nil || b.State == nil || c == nil {
		return
	}
	if !b.Alive {
		t := float64(b.ExplodeTimer) / ExplosionFrames
		if t < 1 {
			c.StrokeCircle(b.Pos, b.Radius*(1+2*t), 4*(1-t)+1, color.RGBA{R: 0xff, G: 0xc0, B: 0x40, A: 0xff})
		}
		return
	}
	b.State.Draw(b, c)
}

// DrawOverlay renders full-screen effects owned by the boss.
func (b *Boss) DrawOverlay(c gfx.Canvas) {
	if b == nil || c == nil {
		return
	}
	if o, ok := b.State.(Overlay); ok {
		o.DrawOverlay(b, c)
	}
}

// damage lowers the shared pool. Returns true if HP changed.
func (b *Boss) damage(amount float64, out *Output) bool {
	if !b.Health.ApplyDamage(amount) {
		return false
	}
	b.Flash = hitFlashFrames
	out.Cue(component.CueEnemyHit)
	if !b.Health.IsAlive() {
		b.die(out)
	}
	return true
}

func (b *Boss) die(out *Output) {
	b.Health.Current = 0
	b.Alive = false
	b.ExplodeTimer = 0
	b.Grace = 0
	out.Cue(component.CueBossClear)
	out.Explode(b.Pos, b.Radius*2)
	b.State.ClearHazards(b)
}

// enterPhase moves the boss to phase n and starts a grace period.
func (b *Boss) enterPhase(n, grace int, out *Output) {
	b.Phase = n
	b.Grace = grace
	out.PhaseChanged = true
	out.Cue(component.CuePhase)
}

// tint returns the body color, flashing white on recent hits.
func (b *Boss) tint() color.RGBA {
	if b.Flash > 0 {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return b.Color
}

func circleHit(center, p cp.Vector, r float64) bool {
	return center.DistanceSq(p) < r*r
}

func angleTo(from, to cp.Vector) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Y, d.X)
}
