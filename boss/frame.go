package boss

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
)

// Input is the read-only snapshot a state machine sees for one frame.
type Input struct {
	Frame      int
	Player     cp.Vector
	Player2    cp.Vector
	HasPlayer2 bool
	Rand       *rand.Rand
	Picker     Picker
}

func (in *Input) float() float64 {
	if in == nil || in.Rand == nil {
		return 0.5
	}
	return in.Rand.Float64()
}

// between returns a uniform value in [lo, hi).
func (in *Input) between(lo, hi float64) float64 {
	return lo + in.float()*(hi-lo)
}

// nearestPlayer returns whichever ship is closer to p.
func (in *Input) nearestPlayer(p cp.Vector) cp.Vector {
	if in.HasPlayer2 && p.DistanceSq(in.Player2) < p.DistanceSq(in.Player) {
		return in.Player2
	}
	return in.Player
}

// EffectKind tags purely visual events.
type EffectKind int

const (
	EffectExplosion EffectKind = iota
	EffectShake
)

// Effect is a visual marker emitted by a boss.
type Effect struct {
	Kind   EffectKind
	Pos    cp.Vector
	Radius float64
	Frames int
}

// Output collects everything a state machine emits during one frame. The
// caller applies it after the tick.
type Output struct {
	Projectiles []component.Projectile
	Cues        []component.Cue
	Effects     []Effect

	// InvertControls requests inverted player controls for this many frames.
	InvertControls int
	SpawnPlayer2   bool
	DespawnPlayer2 bool
	// Checkpoint is raised when a resumable phase is reached.
	Checkpoint   bool
	PhaseChanged bool
}

// Reset empties the output for reuse.
func (o *Output) Reset() {
	if o == nil {
		return
	}
	o.Projectiles = o.Projectiles[:0]
	o.Cues = o.Cues[:0]
	o.Effects = o.Effects[:0]
	o.InvertControls = 0
	o.SpawnPlayer2 = false
	o.DespawnPlayer2 = false
	o.Checkpoint = false
	o.PhaseChanged = false
}

func (o *Output) Fire(ps ...component.Projectile) {
	if o == nil {
		return
	}
	o.Projectiles = append(o.Projectiles, ps...)
}

func (o *Output) Cue(c component.Cue) {
	if o == nil {
		return
	}
	o.Cues = append(o.Cues, c)
}

func (o *Output) Explode(pos cp.Vector, r float64) {
	if o == nil {
		return
	}
	o.Effects = append(o.Effects, Effect{Kind: EffectExplosion, Pos: pos, Radius: r, Frames: 24})
}

func (o *Output) Shake(frames int) {
	if o == nil {
		return
	}
	o.Effects = append(o.Effects, Effect{Kind: EffectShake, Frames: frames})
}

// HitKind is the outcome of testing a projectile against boss geometry.
type HitKind int

const (
	HitNone HitKind = iota
	HitDamage
	HitReflect
	HitAbsorb
)

// Hit describes where a projectile struck. Center is the point a reflected
// projectile is pushed away from.
type Hit struct {
	Kind   HitKind
	Part   int
	Center cp.Vector
}

// HazardKind selects the geometry of a hazard.
type HazardKind int

const (
	HazardCircle HazardKind = iota
	HazardEllipse
	HazardBox
	HazardBeam
)

// Hazard is a boss-owned zone that hurts the player on overlap.
type Hazard struct {
	Kind   HazardKind
	Center cp.Vector
	R      float64
	RX     float64
	RY     float64
	Box    cp.BB
	A      cp.Vector
	B      cp.Vector
	Width  float64
}

func CircleHazard(c cp.Vector, r float64) Hazard {
	return Hazard{Kind: HazardCircle, Center: c, R: r}
}

func EllipseHazard(c cp.Vector, rx, ry float64) Hazard {
	return Hazard{Kind: HazardEllipse, Center: c, RX: rx, RY: ry}
}

func BoxHazard(bb cp.BB) Hazard {
	return Hazard{Kind: HazardBox, Box: bb}
}

func BeamHazard(a, b cp.Vector, width float64) Hazard {
	return Hazard{Kind: HazardBeam, A: a, B: b, Width: width}
}

// Overlaps tests the hazard against a player box.
func (h Hazard) Overlaps(bb cp.BB) bool {
	switch h.Kind {
	case HazardCircle:
		return common.CircleOverlapsBox(h.Center, h.R, bb)
	case HazardEllipse:
		return common.EllipseOverlapsBox(h.Center, h.RX, h.RY, bb)
	case HazardBox:
		return common.Overlaps(h.Box, bb)
	case HazardBeam:
		return common.BeamOverlapsBox(h.A, h.B, h.Width, bb)
	}
	return false
}
