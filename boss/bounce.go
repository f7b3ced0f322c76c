package boss

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/gfx"
)

type edge int

const (
	edgeNone edge = iota
	edgeLeft
	edgeRight
	edgeTop
	edgeBottom
)

const (
	bounceBaseSpeed    = 3.2
	bounceJitter       = 0.25
	bounceMinVertical  = 0.35
	bounceHPStep       = 16.0
	bounceShrink       = 0.85
	bounceSpeedUp      = 1.15
	bounceMinRadius    = 18.0
	bounceRingCount    = 10
	bounceRingSpeed    = 2.6
	bounceSquashFrames = 10
	bounceShotInterval = 120
)

// BounceState is a free body bouncing off the screen edges.
type BounceState struct {
	Vel   cp.Vector
	Speed float64
	// Spawned is set once the entry bounce off the bottom edge happened.
	Spawned    bool
	Steps      int
	Squash     int
	SquashEdge edge
	Bounces    int
	ShotTimer  int
}

func newBounceState(b *Boss) *BounceState {
	return &BounceState{
		Vel:   cp.Vector{X: 0, Y: bounceBaseSpeed},
		Speed: bounceBaseSpeed,
	}
}

func (s *BounceState) Move(b *Boss, in *Input) {
	s.step(b, in, nil)
}

func (s *BounceState) Tick(b *Boss, in *Input, out *Output) {
	s.step(b, in, out)

	s.ShotTimer++
	if s.ShotTimer >= bounceShotInterval {
		s.ShotTimer = 0
		out.Fire(sineShots(b.Pos, in.nearestPlayer(b.Pos), 3, 2.8, 18, 0.12)...)
	}
}

func (s *BounceState) step(b *Boss, in *Input, out *Output) {
	if s.stalled() {
		s.reset()
	}
	if s.Squash > 0 {
		s.Squash--
	}
	b.Pos = b.Pos.Add(s.Vel)
	s.bounce(b, in, out)
}

// stalled reports a velocity or squash state the body cannot recover from.
func (s *BounceState) stalled() bool {
	return !(s.Speed > 0) || math.IsInf(s.Speed, 0) ||
		math.IsNaN(s.Vel.X) || math.IsNaN(s.Vel.Y) || s.Vel.LengthSq() == 0 ||
		s.SquashEdge < edgeNone || s.SquashEdge > edgeBottom
}

// reset is the fail-safe for a stalled body: it relaunches diagonally.
func (s *BounceState) reset() {
	if !(s.Speed > 0) || math.IsInf(s.Speed, 0) {
		s.Speed = bounceBaseSpeed
	}
	s.Vel = cp.ForAngle(math.Pi / 4).Mult(s.Speed)
	s.Squash = 0
	s.SquashEdge = edgeNone
	s.ShotTimer = 0
}

// bounce reflects the body off any edge it crossed. A corner hit records both
// edges. out may be nil while the boss is in a grace period; the bounce still
// happens, silently.
func (s *BounceState) bounce(b *Boss, in *Input, out *Output) {
	r := b.Radius
	hx, hy := edgeNone, edgeNone
	if b.Pos.X-r < 0 {
		b.Pos.X = r
		hx = edgeLeft
	} else if b.Pos.X+r > common.ScreenWidth {
		b.Pos.X = common.ScreenWidth - r
		hx = edgeRight
	}
	if b.Pos.Y-r < 0 && s.Spawned {
		b.Pos.Y = r
		hy = edgeTop
	} else if b.Pos.Y+r > common.ScreenHeight {
		b.Pos.Y = common.ScreenHeight - r
		hy = edgeBottom
	}
	if hx == edgeNone && hy == edgeNone {
		return
	}

	s.Bounces++
	s.Squash = bounceSquashFrames
	s.SquashEdge = hy
	if hy == edgeNone {
		s.SquashEdge = hx
	}
	s.jitter(in, hx, hy)

	spawnBounce := hy == edgeBottom && !s.Spawned
	s.Spawned = true
	if spawnBounce || out == nil {
		return
	}
	out.Fire(ring(b.Pos, bounceRingCount, bounceRingSpeed, float64(s.Bounces)*0.3, component.ShapeCircle, colorEnemyShot)...)
	out.Cue(component.CueBurst)
}

// jitter rotates the velocity by a small random angle, keeps it pointing away
// from every wall it hit, and clamps the vertical component from below.
func (s *BounceState) jitter(in *Input, hx, hy edge) {
	a := (in.float()*2 - 1) * bounceJitter
	v := s.Vel.Rotate(cp.ForAngle(a))
	v.X = awayFrom(v.X, hx)
	v.Y = awayFrom(v.Y, hy)

	v = v.Normalize().Mult(s.Speed)
	minVY := bounceMinVertical * s.Speed
	if math.Abs(v.Y) < minVY {
		sy := common.Sign(v.Y)
		if sy == 0 {
			sy = awayFrom(1, hy)
		}
		sx := common.Sign(v.X)
		if sx == 0 {
			sx = awayFrom(1, hx)
		}
		v.Y = sy * minVY
		v.X = sx * math.Sqrt(s.Speed*s.Speed-minVY*minVY)
	}
	s.Vel = v
}

// awayFrom gives v the sign that points away from wall e.
func awayFrom(v float64, e edge) float64 {
	switch e {
	case edgeLeft, edgeTop:
		return math.Abs(v)
	case edgeRight, edgeBottom:
		return -math.Abs(v)
	}
	return v
}

func (s *BounceState) HitTest(b *Boss, p *component.Projectile) Hit {
	if circleHit(b.Pos, p.Pos, b.Radius) {
		return Hit{Kind: HitDamage, Center: b.Pos}
	}
	return Hit{}
}

func (s *BounceState) Damage(b *Boss, _ Hit, amount float64, out *Output) {
	if !b.damage(amount, out) || !b.Alive {
		return
	}
	steps := int((b.Health.Max - b.Health.Current) / bounceHPStep)
	for s.Steps < steps {
		s.Steps++
		b.Radius = math.Max(b.Radius*bounceShrink, bounceMinRadius)
		s.Speed *= bounceSpeedUp
		s.Vel = s.Vel.Normalize().Mult(s.Speed)
		out.Cue(component.CueShapeTransform)
	}
}

func (s *BounceState) Hazards(b *Boss) []Hazard {
	return []Hazard{CircleHazard(b.Pos, b.Radius*0.9)}
}

// ClearHazards is a no-op: the body is the only hazard.
func (s *BounceState) ClearHazards(*Boss) {}

func (s *BounceState) Target(b *Boss) (cp.Vector, bool) {
	return b.Pos, true
}

func (s *BounceState) Draw(b *Boss, c gfx.Canvas) {
	rx, ry := b.Radius, b.Radius
	if s.Squash > 0 {
		k := 0.3 * float64(s.Squash) / bounceSquashFrames
		switch s.SquashEdge {
		case edgeLeft, edgeRight:
			rx, ry = rx*(1-k), ry*(1+k)
		default:
			rx, ry = rx*(1+k), ry*(1-k)
		}
	}
	c.FillEllipse(b.Pos, rx, ry, b.tint())
}
