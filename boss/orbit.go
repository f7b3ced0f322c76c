package boss

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/gfx"
)

type orbitPhase int

const (
	orbitIdle orbitPhase = iota
	orbitTelegraph
	orbitFiring
	orbitCooldown
)

const (
	orbitSegments       = 4
	orbitRadius         = 120.0
	orbitSegmentRadius  = 22.0
	orbitAngVel         = 0.02
	orbitAngVelPhase2   = -0.035
	orbitDriftAmp       = 150.0
	orbitDriftFreq      = 0.01
	orbitIdleFrames     = 50
	orbitTelegraphFrame = 40
	orbitFiringFrames   = 60
	orbitFireEvery      = 8
	orbitAimEvery       = 24
	orbitCooldownFrames = 90
	orbitGraceFrames    = 60
	orbitShotSpeed      = 3.2
)

var colorSegment = color.RGBA{R: 0x80, G: 0x90, B: 0xa0, A: 0xff}

// OrbitState is a damageable core shielded by reflecting segments that
// circle it.
type OrbitState struct {
	Phase  orbitPhase
	Timer  int
	Angle  float64
	AngVel float64
	Drift  int
	Origin cp.Vector
}

func newOrbitState(b *Boss) *OrbitState {
	return &OrbitState{AngVel: orbitAngVel, Origin: b.Pos}
}

// Segments returns the centers of the orbiting bodies.
func (s *OrbitState) Segments(b *Boss) [orbitSegments]cp.Vector {
	var out [orbitSegments]cp.Vector
	for i := range out {
		a := s.Angle + float64(i)*2*math.Pi/orbitSegments
		out[i] = b.Pos.Add(cp.ForAngle(a).Mult(orbitRadius))
	}
	return out
}

func (s *OrbitState) Move(b *Boss, _ *Input) {
	s.Drift++
	s.Angle = common.WrapAngle(s.Angle + s.AngVel)
	b.Pos.X = s.Origin.X + orbitDriftAmp*math.Sin(float64(s.Drift)*orbitDriftFreq)
	b.Pos.Y = s.Origin.Y
}

func (s *OrbitState) Tick(b *Boss, in *Input, out *Output) {
	s.Move(b, in)
	s.Timer++

	switch s.Phase {
	case orbitIdle:
		if s.Timer >= orbitIdleFrames {
			s.enter(orbitTelegraph)
		}
	case orbitTelegraph:
		if s.Timer >= orbitTelegraphFrame {
			s.enter(orbitFiring)
			out.Cue(component.CueBurst)
		}
	case orbitFiring:
		if s.Timer%orbitFireEvery == 0 {
			for _, seg := range s.Segments(b) {
				dir := seg.Sub(b.Pos).Normalize()
				out.Fire(enemyShot(seg, dir.Mult(orbitShotSpeed), defaultBulletSize, component.ShapeCircle, colorEnemyShot))
			}
		}
		if s.Timer%orbitAimEvery == 0 {
			out.Fire(fan(b.Pos, in.nearestPlayer(b.Pos), 1, 4, 0, colorEnemyShot)...)
		}
		if s.Timer >= orbitFiringFrames {
			s.enter(orbitCooldown)
		}
	case orbitCooldown:
		if s.Timer >= orbitCooldownFrames {
			s.enter(orbitIdle)
		}
	default:
		s.enter(orbitIdle)
	}
}

func (s *OrbitState) enter(p orbitPhase) {
	s.Phase = p
	s.Timer = 0
}

func (s *OrbitState) HitTest(b *Boss, p *component.Projectile) Hit {
	for i, seg := range s.Segments(b) {
		if circleHit(seg, p.Pos, orbitSegmentRadius) {
			return Hit{Kind: HitReflect, Part: i + 1, Center: seg}
		}
	}
	if circleHit(b.Pos, p.Pos, b.Radius) {
		return Hit{Kind: HitDamage, Center: b.Pos}
	}
	return Hit{}
}

func (s *OrbitState) Damage(b *Boss, hit Hit, amount float64, out *Output) {
	if hit.Part != 0 || !b.damage(amount, out) || !b.Alive {
		return
	}
	if b.Phase == 1 && b.Health.Fraction() <= 0.5 {
		s.AngVel = orbitAngVelPhase2
		s.enter(orbitIdle)
		b.enterPhase(2, orbitGraceFrames, out)
	}
}

func (s *OrbitState) Hazards(b *Boss) []Hazard {
	hs := []Hazard{CircleHazard(b.Pos, b.Radius*0.9)}
	for _, seg := range s.Segments(b) {
		hs = append(hs, CircleHazard(seg, orbitSegmentRadius*0.9))
	}
	return hs
}

// ClearHazards aborts a volley in progress.
func (s *OrbitState) ClearHazards(*Boss) {
	if s.Phase == orbitFiring {
		s.enter(orbitCooldown)
	}
}

func (s *OrbitState) Target(b *Boss) (cp.Vector, bool) {
	return b.Pos, true
}

func (s *OrbitState) Draw(b *Boss, c gfx.Canvas) {
	segColor := colorSegment
	if s.Phase == orbitTelegraph && (s.Timer/6)%2 == 0 {
		segColor = colorWarning
	}
	for _, seg := range s.Segments(b) {
		c.StrokeLine(b.Pos, seg, 2, colorSegment)
		c.FillCircle(seg, orbitSegmentRadius, segColor)
	}
	c.FillCircle(b.Pos, b.Radius, b.tint())
}
