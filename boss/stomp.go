package boss

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/gfx"
)

type stompPhase int

const (
	stompIdle stompPhase = iota
	stompPrelift
	stompDescending
	stompPause
	stompAscending
	stompCooldown
)

const (
	stompHomeY          = 110.0
	stompTrackSpeed     = 2.2
	stompCooldownTrack  = 0.8
	stompTriggerDX      = 48.0
	stompMinInterval    = 90
	stompPreliftFrames  = 24
	stompPreliftRise    = 1.5
	stompDescentAccel   = 0.6
	stompDescentMax     = 14.0
	stompPauseFrames    = 30
	stompAscendSpeed    = 4.0
	stompCooldownFrames = 45
	stompShotInterval   = 75
	stompShockwaveCount = 12
	stompShockwaveSpeed = 3.0
)

// StompState tracks the player horizontally and slams down onto them.
type StompState struct {
	Phase stompPhase
	Timer int
	// SinceStomp counts frames since the last landing.
	SinceStomp int
	ShotTimer  int
	VY         float64
	TargetY    float64
}

func newStompState(b *Boss) *StompState {
	b.Pos.Y = stompHomeY
	return &StompState{}
}

func (s *StompState) Tick(b *Boss, in *Input, out *Output) {
	s.SinceStomp++
	s.Timer++
	player := in.nearestPlayer(b.Pos)

	switch s.Phase {
	case stompIdle:
		s.track(b, player.X, stompTrackSpeed)
		s.ShotTimer++
		if s.ShotTimer >= stompShotInterval {
			s.ShotTimer = 0
			out.Fire(fan(b.Pos, player, 3, 3.5, 0.4, colorEnemyShot)...)
			out.Cue(component.CueShoot)
		}
		if math.Abs(player.X-b.Pos.X) < stompTriggerDX && s.SinceStomp >= stompMinInterval {
			s.enter(stompPrelift)
		}
	case stompPrelift:
		b.Pos.Y -= stompPreliftRise
		if s.Timer >= stompPreliftFrames {
			s.VY = 0
			s.enter(stompDescending)
		}
	case stompDescending:
		// The landing point follows the player while the boss falls.
		s.TargetY = common.Clamp(player.Y, stompHomeY, common.ScreenHeight-b.Radius)
		s.VY = math.Min(s.VY+stompDescentAccel, stompDescentMax)
		b.Pos.Y += s.VY
		if b.Pos.Y >= s.TargetY {
			b.Pos.Y = s.TargetY
			s.VY = 0
			s.SinceStomp = 0
			s.enter(stompPause)
			out.Fire(ring(cp.Vector{X: b.Pos.X, Y: b.Pos.Y + b.Radius*0.5}, stompShockwaveCount, stompShockwaveSpeed, 0, component.ShapeCircle, colorEnemyShot)...)
			out.Cue(component.CueStomp)
			out.Shake(12)
		}
	case stompPause:
		if s.Timer >= stompPauseFrames {
			s.enter(stompAscending)
		}
	case stompAscending:
		b.Pos.Y -= stompAscendSpeed
		if b.Pos.Y <= stompHomeY {
			b.Pos.Y = stompHomeY
			s.enter(stompCooldown)
		}
	case stompCooldown:
		s.track(b, player.X, stompCooldownTrack)
		if s.Timer >= stompCooldownFrames {
			s.enter(stompIdle)
		}
	default:
		s.reset(b)
	}
}

func (s *StompState) enter(p stompPhase) {
	s.Phase = p
	s.Timer = 0
}

// reset is the fail-safe for an unrecognized phase.
func (s *StompState) reset(b *Boss) {
	s.Phase = stompIdle
	s.Timer = 0
	s.ShotTimer = 0
	s.VY = 0
	b.Pos.Y = stompHomeY
}

func (s *StompState) track(b *Boss, x, speed float64) {
	b.Pos.X = common.Clamp(common.Approach(b.Pos.X, x, speed), b.Radius, common.ScreenWidth-b.Radius)
}

func (s *StompState) HitTest(b *Boss, p *component.Projectile) Hit {
	if circleHit(b.Pos, p.Pos, b.Radius) {
		return Hit{Kind: HitDamage, Center: b.Pos}
	}
	return Hit{}
}

func (s *StompState) Damage(b *Boss, _ Hit, amount float64, out *Output) {
	b.damage(amount, out)
}

func (s *StompState) Hazards(b *Boss) []Hazard {
	return []Hazard{CircleHazard(b.Pos, b.Radius*0.9)}
}

// ClearHazards is a no-op: every stomp hazard is the body itself.
func (s *StompState) ClearHazards(*Boss) {}

func (s *StompState) Target(b *Boss) (cp.Vector, bool) {
	return b.Pos, true
}

func (s *StompState) Draw(b *Boss, c gfx.Canvas) {
	if s.Phase == stompPrelift || s.Phase == stompDescending {
		c.StrokeLine(cp.Vector{X: b.Pos.X, Y: b.Pos.Y}, cp.Vector{X: b.Pos.X, Y: common.ScreenHeight}, 2, colorWarning)
	}
	c.FillCircle(b.Pos, b.Radius, b.tint())
	c.FillRect(cp.BB{L: b.Pos.X - b.Radius*0.7, B: b.Pos.Y + b.Radius*0.6, R: b.Pos.X + b.Radius*0.7, T: b.Pos.Y + b.Radius}, b.tint())
}
