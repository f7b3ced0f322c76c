package component

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
)

// SineMotion offsets a straight base path perpendicular to its heading.
type SineMotion struct {
	Base  cp.Vector
	Amp   float64
	Freq  float64
	Phase float64
}

// SpiralMotion orbits a center that itself translates every frame.
type SpiralMotion struct {
	Center    cp.Vector
	CenterVel cp.Vector
	Angle     float64
	AngVel    float64
	Radius    float64
	Growth    float64
}

// OrbitMotion circles Origin with a growing radius until ReleaseRadius, then
// flies straight outward at ReleaseSpeed.
type OrbitMotion struct {
	Origin        cp.Vector
	Angle         float64
	AngVel        float64
	Radius        float64
	Growth        float64
	ReleaseRadius float64
	ReleaseSpeed  float64
	Released      bool
}

// Projectile is a bullet owned by the active encounter's bullet collection.
type Projectile struct {
	Pos cp.Vector
	Vel cp.Vector
	W   float64
	H   float64

	Owner  Owner
	Weapon Weapon
	Power  float64
	Speed  float64
	// TTL counts frames remaining; zero means the projectile never expires.
	TTL int
	Age int

	Mode   MoveMode
	Sine   SineMotion
	Spiral SpiralMotion
	Orbit  OrbitMotion

	Shape    Shape
	Color    color.RGBA
	Rotation float64

	Reflected bool
	Harmless  bool
	Exploded  bool
	Dead      bool
}

// Bounds returns the projectile's axis-aligned box.
func (p *Projectile) Bounds() cp.BB {
	return common.BoxAt(p.Pos, p.W, p.H)
}

// Homing reports whether the projectile currently steers toward a target.
func (p *Projectile) Homing() bool {
	return p != nil && p.Mode == MoveHoming && !p.Reflected
}

// Hostile reports whether the projectile can hurt the player.
func (p *Projectile) Hostile() bool {
	return p != nil && !p.Dead && !p.Harmless && (p.Owner == OwnerEnemy || p.Reflected)
}

// Reflect turns a player bullet into a hazard flying away from center. A
// reflected projectile never steers again.
func (p *Projectile) Reflect(center cp.Vector, minSpeed float64) {
	if p == nil {
		return
	}
	speed := math.Max(p.Vel.Length(), minSpeed)
	away := p.Pos.Sub(center)
	if away.LengthSq() == 0 {
		away = p.Vel.Neg()
	}
	if away.LengthSq() == 0 {
		away = cp.Vector{X: 0, Y: 1}
	}
	p.Vel = away.Normalize().Mult(speed)
	p.Mode = MoveLinear
	p.Reflected = true
	p.Owner = OwnerEnemy
}

// Step advances the projectile by one frame. target is the live boss center
// used by homing bullets and may be nil.
func (p *Projectile) Step(target *cp.Vector) {
	if p == nil || p.Dead {
		return
	}
	p.Age++

	switch p.Mode {
	case MoveHoming:
		if !p.Reflected && target != nil {
			to := target.Sub(p.Pos)
			if to.LengthSq() > 0 {
				speed := p.Speed
				if speed <= 0 {
					speed = p.Vel.Length()
				}
				p.Vel = to.Normalize().Mult(speed)
			}
		}
		p.Pos = p.Pos.Add(p.Vel)
	case MoveSine:
		p.Sine.Base = p.Sine.Base.Add(p.Vel)
		off := p.Sine.Amp * math.Sin(p.Sine.Freq*float64(p.Age)+p.Sine.Phase)
		p.Pos = p.Sine.Base.Add(p.Vel.Normalize().Perp().Mult(off))
	case MoveSpiral:
		s := &p.Spiral
		s.Center = s.Center.Add(s.CenterVel)
		s.Angle += s.AngVel
		s.Radius += s.Growth
		next := s.Center.Add(cp.ForAngle(s.Angle).Mult(s.Radius))
		p.Vel = next.Sub(p.Pos)
		p.Pos = next
	case MoveOrbit:
		o := &p.Orbit
		if o.Released {
			p.Pos = p.Pos.Add(p.Vel)
			break
		}
		o.Angle += o.AngVel
		o.Radius += o.Growth
		if o.ReleaseRadius > 0 && o.Radius >= o.ReleaseRadius {
			o.Released = true
			p.Vel = cp.ForAngle(o.Angle).Mult(o.ReleaseSpeed)
		}
		p.Pos = o.Origin.Add(cp.ForAngle(o.Angle).Mult(o.Radius))
	default:
		p.Pos = p.Pos.Add(p.Vel)
	}

	if p.TTL > 0 {
		p.TTL--
		if p.TTL == 0 {
			p.Dead = true
		}
	}
}
