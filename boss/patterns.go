package boss

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/component"
)

const defaultBulletSize = 10

var (
	colorEnemyShot = color.RGBA{R: 0xff, G: 0x50, B: 0x60, A: 0xff}
	colorStar      = color.RGBA{R: 0xff, G: 0xe0, B: 0x50, A: 0xff}
	colorOrbit     = color.RGBA{R: 0x90, G: 0x70, B: 0xff, A: 0xff}
	colorSpiral    = color.RGBA{R: 0x40, G: 0xd0, B: 0xff, A: 0xff}
	colorWarning   = color.RGBA{R: 0xff, G: 0x30, B: 0x30, A: 0x90}
	colorBeam      = color.RGBA{R: 0xff, G: 0xf0, B: 0xf0, A: 0xff}
	colorHollow    = color.RGBA{R: 0x08, G: 0x08, B: 0x18, A: 0xff}
)

var rainbow = [...]color.RGBA{
	{R: 0xff, G: 0x30, B: 0x30, A: 0xff},
	{R: 0xff, G: 0x90, B: 0x20, A: 0xff},
	{R: 0xff, G: 0xf0, B: 0x30, A: 0xff},
	{R: 0x40, G: 0xe0, B: 0x50, A: 0xff},
	{R: 0x30, G: 0xa0, B: 0xff, A: 0xff},
	{R: 0x60, G: 0x40, B: 0xe0, A: 0xff},
	{R: 0xc0, G: 0x50, B: 0xf0, A: 0xff},
}

func enemyShot(pos, vel cp.Vector, size float64, shape component.Shape, clr color.RGBA) component.Projectile {
	if size <= 0 {
		size = defaultBulletSize
	}
	return component.Projectile{
		Pos:   pos,
		Vel:   vel,
		W:     size,
		H:     size,
		Owner: component.OwnerEnemy,
		Power: 1,
		Mode:  component.MoveLinear,
		Shape: shape,
		Color: clr,
	}
}

// ring spawns count bullets evenly around center, rotated by phase.
func ring(center cp.Vector, count int, speed, phase float64, shape component.Shape, clr color.RGBA) []component.Projectile {
	if count <= 0 {
		return nil
	}
	out := make([]component.Projectile, 0, count)
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		dir := cp.ForAngle(phase + step*float64(i))
		out = append(out, enemyShot(center, dir.Mult(speed), defaultBulletSize, shape, clr))
	}
	return out
}

// fan spawns count bullets aimed at target, spread evenly across arc radians.
func fan(from, target cp.Vector, count int, speed, arc float64, clr color.RGBA) []component.Projectile {
	if count <= 0 {
		return nil
	}
	base := angleTo(from, target)
	out := make([]component.Projectile, 0, count)
	for i := 0; i < count; i++ {
		a := base
		if count > 1 {
			a = base - arc/2 + arc*float64(i)/float64(count-1)
		}
		out = append(out, enemyShot(from, cp.ForAngle(a).Mult(speed), defaultBulletSize, component.ShapeCircle, clr))
	}
	return out
}

// sineShots spawns bullets aimed at target that weave across their heading.
func sineShots(from, target cp.Vector, count int, speed, amp, freq float64) []component.Projectile {
	out := fan(from, target, count, speed, 0.5, colorSpiral)
	for i := range out {
		out[i].Mode = component.MoveSine
		out[i].Sine = component.SineMotion{Base: from, Amp: amp, Freq: freq, Phase: float64(i) * math.Pi / 2}
		out[i].Shape = component.ShapeDiamond
	}
	return out
}

// spiralShot spawns one bullet orbiting a center that drifts with centerVel.
func spiralShot(center, centerVel cp.Vector, angle, angVel, growth float64) component.Projectile {
	p := enemyShot(center, cp.Vector{}, 9, component.ShapeCircle, colorSpiral)
	p.Mode = component.MoveSpiral
	p.Spiral = component.SpiralMotion{
		Center:    center,
		CenterVel: centerVel,
		Angle:     angle,
		AngVel:    angVel,
		Radius:    4,
		Growth:    growth,
	}
	return p
}

// orbitRing spawns count bullets that circle origin and fly off once their
// radius reaches release.
func orbitRing(origin cp.Vector, count int, radius, angVel, growth, release, speed float64) []component.Projectile {
	out := make([]component.Projectile, 0, count)
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		a := step * float64(i)
		p := enemyShot(origin.Add(cp.ForAngle(a).Mult(radius)), cp.Vector{}, 11, component.ShapeCircle, colorOrbit)
		p.Mode = component.MoveOrbit
		p.Orbit = component.OrbitMotion{
			Origin:        origin,
			Angle:         a,
			AngVel:        angVel,
			Radius:        radius,
			Growth:        growth,
			ReleaseRadius: release,
			ReleaseSpeed:  speed,
		}
		out = append(out, p)
	}
	return out
}
