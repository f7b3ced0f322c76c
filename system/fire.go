package system

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
)

const (
	normalSpeed = 10.0
	homingSpeed = 8.0
	spreadSpeed = 9.0
	spreadAngle = 15 * math.Pi / 180

	normalPower = 1.0
	homingPower = 0.8
	spreadPower = 0.6
)

var (
	colorNormal = color.RGBA{R: 0xf0, G: 0xf0, B: 0xff, A: 0xff}
	colorHoming = color.RGBA{R: 0x60, G: 0xff, B: 0xa0, A: 0xff}
	colorSpread = color.RGBA{R: 0xff, G: 0xc0, B: 0x40, A: 0xff}
)

// FireSystem spawns player bullets while fire is held.
type FireSystem struct{}

func NewFireSystem() *FireSystem {
	return &FireSystem{}
}

func (f *FireSystem) Update(e *encounter.Encounter) {
	if e == nil {
		return
	}
	fired := false
	for _, p := range e.Players() {
		if p.FireCooldown > 0 {
			p.FireCooldown--
		}
		if !e.Controls.Held.Has(component.KeyFire) || p.FireCooldown > 0 {
			continue
		}
		e.Bullets = SpawnPlayerBullets(e.Bullets, p.Weapon, p.Muzzle())
		p.FireCooldown = e.Tuning.FireInterval
		fired = true
	}
	if fired {
		e.Emit(component.CueShoot)
	}
}

// SpawnPlayerBullets appends the volley for weapon fired from muzzle.
func SpawnPlayerBullets(bullets []component.Projectile, weapon component.Weapon, muzzle cp.Vector) []component.Projectile {
	switch weapon {
	case component.WeaponHoming:
		p := playerBullet(muzzle, cp.Vector{Y: -homingSpeed}, weapon, homingPower, 8, 8, colorHoming)
		p.Mode = component.MoveHoming
		p.Speed = homingSpeed
		return append(bullets, p)
	case component.WeaponSpread:
		for _, a := range [...]float64{-spreadAngle, 0, spreadAngle} {
			vel := cp.Vector{X: math.Sin(a) * spreadSpeed, Y: -math.Cos(a) * spreadSpeed}
			bullets = append(bullets, playerBullet(muzzle, vel, weapon, spreadPower, 6, 10, colorSpread))
		}
		return bullets
	default:
		return append(bullets, playerBullet(muzzle, cp.Vector{Y: -normalSpeed}, component.WeaponNormal, normalPower, 6, 12, colorNormal))
	}
}

func playerBullet(pos, vel cp.Vector, w component.Weapon, power, width, height float64, clr color.RGBA) component.Projectile {
	return component.Projectile{
		Pos:    pos,
		Vel:    vel,
		W:      width,
		H:      height,
		Owner:  component.OwnerPlayer,
		Weapon: w,
		Power:  power,
		Speed:  vel.Length(),
		Mode:   component.MoveLinear,
		Shape:  component.ShapeRect,
		Color:  clr,
	}
}
