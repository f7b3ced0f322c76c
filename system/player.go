package system

import (
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
)

const slowFactor = 0.5

// PlayerSystem moves the ships, runs the dash and weapon switch, and counts
// the invincibility timers.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

func (s *PlayerSystem) Update(e *encounter.Encounter) {
	if e == nil {
		return
	}
	in := e.Controls
	tn := e.Tuning

	for _, p := range e.Players() {
		tickTimers(p, tn)
	}

	if in.Pressed.Has(component.KeySwitch) {
		e.Player.Weapon = nextWeapon(e.Weapons(), e.Player.Weapon)
		if e.Player2 != nil {
			e.Player2.Weapon = e.Player.Weapon
		}
		e.Emit(component.CueMenuMove)
	}

	dashed := e.Equipped.Dash && TryDash(&e.Player, in, e.Frame, tn)
	if dashed {
		e.Emit(component.CueDash)
	} else {
		move(&e.Player, in)
	}
	if e.Player2 != nil {
		move(e.Player2, in)
	}
}

func tickTimers(p *component.Player, tn encounter.Tuning) {
	if p.Invincible {
		p.InvTimer++
		if p.InvTimer >= tn.InvincibleFrames {
			p.Invincible = false
			p.InvTimer = 0
		}
	}
	d := &p.Dash
	if d.Cooldown > 0 {
		d.Cooldown--
	}
	if d.InvTimer > 0 {
		d.InvTimer--
	}
	if d.ActiveTimer > 0 {
		d.ActiveTimer--
	}
	d.Active = d.ActiveTimer > 0
}

func move(p *component.Player, in component.Input) {
	x, y := in.Axis()
	if p.Mirror {
		x = -x
	}
	speed := p.Speed
	if in.Held.Has(component.KeySlow) {
		speed *= slowFactor
	}
	if x != 0 && y != 0 {
		speed /= 1.4142135623730951
	}
	p.Pos.X += x * speed
	p.Pos.Y += y * speed
	clampToPlayfield(p)
}

func clampToPlayfield(p *component.Player) {
	p.Pos.X = common.Clamp(p.Pos.X, p.W/2, common.ScreenWidth-p.W/2)
	p.Pos.Y = common.Clamp(p.Pos.Y, p.H/2, common.ScreenHeight-p.H/2)
}

// TryDash records direction taps and dashes on a second tap of the same
// direction inside the window while the cooldown is zero.
func TryDash(p *component.Player, in component.Input, frame int, tn encounter.Tuning) bool {
	for d := component.DirUp; d <= component.DirRight; d++ {
		if !in.Pressed.Has(component.DirectionKey(d)) {
			continue
		}
		last := p.Dash.LastTap[d]
		p.Dash.LastTap[d] = frame
		if last < 0 || frame-last > tn.DashWindow || p.Dash.Cooldown > 0 {
			continue
		}
		p.Pos = p.Pos.Add(d.Vector().Mult(tn.DashDistance))
		clampToPlayfield(p)
		p.Dash.LastTap[d] = -1
		p.Dash.Cooldown = tn.DashCooldown
		p.Dash.InvTimer = tn.DashInvFrames
		p.Dash.ActiveTimer = tn.DashActiveFrames
		p.Dash.Active = true
		return true
	}
	return false
}

func nextWeapon(ws []component.Weapon, cur component.Weapon) component.Weapon {
	for i, w := range ws {
		if w == cur {
			return ws[(i+1)%len(ws)]
		}
	}
	return component.WeaponNormal
}
