package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
)

// Direction indexes per-direction dash tap tracking.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	dirCount
)

// Vector returns the unit step for d in screen space.
func (d Direction) Vector() cp.Vector {
	switch d {
	case DirUp:
		return cp.Vector{X: 0, Y: -1}
	case DirDown:
		return cp.Vector{X: 0, Y: 1}
	case DirLeft:
		return cp.Vector{X: -1, Y: 0}
	case DirRight:
		return cp.Vector{X: 1, Y: 0}
	}
	return cp.Vector{}
}

// Dash tracks the double-tap dash. Cooldown and InvTimer count down to zero.
type Dash struct {
	Cooldown    int
	InvTimer    int
	Active      bool
	ActiveTimer int
	LastTap     [dirCount]int
}

// NewDash returns a dash with no recorded taps.
func NewDash() Dash {
	d := Dash{}
	for i := range d.LastTap {
		d.LastTap[i] = -1
	}
	return d
}

// Player is the ship state for one encounter.
type Player struct {
	Pos   cp.Vector
	W     float64
	H     float64
	Speed float64

	Lives      int
	Invincible bool
	// InvTimer counts up from zero while Invincible.
	InvTimer int

	Weapon       Weapon
	FireCooldown int
	Dash         Dash
	Shield       bool

	// Mirror flips horizontal input; used by the second ship.
	Mirror bool
}

// Bounds returns the ship hitbox.
func (p *Player) Bounds() cp.BB {
	return common.BoxAt(p.Pos, p.W, p.H)
}

// Vulnerable reports whether any damage source may apply this frame.
func (p *Player) Vulnerable() bool {
	return p != nil && !p.Invincible && p.Dash.InvTimer == 0
}

// Muzzle is where player bullets spawn.
func (p *Player) Muzzle() cp.Vector {
	return cp.Vector{X: p.Pos.X, Y: p.Pos.Y - p.H/2}
}
