package component

// Owner identifies which side a projectile threatens.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

func (o Owner) String() string {
	if o == OwnerPlayer {
		return "player"
	}
	return "enemy"
}

// Weapon is the player's equipped shot type.
type Weapon int

const (
	WeaponNormal Weapon = iota
	WeaponHoming
	WeaponSpread
)

func (w Weapon) String() string {
	switch w {
	case WeaponHoming:
		return "homing"
	case WeaponSpread:
		return "spread"
	default:
		return "normal"
	}
}

// MoveMode selects the per-frame movement function of a projectile.
type MoveMode int

const (
	MoveLinear MoveMode = iota
	MoveHoming
	MoveSine
	MoveSpiral
	MoveOrbit
)

// Shape is the visual tag a renderer uses for a projectile.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRect
	ShapeStar
	ShapeDiamond
	ShapeSpear
)
