package common

const (
	ScreenWidth  = 800
	ScreenHeight = 600

	// TPS is the fixed simulation rate.
	TPS = 60

	// OffscreenMargin is how far a projectile box may leave the playfield
	// before it is swept.
	OffscreenMargin = 32.0
)
