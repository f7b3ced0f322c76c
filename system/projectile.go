package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
)

// ProjectileSystem moves every bullet one frame.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) Update(e *encounter.Encounter) {
	if e == nil {
		return
	}
	var target *cp.Vector
	if t, ok := e.Boss.Target(); ok {
		target = &t
	}
	AdvanceProjectiles(e.Bullets, target)
}

// AdvanceProjectiles steps every live bullet. target is the homing target
// and may be nil.
func AdvanceProjectiles(bullets []component.Projectile, target *cp.Vector) {
	for i := range bullets {
		bullets[i].Step(target)
	}
}

// SweepProjectiles drops dead bullets and bullets whose box is fully outside
// the playfield grown by the offscreen margin. The slice is filtered in place.
func SweepProjectiles(bullets []component.Projectile) []component.Projectile {
	bounds := common.Playfield(common.OffscreenMargin)
	kept := bullets[:0]
	for _, p := range bullets {
		if p.Dead || common.Outside(p.Bounds(), bounds) {
			continue
		}
		kept = append(kept, p)
	}
	clear(bullets[len(kept):])
	return kept
}
