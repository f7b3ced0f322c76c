package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
)

// reflectMinSpeed is the slowest a reflected bullet may travel.
const reflectMinSpeed = 4.0

// CollisionSystem resolves one frame of contacts in a fixed order:
// spread cancellation, boss hits, player hits, then the sweep.
type CollisionSystem struct{}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

func (c *CollisionSystem) Update(e *encounter.Encounter) {
	if e == nil {
		return
	}
	CancelSpread(e.Bullets, e.Boss.CancelMargin())

	out := e.BossOutput()
	resolveBossHits(e, out)
	e.Apply(out)

	for _, p := range e.Players() {
		resolvePlayerHits(e, p)
	}

	e.Bullets = SweepProjectiles(e.Bullets)
}

// CancelSpread marks overlapping spread and enemy bullets dead. margin grows
// (or, when negative, shrinks) the spread bullet's box.
func CancelSpread(bullets []component.Projectile, margin float64) int {
	n := 0
	for i := range bullets {
		s := &bullets[i]
		if s.Dead || s.Owner != component.OwnerPlayer || s.Weapon != component.WeaponSpread {
			continue
		}
		box := grow(s.Bounds(), margin)
		for j := range bullets {
			t := &bullets[j]
			if t.Dead || !t.Hostile() {
				continue
			}
			if common.Overlaps(box, t.Bounds()) {
				s.Dead = true
				t.Dead = true
				n++
				break
			}
		}
	}
	return n
}

func grow(bb cp.BB, m float64) cp.BB {
	return cp.BB{L: bb.L - m, B: bb.B - m, R: bb.R + m, T: bb.T + m}
}

func resolveBossHits(e *encounter.Encounter, out *boss.Output) {
	if e.Boss == nil {
		return
	}
	for i := range e.Bullets {
		p := &e.Bullets[i]
		if p.Dead || p.Owner != component.OwnerPlayer || p.Reflected {
			continue
		}
		hit := e.Boss.HitTest(p)
		switch hit.Kind {
		case boss.HitDamage:
			p.Dead = true
			e.Boss.Damage(hit, p.Power, out)
		case boss.HitReflect:
			p.Reflect(hit.Center, reflectMinSpeed)
			out.Cue(component.CueReflect)
		case boss.HitAbsorb:
			p.Dead = true
		}
	}
}

func resolvePlayerHits(e *encounter.Encounter, p *component.Player) {
	if !exposed(e, p) {
		return
	}
	box := p.Bounds()
	for i := range e.Bullets {
		b := &e.Bullets[i]
		if b.Hostile() && common.Overlaps(box, b.Bounds()) {
			b.Dead = true
			HurtPlayer(e, p)
			return
		}
	}
	for _, h := range e.Boss.Hazards() {
		if h.Overlaps(box) {
			HurtPlayer(e, p)
			return
		}
	}
}

// exposed reports whether a hit on p may land. The ships share one life pool,
// so invincibility on any of them covers all of them.
func exposed(e *encounter.Encounter, p *component.Player) bool {
	if !p.Vulnerable() {
		return false
	}
	for _, s := range e.Players() {
		if s.Invincible {
			return false
		}
	}
	return true
}

// HurtPlayer applies one unblocked hit to p. The shared life count lives on
// the primary ship, and every ship starts the invincibility window together.
func HurtPlayer(e *encounter.Encounter, p *component.Player) {
	if !exposed(e, p) {
		return
	}
	for _, s := range e.Players() {
		s.Invincible = true
		s.InvTimer = 0
	}
	e.Boss.ClearHazards()

	if p.Shield {
		p.Shield = false
		e.Emit(component.CueShieldBreak)
		return
	}
	if !e.NoDamage && e.Player.Lives > 0 {
		e.Player.Lives--
	}
	e.Explode(p.Pos, p.W*1.5)
	e.Shake = max(e.Shake, 10)
	e.Emit(component.CuePlayerHit)
}
