package system

import "github.com/milk9111/bossrush/encounter"

// BossSystem advances the boss state machine and applies what it emitted.
type BossSystem struct{}

func NewBossSystem() *BossSystem {
	return &BossSystem{}
}

func (s *BossSystem) Update(e *encounter.Encounter) {
	if e == nil || e.Boss == nil {
		return
	}
	out := e.BossOutput()
	e.Boss.Update(e.BossInput(), out)
	e.Apply(out)
}
