// Package system holds the ordered per-frame steps that advance an encounter.
package system

import "github.com/milk9111/bossrush/encounter"

type System interface {
	Update(e *encounter.Encounter)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

// NewDefaultScheduler returns the fixed frame order: input, player, fire,
// projectiles, boss, collision, outcome. Bullets the boss spawns are first
// tested for collision at their spawn point and start moving next frame.
func NewDefaultScheduler() *Scheduler {
	return NewScheduler(
		NewInputSystem(),
		NewPlayerSystem(),
		NewFireSystem(),
		NewProjectileSystem(),
		NewBossSystem(),
		NewCollisionSystem(),
		NewOutcomeSystem(),
	)
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(e *encounter.Encounter) {
	if e == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(e)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
