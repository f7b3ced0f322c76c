package session

import (
	"log"

	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/save"
)

const (
	staffRollFrames = 900
	staffSkipFrames = 60
)

func (s *Session) updateWaiting(in component.Input) {
	switch {
	case in.Pressed.Has(component.KeyBack):
		s.enter(ModeLevelSelect)
		s.Cursor = s.Level
	case in.Pressed.Has(component.KeyConfirm), in.Pressed.Has(component.KeyFire):
		s.Start()
	}
}

// Start builds a fresh encounter for the selected level and begins play. It
// is the only way into ModePlaying; retry goes through it too.
func (s *Session) Start() bool {
	lvl, ok := s.current()
	if !ok {
		s.enter(ModeLevelSelect)
		return false
	}
	s.attempts++
	e, err := encounter.New(encounter.Config{
		Boss:       lvl.Boss,
		Equipped:   s.Effective(),
		Checkpoint: s.Checkpoint,
		Seed:       s.seed ^ uint64(s.Level)<<32 ^ s.attempts,
		NoDamage:   s.NoDamage,
		Tuning:     s.tuning,
		Picker:     s.picker,
	})
	if err != nil {
		log.Printf("session: start %s: %v", lvl.Name, err)
		s.Status = "Level failed to load"
		s.enter(ModeLevelSelect)
		return false
	}
	s.Encounter = e
	s.Status = ""
	s.enter(ModePlaying)
	s.sound.PlayMusic(lvl.Music)
	return true
}

func (s *Session) updatePlaying(in component.Input) {
	e := s.Encounter
	if e == nil {
		s.enter(ModeLevelSelect)
		return
	}
	if in.Pressed.Has(component.KeyPause) {
		s.Pause()
		return
	}
	if s.debug && in.Pressed.Has(component.KeyDebug) {
		s.NoDamage = !s.NoDamage
		e.NoDamage = s.NoDamage
		log.Printf("session: no-damage %v", s.NoDamage)
	}

	e.Input = in
	s.scheduler.Update(e)
	for _, ev := range e.Events.Drain() {
		s.sound.Play(ev.Cue)
	}
	if e.Checkpoint {
		s.Checkpoint = true
	}

	switch e.Result {
	case encounter.Won:
		s.win()
	case encounter.Lost:
		s.enter(ModeEnd)
	}
}

// win records the cleared tiers, grants the level's unlock and moves on.
func (s *Session) win() {
	lvl, _ := s.current()
	eq := s.Effective()
	tier := save.Clear{Plain: true, NoEquip: !eq.Any(), Rainbow: eq.All()}
	s.Cleared[lvl.Name] = s.Cleared[lvl.Name].Merge(tier)

	if lvl.Unlock != "" {
		var granted component.Abilities
		granted.Grant(lvl.Unlock)
		if !s.Unlocks.And(granted).Any() {
			s.Unlocks.Grant(lvl.Unlock)
			s.Equipped.Grant(lvl.Unlock)
			s.Status = "Unlocked " + lvl.Unlock
		}
	}
	s.Checkpoint = false
	s.sound.Play(component.CueBossClear)
	log.Printf("session: cleared %s (%+v)", lvl.Name, tier)

	if s.final() {
		s.StaffTimer = 0
		s.enter(ModeStaffRoll)
		s.sound.PlayMusic("final")
		return
	}
	s.enter(ModeEnd)
}

// Pause suspends the running encounter.
func (s *Session) Pause() {
	if s.Mode != ModePlaying {
		return
	}
	s.enter(ModePaused)
}

// Resume continues a paused encounter.
func (s *Session) Resume() {
	if s.Mode != ModePaused {
		return
	}
	s.enter(ModePlaying)
}

// Retry restarts the selected level, from the checkpoint if one was reached.
func (s *Session) Retry() bool {
	switch s.Mode {
	case ModePaused, ModeEnd, ModePlaying:
	default:
		return false
	}
	return s.Start()
}

// QuitToMenu drops the encounter and returns to level select.
func (s *Session) QuitToMenu() {
	s.Encounter = nil
	s.Checkpoint = false
	s.sound.StopMusic()
	s.enter(ModeLevelSelect)
	s.Cursor = s.Level
}

func (s *Session) updatePaused(in component.Input) {
	switch {
	case in.Pressed.Has(component.KeyPause), in.Pressed.Has(component.KeyBack):
		s.Resume()
	case in.Pressed.Has(component.KeyRetry):
		s.Retry()
	}
}

func (s *Session) updateEnd(in component.Input) {
	won := s.Encounter != nil && s.Encounter.Result == encounter.Won
	switch {
	case in.Pressed.Has(component.KeyRetry):
		s.Retry()
	case in.Pressed.Has(component.KeyConfirm):
		if won {
			s.QuitToMenu()
			if s.Available(s.Level + 1) {
				s.Cursor = s.Level + 1
			}
			return
		}
		s.Retry()
	case in.Pressed.Has(component.KeyBack):
		s.QuitToMenu()
	}
}

func (s *Session) updateStaffRoll(in component.Input) {
	s.StaffTimer++
	skip := s.StaffTimer > staffSkipFrames && in.Pressed.Has(component.KeyConfirm)
	if s.StaffTimer < staffRollFrames && !skip {
		return
	}
	s.Encounter = nil
	s.sound.StopMusic()
	s.enter(ModeTitle)
}
