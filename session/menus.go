package session

import (
	"fmt"
	"log"
	"maps"

	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/save"
)

var titleItems = [...]string{"Level Select", "Equipment", "Save / Load"}

type saveAction int

const (
	actionSave saveAction = iota
	actionLoad
)

func (a saveAction) String() string {
	if a == actionLoad {
		return "Load"
	}
	return "Save"
}

func (s *Session) updateTitle(in component.Input) {
	s.moveCursor(in, len(titleItems))
	if !in.Pressed.Has(component.KeyConfirm) {
		return
	}
	s.sound.Play(component.CueMenuSelect)
	switch s.Cursor {
	case 0:
		s.enter(ModeLevelSelect)
		s.Cursor = s.Level
	case 1:
		s.enter(ModeEquipment)
	case 2:
		s.enter(ModeSaveLoad)
		s.Cursor = s.Slot - 1
		s.Status = ""
	}
}

func (s *Session) updateLevelSelect(in component.Input) {
	s.moveCursor(in, len(s.levels))
	switch {
	case in.Pressed.Has(component.KeyBack):
		s.enter(ModeTitle)
	case in.Pressed.Has(component.KeyConfirm):
		if !s.Available(s.Cursor) {
			return
		}
		s.sound.Play(component.CueMenuSelect)
		s.selectLevel(s.Cursor)
	}
}

// selectLevel picks a level and waits for the start key. The checkpoint of
// any earlier attempt is dropped.
func (s *Session) selectLevel(i int) {
	s.Level = i
	s.Checkpoint = false
	s.Encounter = nil
	s.enter(ModeWaiting)
}

func (s *Session) updateEquipment(in component.Input) {
	s.moveCursor(in, len(component.AbilityNames))
	switch {
	case in.Pressed.Has(component.KeyBack):
		s.enter(ModeTitle)
		s.Cursor = 1
	case in.Pressed.Has(component.KeyConfirm):
		var mask component.Abilities
		mask.Grant(component.AbilityNames[s.Cursor])
		if !s.Unlocks.And(mask).Any() {
			return
		}
		s.Equipped.Toggle(s.Cursor)
		s.sound.Play(component.CueMenuSelect)
	}
}

func (s *Session) updateSaveLoad(in component.Input) {
	s.moveCursor(in, save.Slots)
	switch {
	case in.Pressed.Has(component.KeyLeft), in.Pressed.Has(component.KeyRight):
		s.SaveAction = 1 - s.SaveAction
		s.sound.Play(component.CueMenuMove)
	case in.Pressed.Has(component.KeyBack):
		s.enter(ModeTitle)
		s.Cursor = 2
	case in.Pressed.Has(component.KeyConfirm):
		s.Slot = s.Cursor + 1
		if s.SaveAction == actionLoad {
			s.LoadSlot(s.Slot)
		} else {
			s.SaveSlot(s.Slot)
		}
		s.sound.Play(component.CueMenuSelect)
	}
}

// Snapshot returns the persisted part of the session.
func (s *Session) Snapshot() save.Data {
	return save.Data{
		Cleared:  maps.Clone(s.Cleared),
		Unlocks:  s.Unlocks,
		Equipped: s.Equipped,
	}
}

// Restore replaces progress with d.
func (s *Session) Restore(d save.Data) {
	s.Cleared = maps.Clone(d.Cleared)
	if s.Cleared == nil {
		s.Cleared = map[string]save.Clear{}
	}
	s.Unlocks = d.Unlocks
	s.Equipped = d.Equipped
}

// SaveSlot writes progress to slot and reports the result in Status.
func (s *Session) SaveSlot(slot int) bool {
	if s.store == nil {
		s.Status = "Saving is unavailable"
		return false
	}
	if err := s.store.Save(slot, s.Snapshot()); err != nil {
		log.Printf("session: save slot %d: %v", slot, err)
		s.Status = "Save failed"
		return false
	}
	s.Status = fmt.Sprintf("Saved to slot %d", slot)
	return true
}

// LoadSlot reads slot into the session. On failure nothing changes.
func (s *Session) LoadSlot(slot int) bool {
	if s.store == nil {
		s.Status = "Loading is unavailable"
		return false
	}
	d, err := s.store.Load(slot)
	if err != nil {
		log.Printf("session: load slot %d: %v", slot, err)
		s.Status = "Load failed"
		return false
	}
	if d.Empty() {
		s.Status = fmt.Sprintf("Slot %d is empty", slot)
		return false
	}
	s.Restore(d)
	s.Status = fmt.Sprintf("Loaded slot %d", slot)
	return true
}
