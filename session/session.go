// Package session drives everything around a fight: the title screen, the
// menus, starting and retrying encounters, cleared flags, unlocks and saves.
// Only ModePlaying advances the simulation.
package session

import (
	"log"

	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/save"
	"github.com/milk9111/bossrush/system"
)

type Mode int

const (
	ModeTitle Mode = iota
	ModeLevelSelect
	ModeEquipment
	ModeSaveLoad
	ModeWaiting
	ModePlaying
	ModePaused
	ModeEnd
	ModeStaffRoll
)

func (m Mode) String() string {
	switch m {
	case ModeTitle:
		return "title"
	case ModeLevelSelect:
		return "level_select"
	case ModeEquipment:
		return "equipment"
	case ModeSaveLoad:
		return "save_load"
	case ModeWaiting:
		return "waiting"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeEnd:
		return "end"
	case ModeStaffRoll:
		return "staff_roll"
	}
	return "unknown"
}

// Sound receives cues and music requests. audio.Player and audio.Nop
// implement it.
type Sound interface {
	Play(cue component.Cue)
	PlayMusic(track string)
	StopMusic()
	Update()
}

// Watcher reports prefab files changed on disk since the last poll.
type Watcher interface {
	Poll() ([]string, error)
}

// Store persists slots. *save.Store implements it.
type Store interface {
	Load(slot int) (save.Data, error)
	Save(slot int, data save.Data) error
}

// Config wires a session to its collaborators. Every field is optional.
type Config struct {
	Levels  []Level
	Tuning  encounter.Tuning
	Store   Store
	Sound   Sound
	Picker  boss.Picker
	Watcher Watcher
	Seed    uint64
	Debug   bool
	// AllUnlocked grants every ability and opens every level.
	AllUnlocked bool
	// StartLevel names a level to jump to, skipping the menus.
	StartLevel string
}

// Session is the whole-process game state. There is exactly one encounter at
// most, owned here.
type Session struct {
	Mode   Mode
	Cursor int
	// Level is the index of the selected level.
	Level int

	Cleared  map[string]save.Clear
	Unlocks  component.Abilities
	Equipped component.Abilities
	// Checkpoint is set once the current level reached a resumable phase.
	Checkpoint bool
	Encounter  *encounter.Encounter
	NoDamage   bool

	Slot       int
	SaveAction saveAction
	Status     string

	Frame      int
	StaffTimer int

	levels    []Level
	tuning    encounter.Tuning
	scheduler *system.Scheduler
	store     Store
	sound     Sound
	picker    boss.Picker
	watcher   Watcher
	seed      uint64
	attempts  uint64
	debug     bool
	allLevels bool
}

func New(cfg Config) *Session {
	s := &Session{
		Mode:      ModeTitle,
		Cleared:   map[string]save.Clear{},
		Slot:      1,
		levels:    cfg.Levels,
		tuning:    cfg.Tuning,
		scheduler: system.NewDefaultScheduler(),
		store:     cfg.Store,
		sound:     cfg.Sound,
		picker:    cfg.Picker,
		watcher:   cfg.Watcher,
		seed:      cfg.Seed,
		debug:     cfg.Debug,
		allLevels: cfg.AllUnlocked,
	}
	if s.sound == nil {
		s.sound = nopSound{}
	}
	if cfg.AllUnlocked {
		s.Unlocks = component.Abilities{Homing: true, Spread: true, Dash: true, Shield: true, HPBoost: true}
		s.Equipped = s.Unlocks
	}
	if cfg.StartLevel != "" {
		found := false
		for i, l := range s.levels {
			if l.Name == cfg.StartLevel {
				s.selectLevel(i)
				found = true
				break
			}
		}
		if !found {
			log.Printf("session: unknown level %q, starting at the title", cfg.StartLevel)
		}
	}
	return s
}

// Levels returns the current roster.
func (s *Session) Levels() []Level {
	return s.levels
}

// Effective is what the next encounter gets: equipped and unlocked.
func (s *Session) Effective() component.Abilities {
	return s.Equipped.And(s.Unlocks)
}

// Update advances one frame of the session with the given input snapshot.
func (s *Session) Update(in component.Input) {
	s.Frame++
	if s.Mode != ModePlaying {
		s.pollWatcher()
	}

	switch s.Mode {
	case ModeTitle:
		s.updateTitle(in)
	case ModeLevelSelect:
		s.updateLevelSelect(in)
	case ModeEquipment:
		s.updateEquipment(in)
	case ModeSaveLoad:
		s.updateSaveLoad(in)
	case ModeWaiting:
		s.updateWaiting(in)
	case ModePlaying:
		s.updatePlaying(in)
	case ModePaused:
		s.updatePaused(in)
	case ModeEnd:
		s.updateEnd(in)
	case ModeStaffRoll:
		s.updateStaffRoll(in)
	default:
		log.Printf("session: unknown mode %d, returning to title", s.Mode)
		s.enter(ModeTitle)
	}
	s.sound.Update()
}

func (s *Session) enter(m Mode) {
	s.Mode = m
	s.Cursor = 0
}

func (s *Session) moveCursor(in component.Input, n int) {
	if n <= 0 {
		s.Cursor = 0
		return
	}
	switch {
	case in.Pressed.Has(component.KeyUp):
		s.Cursor = (s.Cursor - 1 + n) % n
		s.sound.Play(component.CueMenuMove)
	case in.Pressed.Has(component.KeyDown):
		s.Cursor = (s.Cursor + 1) % n
		s.sound.Play(component.CueMenuMove)
	}
}

type nopSound struct{}

func (nopSound) Play(component.Cue) {}
func (nopSound) PlayMusic(string)   {}
func (nopSound) StopMusic()         {}
func (nopSound) Update()            {}
