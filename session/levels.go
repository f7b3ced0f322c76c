package session

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/prefabs"
)

// Level is one entry of the boss rush.
type Level struct {
	Name string
	// Boss is nil for a level without a boss.
	Boss   *boss.Template
	Unlock string
	Music  string
}

// LevelsFromRoster converts a loaded roster into levels.
func LevelsFromRoster(r *prefabs.RosterSpec) []Level {
	if r == nil {
		return nil
	}
	levels := make([]Level, 0, len(r.Levels))
	for _, l := range r.Levels {
		tpl := l.Template()
		levels = append(levels, Level{Name: l.Name, Boss: &tpl, Unlock: l.Unlock, Music: l.Music})
	}
	return levels
}

// Available reports whether level i may be started: the first level always,
// later ones once the previous level is cleared.
func (s *Session) Available(i int) bool {
	if i < 0 || i >= len(s.levels) {
		return false
	}
	if i == 0 || s.allLevels {
		return true
	}
	return s.Cleared[s.levels[i-1].Name].Plain
}

func (s *Session) current() (Level, bool) {
	if s.Level < 0 || s.Level >= len(s.levels) {
		return Level{}, false
	}
	return s.levels[s.Level], true
}

func (s *Session) final() bool {
	return len(s.levels) > 0 && s.Level == len(s.levels)-1
}

type reloader interface {
	Reload() error
}

// pollWatcher applies prefab edits. It only runs outside play so the
// encounter never sees tunables change mid-fight.
func (s *Session) pollWatcher() {
	if s.watcher == nil {
		return
	}
	changed, err := s.watcher.Poll()
	if err != nil {
		log.Printf("session: prefab watcher: %v", err)
	}
	for _, name := range changed {
		s.reload(filepath.Base(name))
	}
}

func (s *Session) reload(name string) {
	switch {
	case name == "levels.yaml":
		roster, err := prefabs.LoadRosterSpec()
		if err != nil {
			log.Printf("session: reload %s: %v", name, err)
			return
		}
		s.levels = LevelsFromRoster(roster)
		if s.Level >= len(s.levels) {
			s.Level = max(0, len(s.levels)-1)
		}
		log.Printf("session: reloaded %d levels", len(s.levels))
	case name == "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			log.Printf("session: reload %s: %v", name, err)
			return
		}
		s.tuning = spec.Tuning()
		log.Printf("session: reloaded player tuning")
	case strings.HasSuffix(name, ".tengo"):
		r, ok := s.picker.(reloader)
		if !ok {
			return
		}
		if err := r.Reload(); err != nil {
			log.Printf("session: reload %s: %v", name, err)
			return
		}
		log.Printf("session: reloaded %s", name)
	}
}
