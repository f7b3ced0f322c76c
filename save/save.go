// Package save persists session progress as one JSON file per slot.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/milk9111/bossrush/component"
)

// Slots is the number of save slots offered by the menu.
const Slots = 3

const version = 1

var ErrInvalidSlot = errors.New("save: invalid slot")

// Clear records how a level has been beaten.
type Clear struct {
	Plain bool `json:"plain"`
	// NoEquip is set when the level was cleared with nothing equipped.
	NoEquip bool `json:"no_equip"`
	// Rainbow is set when the level was cleared with every ability equipped.
	Rainbow bool `json:"rainbow"`
}

// Merge keeps every tier reached in either record.
func (c Clear) Merge(o Clear) Clear {
	return Clear{
		Plain:   c.Plain || o.Plain,
		NoEquip: c.NoEquip || o.NoEquip,
		Rainbow: c.Rainbow || o.Rainbow,
	}
}

// Data is the persisted contents of a slot.
type Data struct {
	Version  int                 `json:"version"`
	Cleared  map[string]Clear    `json:"cleared" jsonschema:"description=Cleared tiers keyed by level name"`
	Unlocks  component.Abilities `json:"unlocks"`
	Equipped component.Abilities `json:"equipped"`
}

// Empty reports whether the slot holds no progress.
func (d Data) Empty() bool {
	return len(d.Cleared) == 0 && !d.Unlocks.Any() && !d.Equipped.Any()
}

// Store reads and writes slot files under Dir.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) Path(slot int) (string, error) {
	if slot < 1 || slot > Slots {
		return "", fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return filepath.Join(s.Dir, fmt.Sprintf("slot%d.json", slot)), nil
}

// Load reads a slot. A slot without a file is empty, not an error.
func (s *Store) Load(slot int) (Data, error) {
	path, err := s.Path(slot)
	if err != nil {
		return Data{}, err
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Data{Version: version, Cleared: map[string]Clear{}}, nil
	}
	if err != nil {
		return Data{}, fmt.Errorf("save: read slot %d: %w", slot, err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("save: decode slot %d: %w", slot, err)
	}
	if data.Cleared == nil {
		data.Cleared = map[string]Clear{}
	}
	return data, nil
}

// Save writes a slot through a temp file so a failed write leaves the
// previous contents in place.
func (s *Store) Save(slot int, data Data) error {
	path, err := s.Path(slot)
	if err != nil {
		return err
	}

	data.Version = version
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("save: encode slot %d: %w", slot, err)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("save: create dir: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("save: write slot %d: %w", slot, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save: replace slot %d: %w", slot, err)
	}
	return nil
}
