package save

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/milk9111/bossrush/component"
)

func TestMissingSlotIsEmpty(t *testing.T) {
	s := NewStore(t.TempDir())
	data, err := s.Load(1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !data.Empty() {
		t.Fatalf("expected empty slot, got %+v", data)
	}
	if data.Cleared == nil {
		t.Fatalf("expected non-nil cleared map")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested"))
	in := Data{
		Cleared:  map[string]Clear{"Boss A": {Plain: true, NoEquip: true}},
		Unlocks:  component.Abilities{Homing: true, Dash: true},
		Equipped: component.Abilities{Dash: true},
	}
	if err := s.Save(2, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := s.Load(2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	in.Version = version
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
	path, _ := s.Path(2)
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestInvalidSlot(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, slot := range []int{0, -1, Slots + 1} {
		if _, err := s.Load(slot); !errors.Is(err, ErrInvalidSlot) {
			t.Fatalf("Load(%d): expected ErrInvalidSlot, got %v", slot, err)
		}
		if err := s.Save(slot, Data{}); !errors.Is(err, ErrInvalidSlot) {
			t.Fatalf("Save(%d): expected ErrInvalidSlot, got %v", slot, err)
		}
	}
}

func TestCorruptSlotReportsError(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	path, _ := s.Path(1)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Load(1); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFailedSaveKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	first := Data{Cleared: map[string]Clear{"Orbiter": {Plain: true}}}
	if err := s.Save(1, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A directory in place of the temp file makes the next write fail.
	path, _ := s.Path(1)
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := s.Save(1, Data{Unlocks: component.Abilities{Shield: true}}); err == nil {
		t.Fatalf("expected save failure")
	}

	got, err := s.Load(1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Cleared["Orbiter"].Plain || got.Unlocks.Shield {
		t.Fatalf("slot changed after failed save: %+v", got)
	}
}

func TestClearMerge(t *testing.T) {
	a := Clear{Plain: true}
	b := Clear{Rainbow: true}
	if got := a.Merge(b); got != (Clear{Plain: true, Rainbow: true}) {
		t.Fatalf("merge: got %+v", got)
	}
}
