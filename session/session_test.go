package session

import (
	"errors"
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
	"github.com/milk9111/bossrush/gfx"
	"github.com/milk9111/bossrush/save"
)

type recordSound struct {
	cues   []component.Cue
	music  []string
	stops  int
	update int
}

func (r *recordSound) Play(c component.Cue)   { r.cues = append(r.cues, c) }
func (r *recordSound) PlayMusic(track string) { r.music = append(r.music, track) }
func (r *recordSound) StopMusic()             { r.stops++ }
func (r *recordSound) Update()                { r.update++ }

func (r *recordSound) played(c component.Cue) bool {
	for _, got := range r.cues {
		if got == c {
			return true
		}
	}
	return false
}

type memStore struct {
	slots   map[int]save.Data
	saveErr error
	loadErr error
}

func (m *memStore) Load(slot int) (save.Data, error) {
	if m.loadErr != nil {
		return save.Data{}, m.loadErr
	}
	return m.slots[slot], nil
}

func (m *memStore) Save(slot int, d save.Data) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.slots[slot] = d
	return nil
}

type countWatcher struct {
	polls   int
	changed []string
}

func (w *countWatcher) Poll() ([]string, error) {
	w.polls++
	out := w.changed
	w.changed = nil
	return out, nil
}

func press(keys ...component.Key) component.Input {
	var in component.Input
	for _, k := range keys {
		in.Held.Set(k)
		in.Pressed.Set(k)
	}
	return in
}

func grandTemplate() *boss.Template {
	return &boss.Template{
		Name:      "Grand",
		Archetype: boss.ArchetypeGrand,
		HP:        300,
		Radius:    60,
		Spawn:     cp.Vector{X: 400, Y: 130},
		Color:     color.RGBA{R: 0xc0, G: 0x60, B: 0xf0, A: 0xff},
	}
}

func stompTemplate() *boss.Template {
	return &boss.Template{
		Name:      "Boss A",
		Archetype: boss.ArchetypeStomp,
		HP:        35,
		Radius:    44,
		Spawn:     cp.Vector{X: 400, Y: 110},
	}
}

// testLevels has two bossless levels, which are won on their first frame,
// and a real final boss.
func testLevels() []Level {
	return []Level{
		{Name: "Warmup", Unlock: "homing", Music: "stage1"},
		{Name: "Boss A", Boss: stompTemplate(), Unlock: "dash", Music: "stage1"},
		{Name: "Grand", Boss: grandTemplate(), Music: "final"},
	}
}

func newTestSession(t *testing.T, cfg Config) (*Session, *recordSound) {
	t.Helper()
	snd := &recordSound{}
	if cfg.Levels == nil {
		cfg.Levels = testLevels()
	}
	cfg.Sound = snd
	return New(cfg), snd
}

func TestMenuFlowToPlaying(t *testing.T) {
	s, snd := newTestSession(t, Config{})
	if s.Mode != ModeTitle {
		t.Fatalf("expected title, got %v", s.Mode)
	}
	s.Update(press(component.KeyConfirm))
	if s.Mode != ModeLevelSelect {
		t.Fatalf("expected level select, got %v", s.Mode)
	}
	s.Update(press(component.KeyDown))
	s.Update(press(component.KeyConfirm))
	if s.Mode != ModeLevelSelect {
		t.Fatalf("locked level should not start, got %v", s.Mode)
	}
	s.Update(press(component.KeyUp))
	s.Update(press(component.KeyConfirm))
	if s.Mode != ModeWaiting || s.Level != 0 {
		t.Fatalf("expected waiting on level 0, got %v level %d", s.Mode, s.Level)
	}
	s.Update(press(component.KeyConfirm))
	if s.Mode != ModePlaying || s.Encounter == nil {
		t.Fatalf("expected playing with an encounter, got %v", s.Mode)
	}
	if len(snd.music) == 0 || snd.music[0] != "stage1" {
		t.Fatalf("expected stage music, got %v", snd.music)
	}
	if !snd.played(component.CueMenuMove) || !snd.played(component.CueMenuSelect) {
		t.Fatalf("expected menu cues, got %v", snd.cues)
	}
}

func TestClearRecordsTiersAndUnlock(t *testing.T) {
	s, snd := newTestSession(t, Config{})
	s.selectLevel(0)
	if !s.Start() {
		t.Fatalf("Start failed")
	}
	s.Update(component.Input{})

	if s.Mode != ModeEnd {
		t.Fatalf("expected end, got %v", s.Mode)
	}
	cl := s.Cleared["Warmup"]
	if !cl.Plain || !cl.NoEquip || cl.Rainbow {
		t.Fatalf("unexpected tiers %+v", cl)
	}
	if !s.Unlocks.Homing || !s.Equipped.Homing {
		t.Fatalf("expected homing unlocked and equipped, got %+v / %+v", s.Unlocks, s.Equipped)
	}
	if !s.Available(1) {
		t.Fatalf("next level should be available")
	}
	if !snd.played(component.CueBossClear) {
		t.Fatalf("expected boss clear cue")
	}

	s.Update(press(component.KeyConfirm))
	if s.Mode != ModeLevelSelect || s.Cursor != 1 {
		t.Fatalf("expected level select on next level, got %v cursor %d", s.Mode, s.Cursor)
	}
}

func TestRainbowTier(t *testing.T) {
	s, _ := newTestSession(t, Config{AllUnlocked: true})
	s.selectLevel(0)
	s.Start()
	s.Update(component.Input{})
	if cl := s.Cleared["Warmup"]; !cl.Rainbow || cl.NoEquip {
		t.Fatalf("expected rainbow clear, got %+v", cl)
	}
}

func TestFinalClearEntersStaffRoll(t *testing.T) {
	levels := []Level{{Name: "Only", Music: "final"}}
	s, _ := newTestSession(t, Config{Levels: levels})
	s.selectLevel(0)
	s.Start()
	s.Update(component.Input{})
	if s.Mode != ModeStaffRoll {
		t.Fatalf("expected staff roll, got %v", s.Mode)
	}
	for i := 0; i < staffSkipFrames; i++ {
		s.Update(press(component.KeyConfirm))
		if s.Mode != ModeStaffRoll {
			t.Fatalf("staff roll skipped too early at frame %d", i)
		}
	}
	s.Update(press(component.KeyConfirm))
	if s.Mode != ModeTitle || s.Encounter != nil {
		t.Fatalf("expected title with no encounter, got %v", s.Mode)
	}
}

func TestLoseAndRetryBuildsFreshEncounter(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	s.selectLevel(1)
	s.Start()
	first := s.Encounter
	first.Player.Lives = 0
	s.Update(component.Input{})
	if s.Mode != ModeEnd || first.Result != encounter.Lost {
		t.Fatalf("expected loss, got mode %v result %v", s.Mode, first.Result)
	}

	s.Update(press(component.KeyRetry))
	if s.Mode != ModePlaying {
		t.Fatalf("expected playing after retry, got %v", s.Mode)
	}
	if s.Encounter == first {
		t.Fatalf("retry reused the encounter")
	}
	if s.Encounter.Player.Lives != encounter.DefaultTuning().Lives {
		t.Fatalf("lives not reset: %d", s.Encounter.Player.Lives)
	}
	if s.Encounter.Boss.HP() != stompTemplate().HP {
		t.Fatalf("boss HP not reset: %v", s.Encounter.Boss.HP())
	}
}

func TestRetryFromCheckpoint(t *testing.T) {
	s, _ := newTestSession(t, Config{AllUnlocked: true})
	s.selectLevel(2)
	s.Start()
	s.Encounter.Checkpoint = true
	s.Encounter.Player.Lives = 0
	s.Update(component.Input{})
	if !s.Checkpoint {
		t.Fatalf("session did not record the checkpoint")
	}

	s.Update(press(component.KeyConfirm))
	if s.Mode != ModePlaying {
		t.Fatalf("expected playing, got %v", s.Mode)
	}
	if s.Encounter.Boss.Phase != 2 {
		t.Fatalf("expected retry at phase 2, got %d", s.Encounter.Boss.Phase)
	}

	s.QuitToMenu()
	s.selectLevel(2)
	s.Start()
	if s.Encounter.Boss.Phase != 1 {
		t.Fatalf("fresh start should ignore old checkpoint, got phase %d", s.Encounter.Boss.Phase)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	s.selectLevel(1)
	s.Start()
	s.Update(component.Input{})
	frame := s.Encounter.Frame

	s.Update(press(component.KeyPause))
	if s.Mode != ModePaused {
		t.Fatalf("expected paused, got %v", s.Mode)
	}
	for i := 0; i < 10; i++ {
		s.Update(component.Input{})
	}
	if s.Encounter.Frame != frame {
		t.Fatalf("encounter advanced while paused: %d -> %d", frame, s.Encounter.Frame)
	}
	s.Update(press(component.KeyPause))
	if s.Mode != ModePlaying {
		t.Fatalf("expected playing after resume, got %v", s.Mode)
	}
	s.Update(component.Input{})
	if s.Encounter.Frame != frame+1 {
		t.Fatalf("expected one more frame, got %d", s.Encounter.Frame)
	}
}

func TestEquipmentNeedsUnlock(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	s.enter(ModeEquipment)
	s.Update(press(component.KeyConfirm))
	if s.Equipped.Homing {
		t.Fatalf("locked ability was equipped")
	}
	s.Unlocks.Grant("homing")
	s.Update(press(component.KeyConfirm))
	if !s.Equipped.Homing {
		t.Fatalf("unlocked ability was not equipped")
	}
	s.Update(press(component.KeyConfirm))
	if s.Equipped.Homing {
		t.Fatalf("toggle did not unequip")
	}
}

func TestEffectiveMasksLockedEquipment(t *testing.T) {
	s, _ := newTestSession(t, Config{})
	s.Equipped = component.Abilities{Homing: true, Dash: true}
	s.Unlocks = component.Abilities{Dash: true}
	if got := s.Effective(); got != (component.Abilities{Dash: true}) {
		t.Fatalf("effective: got %+v", got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := &memStore{slots: map[int]save.Data{}}
	s, _ := newTestSession(t, Config{Store: store})
	s.Cleared["Warmup"] = save.Clear{Plain: true}
	s.Unlocks.Grant("spread")

	s.enter(ModeSaveLoad)
	s.Update(press(component.KeyDown))
	s.Update(press(component.KeyConfirm))
	if _, ok := store.slots[2]; !ok {
		t.Fatalf("expected slot 2 written, status %q", s.Status)
	}

	other, _ := newTestSession(t, Config{Store: store})
	if !other.LoadSlot(2) {
		t.Fatalf("LoadSlot failed: %q", other.Status)
	}
	if !other.Cleared["Warmup"].Plain || !other.Unlocks.Spread {
		t.Fatalf("progress not restored: %+v %+v", other.Cleared, other.Unlocks)
	}
}

func TestSaveLoadFailuresKeepState(t *testing.T) {
	store := &memStore{slots: map[int]save.Data{}, saveErr: errors.New("disk full"), loadErr: errors.New("unreadable")}
	s, _ := newTestSession(t, Config{Store: store})
	s.Unlocks.Grant("shield")

	if s.SaveSlot(1) {
		t.Fatalf("expected save failure")
	}
	if s.Status != "Save failed" {
		t.Fatalf("unexpected status %q", s.Status)
	}
	if s.LoadSlot(1) {
		t.Fatalf("expected load failure")
	}
	if !s.Unlocks.Shield || s.Status != "Load failed" {
		t.Fatalf("state changed after failed load: %+v %q", s.Unlocks, s.Status)
	}
}

func TestLoadEmptySlotKeepsProgress(t *testing.T) {
	store := save.NewStore(t.TempDir())
	s, _ := newTestSession(t, Config{Store: store})
	s.Unlocks.Grant("dash")
	if s.LoadSlot(3) {
		t.Fatalf("empty slot should not load")
	}
	if !s.Unlocks.Dash {
		t.Fatalf("progress lost loading an empty slot")
	}
}

func TestWatcherPolledOnlyOutsidePlay(t *testing.T) {
	w := &countWatcher{}
	s, _ := newTestSession(t, Config{Watcher: w})
	s.Update(component.Input{})
	if w.polls != 1 {
		t.Fatalf("expected poll on title, got %d", w.polls)
	}
	s.selectLevel(1)
	s.Start()
	for i := 0; i < 5; i++ {
		s.Update(component.Input{})
	}
	if w.polls != 1 {
		t.Fatalf("watcher polled during play: %d", w.polls)
	}
}

func TestWatcherReloadsRoster(t *testing.T) {
	w := &countWatcher{changed: []string{"prefabs/levels.yaml"}}
	s, _ := newTestSession(t, Config{Levels: []Level{{Name: "stub"}}, Watcher: w})
	s.Update(component.Input{})
	if len(s.Levels()) != 6 {
		t.Fatalf("expected embedded roster of 6 levels, got %d", len(s.Levels()))
	}
}

func TestDebugNoDamageToggle(t *testing.T) {
	s, _ := newTestSession(t, Config{Debug: true})
	s.selectLevel(1)
	s.Start()
	s.Update(press(component.KeyDebug))
	if !s.NoDamage || !s.Encounter.NoDamage {
		t.Fatalf("expected no-damage on")
	}

	plain, _ := newTestSession(t, Config{})
	plain.selectLevel(1)
	plain.Start()
	plain.Update(press(component.KeyDebug))
	if plain.NoDamage {
		t.Fatalf("debug key must be ignored outside debug mode")
	}
}

func TestStartLevelFlag(t *testing.T) {
	s := New(Config{Levels: testLevels(), StartLevel: "Grand"})
	if s.Mode != ModeWaiting || s.Level != 2 {
		t.Fatalf("expected waiting on level 2, got %v %d", s.Mode, s.Level)
	}
	unknown := New(Config{Levels: testLevels(), StartLevel: "Nope"})
	if unknown.Mode != ModeTitle {
		t.Fatalf("unknown level should start at the title, got %v", unknown.Mode)
	}
}

func TestDrawEveryMode(t *testing.T) {
	s, _ := newTestSession(t, Config{AllUnlocked: true})
	modes := []Mode{ModeTitle, ModeLevelSelect, ModeEquipment, ModeSaveLoad, ModeWaiting, ModePlaying, ModePaused, ModeEnd, ModeStaffRoll}
	s.selectLevel(1)
	s.Start()
	for _, m := range modes {
		t.Run(m.String(), func(t *testing.T) {
			s.Mode = m
			rec := gfx.NewRecorder()
			s.Draw(rec)
			if rec.Calls["text"] == 0 {
				t.Fatalf("mode %v drew no text", m)
			}
		})
	}
}
