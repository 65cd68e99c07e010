package tui

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lineclear/internal/config"
	"github.com/vovakirdan/lineclear/internal/core"
	"github.com/vovakirdan/lineclear/internal/scenario"
	"github.com/vovakirdan/lineclear/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 10, Seed: 42}
	m := NewModel(config.DefaultGeneratorConfig(), cfg)
	if m.Err() != nil {
		t.Fatalf("preview of seed 42 failed: %v", m.Err())
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelLoadsAnimation(t *testing.T) {
	m := newTestModel(t)

	if m.Seed() != 42 {
		t.Errorf("Expected seed 42, got %d", m.Seed())
	}
	if m.Frames() < 30 {
		t.Errorf("Expected at least 30 frames, got %d", m.Frames())
	}
	if m.Result().Scenario.Profile.Difficulty != scenario.DifficultyEasy {
		t.Errorf("Expected easy scenario, got %s", m.Result().Scenario.Profile.Difficulty)
	}
}

func TestModelTickAndPause(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, TickMsg(time.Now()))
	if m.Frame() != 1 {
		t.Errorf("Expected frame 1 after a tick, got %d", m.Frame())
	}

	m = update(t, m, runes("p"))
	if !m.Paused() {
		t.Fatal("Expected preview to be paused")
	}
	m = update(t, m, TickMsg(time.Now()))
	if m.Frame() != 1 {
		t.Errorf("Paused preview advanced to frame %d", m.Frame())
	}

	m = update(t, m, runes("l"))
	if m.Frame() != 2 {
		t.Errorf("Expected step to frame 2, got %d", m.Frame())
	}

	m = update(t, m, runes("r"))
	if m.Frame() != 0 || m.Paused() {
		t.Errorf("Expected replay from frame 0, got frame %d paused=%v", m.Frame(), m.Paused())
	}
}

func TestModelAnimationLoops(t *testing.T) {
	m := newTestModel(t)
	for range m.Frames() {
		m = update(t, m, TickMsg(time.Now()))
	}
	if m.Frame() != 0 {
		t.Errorf("Expected animation to loop back to frame 0, got %d", m.Frame())
	}
}

func TestModelSeedNavigation(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, runes("n"))
	if m.Seed() != 43 {
		t.Errorf("Expected seed 43, got %d", m.Seed())
	}
	m = update(t, m, runes("N"))
	m = update(t, m, runes("N"))
	if m.Seed() != 41 {
		t.Errorf("Expected seed 41, got %d", m.Seed())
	}
	if m.Frame() != 0 {
		t.Errorf("Expected a new scenario to start at frame 0, got %d", m.Frame())
	}
}

func TestModelCyclesDifficulty(t *testing.T) {
	m := newTestModel(t)

	want := []scenario.Difficulty{scenario.DifficultyMedium, scenario.DifficultyHard, scenario.DifficultyEasy}
	for _, d := range want {
		m = update(t, m, runes("d"))
		if m.Err() != nil {
			t.Fatalf("Generation failed on %s: %v", d, m.Err())
		}
		if got := m.Result().Scenario.Profile.Difficulty; got != d {
			t.Errorf("Expected %s, got %s", d, got)
		}
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "LINECLEAR") {
		t.Error("Expected title in view")
	}
	if !strings.Contains(view, "seed 42") {
		t.Error("Expected seed in view")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 8})
	if !strings.Contains(m.View(), "too small") {
		t.Error("Expected a too-small notice on a tiny terminal")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("Expected model to be quitting")
	}
	if next.(Model).View() != "" {
		t.Error("Expected empty view after quit")
	}
}

type fakeSource struct {
	tasks []storage.TaskRecord
}

func (f fakeSource) RecentTasks(int) ([]storage.TaskRecord, error) {
	return f.tasks, nil
}

func (f fakeSource) TasksByDifficulty(d string, _ int) ([]storage.TaskRecord, error) {
	var out []storage.TaskRecord
	for _, t := range f.tasks {
		if t.Difficulty == d {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f fakeSource) Stats() (map[string]*storage.DifficultyStats, error) {
	stats := map[string]*storage.DifficultyStats{}
	for _, t := range f.tasks {
		s, ok := stats[t.Difficulty]
		if !ok {
			s = &storage.DifficultyStats{Difficulty: t.Difficulty}
			stats[t.Difficulty] = s
		}
		s.TaskCount++
		s.TotalLines += int64(t.LinesCleared)
		if t.LinesCleared > 0 {
			s.ClearingTasks++
		}
	}
	return stats, nil
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return s
}

func TestSessionHistoryNeedsSource(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 10, Seed: 1}
	m := NewSessionModel(config.DefaultGeneratorConfig(), cfg, nil)

	m = sessionUpdate(t, m, runes("H"))
	if m.InHistory() {
		t.Error("History opened without a task source")
	}
}

func TestSessionHistoryRoundTrip(t *testing.T) {
	source := fakeSource{tasks: []storage.TaskRecord{
		{TaskID: "tetris_0000", Difficulty: "easy", Seed: 1, LinesCleared: 2},
		{TaskID: "tetris_0001", Difficulty: "hard", Seed: 2},
	}}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 10, Seed: 1}
	m := NewSessionModel(config.DefaultGeneratorConfig(), cfg, source)

	m = sessionUpdate(t, m, runes("H"))
	if !m.InHistory() {
		t.Fatal("Expected history to open")
	}
	view := m.View()
	if !strings.Contains(view, "tetris_0000") || !strings.Contains(view, "tetris_0001") {
		t.Errorf("Expected both tasks in history view:\n%s", view)
	}
	if !strings.Contains(view, "2 tasks, 50% clear a line") {
		t.Errorf("Expected stats line in history view:\n%s", view)
	}

	// Ticks still reach the preview
	m = sessionUpdate(t, m, TickMsg(time.Now()))
	if m.preview.Frame() != 1 {
		t.Errorf("Expected preview to keep animating, frame %d", m.preview.Frame())
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.InHistory() {
		t.Error("Expected esc to return to the preview")
	}
}

func TestHistoryTabs(t *testing.T) {
	source := fakeSource{tasks: []storage.TaskRecord{
		{TaskID: "tetris_0000", Difficulty: "easy"},
		{TaskID: "tetris_0001", Difficulty: "hard"},
		{TaskID: "tetris_0002", Difficulty: "hard"},
	}}
	m := NewHistoryModel(source, 80, 30)
	if m.Tab() != "all" || len(m.tasks) != 3 {
		t.Fatalf("Expected all 3 tasks on the first tab, got %s with %d", m.Tab(), len(m.tasks))
	}

	// all -> easy -> medium -> hard
	for range 3 {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(HistoryModel)
	}
	if m.Tab() != "hard" {
		t.Fatalf("Expected hard tab, got %s", m.Tab())
	}
	if len(m.tasks) != 2 {
		t.Errorf("Expected 2 hard tasks, got %d", len(m.tasks))
	}
	if sel := m.Selected(); sel == nil || sel.TaskID != "tetris_0001" {
		t.Errorf("Expected first hard task selected, got %+v", sel)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "board", core.ColorAccent)
	s.DrawTextColored(6, 0, "ok", core.ColorDefault)
	s.DrawTextColored(0, 1, "flash", core.ColorFlash)

	out := RenderScreen(s)
	for _, want := range []string{"board", "ok", "flash"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in rendered screen %q", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("Expected 2 lines, got %d newlines", got)
	}
}

func TestSSHSessionSeeds(t *testing.T) {
	gen := config.DefaultGeneratorConfig()
	gen.Seed = 100
	s := &SSHServer{config: SSHServerConfig{Generator: gen}}

	for i, want := range []int64{100, 101, 102} {
		if got := s.sessionSeed(); got != want {
			t.Errorf("session %d seed = %d, expected %d", i, got, want)
		}
	}
}

func TestSSHStoreClosesWhileSessionsStart(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	s := &SSHServer{store: store}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if src := s.source(); src != nil {
					//nolint:errcheck // Queries after close are expected to fail
					src.RecentTasks(1)
				}
			}
		}()
	}
	s.closeStore()
	s.closeStore()
	wg.Wait()

	if s.source() == nil {
		t.Fatal("closing must not drop the store sessions already share")
	}
	if _, err := s.source().RecentTasks(1); err == nil {
		t.Error("Expected queries on a closed index to fail")
	}
}
