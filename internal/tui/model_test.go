// model_test.go

package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/storage"
)

func newModel(t *testing.T, edit func(*storage.Snapshot)) (Model, *storage.MemoryStore) {
	t.Helper()
	cfg := config.Default().Game
	cfg.Seed = 1
	cfg.EncounterRate = 0
	deps := session.NewDeps(cfg).WithRand(battle.NewRand(1))

	snap := storage.DefaultSnapshot("tester")
	if edit != nil {
		edit(&snap)
	}
	store := storage.NewMemoryStore()
	return NewModel(session.New("p1", snap, deps), store, nil), store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, nil)
	m, cmd := update(t, m, key("ctrl+c"))
	if !m.Quitting || cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if m.View() != "再见\n" {
		t.Errorf("Unexpected quit view %q", m.View())
	}
}

func TestInnKey(t *testing.T) {
	m, _ := newModel(t, func(s *storage.Snapshot) {
		s.Player.HP = 10
	})
	m, _ = update(t, m, key("i"))
	if m.Err != nil {
		t.Fatalf("Inn failed: %v", m.Err)
	}
	p := m.Session.Status().Player
	if p.HP != p.MaxHP || len(m.Log) != 1 || !strings.Contains(m.Log[0], "旅馆") {
		t.Errorf("Unexpected inn state hp=%d log=%v", p.HP, m.Log)
	}
}

func TestDungeonBattleRunsToEnd(t *testing.T) {
	m, _ := newModel(t, func(s *storage.Snapshot) {
		s.Position = storage.Position{X: 15, Y: 20}
	})
	m, _ = update(t, m, key("e"))
	if m.Err != nil {
		t.Fatalf("Enter dungeon failed: %v", m.Err)
	}
	if m.mode != modeBattle && m.Session.Battle() != nil {
		t.Fatalf("Expected battle mode, got %d", m.mode)
	}

	for i := 0; i < 500 && m.Session.Battle() != nil; i++ {
		if m.Waiting {
			// 等待中按键被忽略
			before := len(m.Log)
			m, _ = update(t, m, key("1"))
			if len(m.Log) != before || !m.Waiting {
				t.Fatal("Keys must be ignored during the monster turn")
			}
			m, _ = update(t, m, continueMsg{})
			continue
		}
		if m.Session.Battle().Phase() == battle.PhaseEncounter {
			m, _ = update(t, m, key("y"))
			continue
		}
		m, _ = update(t, m, key("1"))
		if m.Err != nil {
			t.Fatalf("Attack failed: %v", m.Err)
		}
	}

	if m.Session.Battle() != nil {
		t.Fatal("Battle did not finish")
	}
	if m.mode != modeExplore || m.Waiting {
		t.Errorf("Expected explore mode after battle, got mode=%d waiting=%v", m.mode, m.Waiting)
	}
	if len(m.Log) == 0 {
		t.Error("Expected battle log")
	}
}

func TestMonsterTurnSchedulesContinue(t *testing.T) {
	m, _ := newModel(t, func(s *storage.Snapshot) {
		s.Position = storage.Position{X: 15, Y: 20}
	})
	m.delay = 0
	m, _ = update(t, m, key("e"))

	for i := 0; i < 50 && m.Session.Battle() != nil && !m.Waiting; i++ {
		if m.Session.Battle().Phase() == battle.PhaseEncounter {
			m, _ = update(t, m, key("y"))
			continue
		}
		var cmd tea.Cmd
		m, cmd = update(t, m, key("3"))
		if m.Waiting && cmd == nil {
			t.Fatal("Waiting without a scheduled continue")
		}
	}
	if m.Session.Battle() != nil && !strings.Contains(m.View(), "怪物行动中") {
		t.Error("Expected the waiting indicator while the monster acts")
	}
}

func TestMenus(t *testing.T) {
	m, _ := newModel(t, func(s *storage.Snapshot) {
		s.Player.StatusPoints = 1
	})

	m, _ = update(t, m, key("u"))
	m, _ = update(t, m, key("1"))
	if m.Err != nil {
		t.Fatalf("Allocate failed: %v", m.Err)
	}
	if m.Session.Status().Player.StatusPoints != 0 {
		t.Error("Expected the status point to be spent")
	}
	m, _ = update(t, m, key("esc"))
	if m.mode != modeExplore {
		t.Error("esc should leave the menu")
	}

	m, _ = update(t, m, key("o"))
	m, _ = update(t, m, key("1"))
	if m.Err != nil {
		t.Fatalf("Accept quest failed: %v", m.Err)
	}
	if !m.Session.Quests()[0].IsAccepted {
		t.Error("Expected the first quest to be accepted")
	}
	if !strings.Contains(m.View(), "进行中") {
		t.Error("Quest view should show the accepted quest")
	}
}

func TestSaveCommand(t *testing.T) {
	m, store := newModel(t, nil)
	m, cmd := update(t, m, key("s"))
	if cmd == nil {
		t.Fatal("Expected a save command")
	}
	m, _ = update(t, m, cmd())
	if m.Err != nil {
		t.Fatalf("Save failed: %v", m.Err)
	}
	if _, err := store.Load(context.Background(), "p1"); err != nil {
		t.Fatalf("Save not stored: %v", err)
	}
}

func TestRenderMap(t *testing.T) {
	m, _ := newModel(t, nil)
	st := m.Session.Status()
	lines := strings.Split(strings.TrimRight(renderMap(m.Session.World(), st.X, st.Y), "\n"), "\n")
	if len(lines) != mapRadius*2+1 {
		t.Fatalf("Expected %d rows, got %d", mapRadius*2+1, len(lines))
	}
	center := []rune(lines[mapRadius])
	if center[mapRadius] != '@' {
		t.Errorf("Expected player at the center, got %q", string(center[mapRadius]))
	}
}

func TestDigit(t *testing.T) {
	cases := []struct {
		key string
		idx int
		ok  bool
	}{
		{"1", 0, true},
		{"9", 8, true},
		{"0", 0, false},
		{"a", 0, false},
		{"12", 0, false},
	}
	for _, c := range cases {
		idx, ok := digit(c.key)
		if idx != c.idx || ok != c.ok {
			t.Errorf("digit(%q) = %d, %v", c.key, idx, ok)
		}
	}
}
