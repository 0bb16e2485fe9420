package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/gallop/internal/generator"
	"github.com/verte-zerg/gallop/internal/model"
	"github.com/verte-zerg/gallop/internal/results"
	"github.com/verte-zerg/gallop/internal/session"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Numbers = false
	cfg.Symbols = false
	cfg.Uppercase = false
	sess := session.New(cfg, []string{"cat"}, generator.New())
	store := results.NewStore(filepath.Join(t.TempDir(), "results.csv"))
	return NewModel(sess, store, nil)
}

func pressRune(m *Model, r rune) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestModelStartKeyBeginsTest(t *testing.T) {
	m := newTestModel(t)
	if m.sess.Phase() != session.PhaseIdle {
		t.Fatalf("expected idle phase before start")
	}

	pressRune(m, 's')
	if m.sess.Phase() != session.PhaseRunning {
		t.Fatalf("expected running phase after 's', got %v", m.sess.Phase())
	}
}

func TestModelQuitKeysFromIdle(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command for 'q'")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command for Esc")
	}
}

func TestModelEscPausesAndResumes(t *testing.T) {
	m := newTestModel(t)
	pressRune(m, 's')

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.sess.Phase() != session.PhasePaused {
		t.Fatalf("expected paused phase after Esc, got %v", m.sess.Phase())
	}

	pressRune(m, 's')
	if m.sess.Phase() != session.PhaseRunning {
		t.Fatalf("expected running phase after resume, got %v", m.sess.Phase())
	}
}

func TestModelTypingAdvancesCursor(t *testing.T) {
	m := newTestModel(t)
	pressRune(m, 's')

	first := m.sess.Text().RuneAt(0)
	pressRune(m, first)
	if m.sess.Matcher().Cursor() != 1 {
		t.Fatalf("expected cursor 1 after typing, got %d", m.sess.Matcher().Cursor())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.sess.Matcher().Cursor() != 0 {
		t.Fatalf("expected cursor 0 after backspace, got %d", m.sess.Matcher().Cursor())
	}
}

func TestModelIgnoresTypingWhileIdle(t *testing.T) {
	m := newTestModel(t)

	pressRune(m, 'x')
	if m.sess.Phase() != session.PhaseIdle {
		t.Fatalf("expected idle phase, got %v", m.sess.Phase())
	}
}

func TestModelPersistsFinishedResultOnce(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Numbers = false
	cfg.Symbols = false
	cfg.Uppercase = false
	sess := session.New(cfg, []string{"cat"}, generator.New())
	store := results.NewStore(filepath.Join(t.TempDir(), "results.csv"))
	m := NewModel(sess, store, nil)

	pressRune(m, 's')
	for _, r := range m.sess.Text().Runes() {
		pressRune(m, r)
	}
	if m.sess.Phase() != session.PhaseFinished {
		t.Fatalf("expected finished phase, got %v", m.sess.Phase())
	}

	// Extra ticks after finishing must not duplicate the record.
	m.Update(tickMsg(time.Now()))
	m.Update(tickMsg(time.Now()))

	records, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if len(m.historyWPMs) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(m.historyWPMs))
	}
}

func TestModelViewShowsResultsWhenFinished(t *testing.T) {
	m := newTestModel(t)
	pressRune(m, 's')
	for _, r := range m.sess.Text().Runes() {
		pressRune(m, r)
	}

	out := m.View()
	if !strings.Contains(out, "Test completed") {
		t.Fatalf("expected completion screen, got %q", out)
	}
	if !strings.Contains(out, "WPM") {
		t.Fatalf("expected WPM in results, got %q", out)
	}
}

func TestFormatTimeLeft(t *testing.T) {
	if got := formatTimeLeft(30 * time.Second); got != "30 seconds left" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := formatTimeLeft(time.Second); got != "1 second left" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := formatTimeLeft(0); got != "0 seconds left" {
		t.Fatalf("unexpected label: %q", got)
	}
}
