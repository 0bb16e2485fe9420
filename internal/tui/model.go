// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/gallop/internal/results"
	"github.com/verte-zerg/gallop/internal/session"
	statsPkg "github.com/verte-zerg/gallop/internal/stats"
	"github.com/verte-zerg/gallop/internal/store"
)

const tickInterval = 250 * time.Millisecond

type tickMsg time.Time

// Model implements the Bubble Tea typing UI.
type Model struct {
	sess      *session.Session
	results   *results.Store
	charStore *store.Store

	width  int
	height int

	persisted   bool
	warnings    []string
	historyWPMs []float64
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	infoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	warningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// NewModel constructs a typing TUI model. The char store may be nil when the
// database could not be opened; per-character stats are then skipped.
func NewModel(sess *session.Session, resultsStore *results.Store, charStore *store.Store) *Model {
	m := &Model{
		sess:      sess,
		results:   resultsStore,
		charStore: charStore,
	}
	m.loadHistory()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.sess.Tick()
		m.persistIfFinished()
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.sess.Phase() {
	case session.PhaseIdle, session.PhaseFinished:
		switch {
		case msg.Type == tea.KeyRunes && string(msg.Runes) == "s":
			m.startTest()
		case msg.Type == tea.KeyRunes && string(msg.Runes) == "q", msg.Type == tea.KeyEsc:
			return m, tea.Quit
		}
	case session.PhasePaused:
		switch {
		case msg.Type == tea.KeyRunes && string(msg.Runes) == "s":
			m.sess.Resume()
		case msg.Type == tea.KeyRunes && string(msg.Runes) == "q":
			return m, tea.Quit
		}
	case session.PhaseRunning:
		switch msg.Type {
		case tea.KeyEsc:
			m.sess.Pause()
		case tea.KeyCtrlW:
			m.sess.DeleteWord()
		case tea.KeyBackspace, tea.KeyDelete:
			if msg.Alt {
				m.sess.DeleteWord()
			} else {
				m.sess.DeleteRune()
			}
		case tea.KeySpace:
			m.sess.TypeRune(' ')
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.sess.TypeRune(r)
			}
		}
		m.persistIfFinished()
	}
	return m, nil
}

func (m *Model) startTest() {
	m.sess.Start()
	m.persisted = false
	m.warnings = nil
}

// persistIfFinished writes the result exactly once per finished test.
// Persistence failures become warnings; the finished state stands either way.
func (m *Model) persistIfFinished() {
	if m.sess.Phase() != session.PhaseFinished || m.persisted {
		return
	}
	m.persisted = true

	rec, ok := m.sess.Record()
	if !ok {
		return
	}
	m.historyWPMs = append(m.historyWPMs, rec.WPM)

	if !m.sess.Config().SaveResults {
		return
	}
	if err := m.results.Append(rec); err != nil {
		m.warn("failed to save result: %v", err)
	}
	if m.charStore != nil {
		if _, err := m.charStore.InsertSession(context.Background(), rec, m.sess.CharStats()); err != nil {
			m.warn("failed to save character stats: %v", err)
		}
	}
}

func (m *Model) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	m.warnings = append(m.warnings, msg)
	logErrf("%s\n", msg)
}

func (m *Model) loadHistory() {
	records, err := m.results.Load()
	if err != nil {
		m.warn("failed to load result history: %v", err)
		return
	}
	for _, rec := range records {
		m.historyWPMs = append(m.historyWPMs, rec.WPM)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	body := m.renderBody()
	if m.width == 0 || m.height == 0 {
		return header + "\n" + body
	}
	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	return header + "\n" + placed
}

func (m *Model) renderHeader() string {
	left := infoStyle.Render(formatTimeLeft(m.sess.Remaining()))
	right := footerStyle.Render(m.helpText())
	if m.width == 0 {
		return left + "  " + right
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) helpText() string {
	switch m.sess.Phase() {
	case session.PhaseIdle:
		return "press 's' to start the test, 'q' to quit"
	case session.PhaseRunning:
		return "press 'Esc' to pause the test"
	case session.PhasePaused:
		return "press 's' to resume the test, 'q' to quit"
	case session.PhaseFinished:
		return "press 's' for a new test, 'q' to quit"
	}
	return ""
}

func (m *Model) renderBody() string {
	switch m.sess.Phase() {
	case session.PhaseIdle:
		return pendingStyle.Render("Ready when you are.")
	case session.PhaseFinished:
		return m.renderResults()
	default:
		return m.renderText()
	}
}

func (m *Model) renderText() string {
	text := m.sess.Text()
	if text == nil || text.Len() == 0 {
		return ""
	}
	styled := buildStyledRunes(text, m.sess.Matcher())
	if m.width == 0 {
		return renderStyledRunes(styled)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styled, contentWidth)
	return lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
}

func (m *Model) renderResults() string {
	summary, ok := m.sess.Summary()
	if !ok {
		return ""
	}
	lines := []string{
		"Test completed",
		"",
		fmt.Sprintf("WPM: %s", statValueStyle.Render(fmt.Sprintf("%.2f", summary.WPM))),
		fmt.Sprintf("Accuracy: %s", statValueStyle.Render(fmt.Sprintf("%.2f%%", summary.Accuracy*100))),
		fmt.Sprintf("Characters typed: %d", summary.TypedChars),
		fmt.Sprintf("Correct: %d", summary.CorrectChars),
		fmt.Sprintf("Mistakes: %d", summary.MistakeChars),
		fmt.Sprintf("Raw keystrokes: %d (%d correct, %d mistakes)",
			summary.RawTyped, summary.RawCorrect, summary.RawMistakes),
	}
	if len(m.historyWPMs) > 1 {
		width := 40
		spark := statsPkg.Sparkline(statsPkg.Resample(m.historyWPMs, width))
		lines = append(lines, "", footerStyle.Render("WPM history: ")+spark)
	}
	for _, warning := range m.warnings {
		lines = append(lines, "", warningStyle.Render(warning))
	}
	return strings.Join(lines, "\n")
}

func formatTimeLeft(left time.Duration) string {
	secs := int(left.Round(time.Second).Seconds())
	label := "seconds"
	if secs == 1 {
		label = "second"
	}
	return fmt.Sprintf("%d %s left", secs, label)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
