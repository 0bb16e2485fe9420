// Package histui provides the Bubble Tea results-history interface.
package histui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/gallop/internal/model"
	"github.com/verte-zerg/gallop/internal/results"
)

const (
	barWidth    = 5
	barGap      = 1
	chartHeight = 10
	maxTableLen = 200
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	barLabel      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableHdStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	tableSelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea history UI.
type Model struct {
	records []model.ResultRecord
	errMsg  string

	recordTable table.Model

	width  int
	height int
}

// NewModel constructs a history model over the stored results.
func NewModel(store *results.Store) *Model {
	m := &Model{}
	records, err := store.Load()
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load results: %v", err)
	}
	m.records = records
	m.initTable()
	return m
}

func (m *Model) initTable() {
	columns := []table.Column{
		{Title: "Finished", Width: 16},
		{Title: "WPM", Width: 7},
		{Title: "Accuracy", Width: 8},
		{Title: "Typed", Width: 6},
		{Title: "Mistakes", Width: 8},
		{Title: "Duration", Width: 8},
	}
	records := m.records
	if len(records) > maxTableLen {
		records = records[len(records)-maxTableLen:]
	}
	rows := make([]table.Row, 0, len(records))
	// Newest first in the table; the chart keeps chronological order.
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		rows = append(rows, table.Row{
			rec.FinishedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f", rec.WPM),
			fmt.Sprintf("%.1f%%", rec.Accuracy*100),
			fmt.Sprintf("%d", rec.TypedChars),
			fmt.Sprintf("%d", rec.MistakeChars),
			fmt.Sprintf("%ds", rec.DurationSec),
		})
	}
	height := len(rows)
	if height > 10 {
		height = 10
	}
	if height < 1 {
		height = 1
	}
	styles := table.DefaultStyles()
	styles.Header = tableHdStyle
	styles.Selected = tableSelStyle
	m.recordTable = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithStyles(styles),
		table.WithFocused(true),
	)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC, msg.Type == tea.KeyEsc:
			return m, tea.Quit
		case msg.Type == tea.KeyRunes && string(msg.Runes) == "q":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.recordTable, cmd = m.recordTable.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Previous results"))
	b.WriteString("   ")
	b.WriteString(footerStyle.Render("press 'Esc' to quit"))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.records) == 0 {
		b.WriteString(footerStyle.Render("No results recorded yet."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(renderChart(m.records, m.chartBars()))
	b.WriteString("\n")
	b.WriteString(m.recordTable.View())
	b.WriteString("\n")
	return b.String()
}

func (m *Model) chartBars() int {
	width := m.width
	if width <= 0 {
		width = 80
	}
	bars := (width + barGap) / (barWidth + barGap)
	if bars < 1 {
		bars = 1
	}
	return bars
}

// renderChart draws a WPM bar chart of the most recent records, one labeled
// column per test.
func renderChart(records []model.ResultRecord, maxBars int) string {
	if len(records) > maxBars {
		records = records[len(records)-maxBars:]
	}

	maxWPM := 0.0
	for _, rec := range records {
		if rec.WPM > maxWPM {
			maxWPM = rec.WPM
		}
	}
	if maxWPM <= 0 {
		maxWPM = 1
	}

	heights := make([]int, len(records))
	for i, rec := range records {
		h := int(rec.WPM / maxWPM * float64(chartHeight))
		if h < 1 && rec.WPM > 0 {
			h = 1
		}
		heights[i] = h
	}

	gap := strings.Repeat(" ", barGap)
	fullBar := strings.Repeat("█", barWidth)
	emptyBar := strings.Repeat(" ", barWidth)

	var b strings.Builder
	// Value labels sit on top of each column.
	cells := make([]string, len(records))
	for i, rec := range records {
		cells[i] = fmt.Sprintf("%*.0f", barWidth, rec.WPM)
	}
	b.WriteString(barLabel.Render(strings.Join(cells, gap)))
	b.WriteString("\n")

	for level := chartHeight; level >= 1; level-- {
		for i := range records {
			if i > 0 {
				b.WriteString(gap)
			}
			if heights[i] >= level {
				b.WriteString(barStyle.Render(fullBar))
			} else {
				b.WriteString(emptyBar)
			}
		}
		b.WriteString("\n")
	}

	for i, rec := range records {
		cells[i] = rec.FinishedAt.Format("15:04")
	}
	b.WriteString(barLabel.Render(strings.Join(padCells(cells, barWidth), gap)))
	b.WriteString("\n")
	for i, rec := range records {
		cells[i] = rec.FinishedAt.Format("01/02")
	}
	b.WriteString(barLabel.Render(strings.Join(padCells(cells, barWidth), gap)))
	b.WriteString("\n")
	return b.String()
}

func padCells(cells []string, width int) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		if len(cell) < width {
			cell = cell + strings.Repeat(" ", width-len(cell))
		}
		out[i] = cell
	}
	return out
}
