package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lineclear/internal/render"
	"github.com/vovakirdan/lineclear/internal/scenario"
	"github.com/vovakirdan/lineclear/internal/storage"
)

// History layout constants
const (
	minWidthForDetail = 90  // Minimum width to show the board detail pane
	maxTasks          = 100 // Max tasks to load
	allDifficulties   = "all"
)

// TaskSource is the read side of the task index.
type TaskSource interface {
	RecentTasks(limit int) ([]storage.TaskRecord, error)
	TasksByDifficulty(difficulty string, limit int) ([]storage.TaskRecord, error)
	Stats() (map[string]*storage.DifficultyStats, error)
}

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next difficulty"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev difficulty"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing the task index.
type HistoryModel struct {
	tabs       []string // "all" followed by every difficulty
	tabCursor  int
	source     TaskSource
	tasks      []storage.TaskRecord
	stats      map[string]*storage.DifficultyStats
	loadErr    error
	table      table.Model
	help       help.Model
	keys       HistoryKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
	embedded   bool // Back returns to the caller instead of ending the program
	showDetail bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(source TaskSource, width, height int) HistoryModel {
	tabs := []string{allDifficulties}
	for _, d := range scenario.Difficulties() {
		tabs = append(tabs, string(d))
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		tabs:       tabs,
		source:     source,
		keys:       DefaultHistoryKeyMap(),
		help:       h,
		width:      width,
		height:     height,
		showDetail: width >= minWidthForDetail,
	}

	m.table = m.createTable()
	m.loadTasks()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Task", Width: 12},
		{Title: "Level", Width: 7},
		{Title: "Seed", Width: 8},
		{Title: "Lines", Width: 5},
		{Title: "Date", Width: 12},
	}

	// Widen the seed column if we have more space
	tableWidth := m.width - 4 // Margins
	if m.showDetail {
		tableWidth = m.width / 2
	}
	if extra := tableWidth - 54; extra > 0 {
		columns[2].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, stats, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadTasks loads the tasks of the selected tab.
func (m *HistoryModel) loadTasks() {
	m.tasks, m.loadErr = nil, nil
	if m.source == nil {
		m.updateTableRows()
		return
	}

	tab := m.tabs[m.tabCursor]
	if tab == allDifficulties {
		m.tasks, m.loadErr = m.source.RecentTasks(maxTasks)
	} else {
		m.tasks, m.loadErr = m.source.TasksByDifficulty(tab, maxTasks)
	}
	if m.loadErr == nil {
		m.stats, m.loadErr = m.source.Stats()
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded tasks.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.tasks))
	for i, t := range m.tasks {
		rows[i] = table.Row{
			t.TaskID,
			t.Difficulty,
			fmt.Sprintf("%d", t.Seed),
			fmt.Sprintf("%d", t.LinesCleared),
			t.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.loadTasks()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tabCursor--
			if m.tabCursor < 0 {
				m.tabCursor = len(m.tabs) - 1
			}
			m.loadTasks()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetail = m.width >= minWidthForDetail
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("GENERATED TASKS", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showDetail {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", tableStyle.Render(m.renderDetail())))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableRendered))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the difficulty tabs.
func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, name := range m.tabs {
		if i == m.tabCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// statsLine summarizes the selected tab.
func (m HistoryModel) statsLine() string {
	var count, clearing int
	var lines int64
	for d, s := range m.stats {
		if tab := m.tabs[m.tabCursor]; tab != allDifficulties && tab != d {
			continue
		}
		count += s.TaskCount
		clearing += s.ClearingTasks
		lines += s.TotalLines
	}
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("%d tasks, %d%% clear a line, %.1f lines on average",
		count, clearing*100/count, float64(lines)/float64(count))
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load tasks:\n" + m.loadErr.Error())
	}
	if len(m.tasks) == 0 {
		return emptyStyle.Render("No tasks recorded yet.\nRun 'lineclear generate' to create some!")
	}

	return m.table.View()
}

// renderDetail renders the initial and final boards of the selected task.
func (m HistoryModel) renderDetail() string {
	t := m.Selected()
	if t == nil {
		return ""
	}

	initial := RenderScreen(render.Screen(render.Frame{Board: t.Initial}))
	final := RenderScreen(render.Screen(render.Frame{Board: t.Final}))
	boards := lipgloss.JoinHorizontal(lipgloss.Center, initial, "  ->  ", final)

	caption := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render(fmt.Sprintf("%s  %s", t.Placements, t.OutputDir))
	return lipgloss.JoinVertical(lipgloss.Left, boards, caption)
}

// Selected returns the task under the cursor, nil when the list is empty.
func (m HistoryModel) Selected() *storage.TaskRecord {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.tasks) {
		return nil
	}
	return &m.tasks[i]
}

// Tab returns the selected difficulty tab, "all" for every difficulty.
func (m HistoryModel) Tab() string {
	return m.tabs[m.tabCursor]
}

// IsGoingBack returns true if user wants to go back.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the history browser.
func RunHistory(source TaskSource, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
