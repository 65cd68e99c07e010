package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lineclear/internal/config"
	"github.com/vovakirdan/lineclear/internal/core"
	"github.com/vovakirdan/lineclear/internal/prompt"
	"github.com/vovakirdan/lineclear/internal/render"
	"github.com/vovakirdan/lineclear/internal/scenario"
)

// Layout rows above the board: title, profile line and a gap.
const boardTop = 3

// Model is the Bubble Tea model of the scenario preview. It generates a
// scenario from a seed and loops over its animation; the keys move to
// neighbouring seeds or other difficulties.
type Model struct {
	gen      config.GeneratorConfig
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     PreviewKeyMap
	help     help.Model
	seed     int64
	result   *scenario.Result
	explain  string
	frames   []render.Frame
	frame    int
	paused   bool
	err      error
	quitting bool
	history  bool // History requested, handled by SessionModel
}

// NewModel creates a preview of the generator config starting at cfg.Seed.
func NewModel(gen config.GeneratorConfig, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		gen:    gen,
		config: cfg,
		keys:   DefaultPreviewKeyMap(),
		help:   help.New(),
		seed:   cfg.Seed,
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.screenHeight())
	m.load()
	return m
}

// load generates the scenario of the current seed and lays out its animation.
func (m *Model) load() {
	m.result, m.frames, m.explain, m.frame = nil, nil, "", 0

	sc, err := m.gen.ScenarioConfig(0, m.seed)
	if err != nil {
		m.err = err
		return
	}
	res, err := scenario.Generate(sc)
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.result = res
	m.explain = prompt.Explain(res)
	m.frames = render.Timeline(res, render.DefaultTiming())
}

// screenHeight leaves room for the help bar below the screen buffer.
func (m Model) screenHeight() int {
	helpLines := 1
	if m.help.ShowAll {
		for _, col := range m.keys.FullHelp() {
			helpLines = max(helpLines, len(col))
		}
	}
	return max(m.config.ScreenH-helpLines-1, 1)
}

// Init starts the animation.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(msg.Width, m.screenHeight())
		return m, nil

	case TickMsg:
		if !m.paused && len(m.frames) > 0 {
			m.frame = (m.frame + 1) % len(m.frames)
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, m.screenHeight())

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		m.paused = true
		if len(m.frames) > 0 {
			m.frame = (m.frame + 1) % len(m.frames)
		}

	case key.Matches(msg, m.keys.Restart):
		m.frame = 0
		m.paused = false

	case key.Matches(msg, m.keys.Next):
		m.seed++
		m.load()

	case key.Matches(msg, m.keys.Prev):
		m.seed--
		m.load()

	case key.Matches(msg, m.keys.Difficulty):
		config.ApplyPreset(&m.gen, nextDifficulty(m.gen.Difficulty))
		m.load()

	case key.Matches(msg, m.keys.History):
		m.history = true

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	}

	return m, nil
}

// nextDifficulty cycles easy -> medium -> hard -> easy.
func nextDifficulty(current string) scenario.Difficulty {
	all := scenario.Difficulties()
	d, err := scenario.ParseDifficulty(current)
	if err != nil {
		return all[0]
	}
	i := slices.Index(all, d)
	return all[(i+1)%len(all)]
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".lineclear", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%d_%s.txt", m.gen.Difficulty, m.seed, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, the preview continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// draw renders the current frame into the screen buffer.
func (m *Model) draw() {
	s := m.screen
	s.Clear()
	s.DrawTextCentered(0, "LINECLEAR", core.ColorAccent)

	if m.err != nil {
		s.DrawTextCentered(1, fmt.Sprintf("seed %d", m.seed), core.ColorHint)
		m.drawWrapped(boardTop, m.err.Error(), core.ColorText)
		return
	}

	profile := m.result.Scenario.Profile
	s.DrawTextCentered(1, fmt.Sprintf("%s  seed %d", profile, m.seed), core.ColorHint)

	f := m.frames[m.frame]
	cols, rows := render.BoardSize(profile.Width, profile.Height)
	area := core.NewRect((s.Width()-cols)/2, boardTop, cols, rows)
	if !s.Bounds().Contains(area) {
		s.DrawTextCentered(boardTop, "too small", core.ColorText)
		return
	}
	render.DrawBoard(s, area.X, area.Y, f)

	status := fmt.Sprintf("%s  %d/%d", f.Phase, m.frame+1, len(m.frames))
	if m.paused {
		status += "  paused"
	}
	s.DrawTextCentered(boardTop+rows, status, core.ColorHint)
	m.drawWrapped(boardTop+rows+2, m.explain, core.ColorText)
}

// drawWrapped draws text from row y down, wrapped to the screen width.
func (m *Model) drawWrapped(y int, text string, c core.Color) {
	width := max(m.screen.Width()-4, 10)
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	m.screen.DrawLines(2, y, strings.Split(wrapped, "\n"), c)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Seed returns the seed of the scenario on screen.
func (m Model) Seed() int64 {
	return m.seed
}

// Result returns the scenario on screen, nil if generation failed.
func (m Model) Result() *scenario.Result {
	return m.result
}

// Err returns the generation error of the current seed.
func (m Model) Err() error {
	return m.err
}

// Frame returns the index of the animation frame on screen.
func (m Model) Frame() int {
	return m.frame
}

// Frames returns the length of the animation.
func (m Model) Frames() int {
	return len(m.frames)
}

// Paused reports whether the animation is stopped.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// enableHistory makes the history key available.
func (m *Model) enableHistory() {
	m.keys.History.SetEnabled(true)
}

// takeHistoryRequest reports and resets a pending history request.
func (m *Model) takeHistoryRequest() bool {
	requested := m.history
	m.history = false
	return requested
}
