package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lineclear/internal/config"
	"github.com/vovakirdan/lineclear/internal/core"
)

// SessionModel manages the full session flow: preview -> history -> preview.
// This is the top-level model used for SSH sessions and the local preview.
type SessionModel struct {
	source    TaskSource
	config    core.RuntimeConfig
	preview   Model
	history   HistoryModel
	inHistory bool
	quitting  bool
}

// NewSessionModel creates a new session model. History is only reachable
// when source is non-nil.
func NewSessionModel(gen config.GeneratorConfig, cfg core.RuntimeConfig, source TaskSource) SessionModel {
	preview := NewModel(gen, cfg)
	if source != nil {
		preview.enableHistory()
	}
	return SessionModel{
		source:  source,
		config:  cfg,
		preview: preview,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.preview.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.inHistory {
		return m.updateHistory(msg)
	}
	return m.updatePreview(msg)
}

// updatePreview handles updates when the preview is shown.
func (m SessionModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.preview.Update(msg)
	if preview, ok := newModel.(Model); ok {
		m.preview = preview
	}

	if m.preview.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.preview.takeHistoryRequest() && m.source != nil {
		m.history = NewHistoryModel(m.source, m.config.ScreenW, m.config.ScreenH)
		m.history.embedded = true
		m.inHistory = true
	}

	return m, cmd
}

// updateHistory handles updates when the history is shown. Ticks keep
// flowing to the preview so its animation loop survives the detour.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m.updatePreview(msg)
	}
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		newPreview, _ := m.preview.Update(msg)
		if preview, ok := newPreview.(Model); ok {
			m.preview = preview
		}
	}

	newModel, cmd := m.history.Update(msg)
	if history, ok := newModel.(HistoryModel); ok {
		m.history = history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.inHistory = false
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inHistory {
		return m.history.View()
	}

	return m.preview.View()
}

// InHistory reports whether the history browser is shown.
func (m SessionModel) InHistory() bool {
	return m.inHistory
}

// RunSession starts a preview session with optional history browsing.
func RunSession(gen config.GeneratorConfig, cfg core.RuntimeConfig, source TaskSource) error {
	p := tea.NewProgram(
		NewSessionModel(gen, cfg, source),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
