package main

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mainbong/restly/internal/logger"
)

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.alert != nil {
			return m.handleAlertKey(msg)
		}
		return m.handleKey(msg)
	case tuiEvent:
		return m.handleEvent(msg)
	case submitDoneMsg:
		m.status = submitStatus(msg.result)
		m.refreshViewport()
		return m, nil
	case configReloadedMsg:
		if msg.err != nil {
			m.status = "config reload failed: " + msg.err.Error()
			return m, nil
		}
		logger.SetLevel(logger.ParseLevel(msg.cfg.LogLevel))
		m.status = "config reloaded"
		return m, nil
	case spinner.TickMsg:
		if !m.composer.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tuiModel, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "ctrl+o":
		if !m.composer.CanShowHeader() {
			return m, nil
		}
		return m, showHeaderCmd(m.composer)
	case "ctrl+p":
		m.pretty = !m.pretty
		m.refreshViewport()
		return m, nil
	}

	switch m.focus {
	case focusURL:
		if isSubmitKey(msg) {
			return m.submit()
		}
	case focusMethod:
		switch msg.String() {
		case "left", "up", "h", "k":
			m.cycleMethod(-1)
		case "right", "down", "l", "j", " ":
			m.cycleMethod(1)
		}
		return m, nil
	case focusContentType:
		switch msg.String() {
		case "left", "up", "h", "k":
			m.cycleContentType(-1)
		case "right", "down", "l", "j", " ":
			m.cycleContentType(1)
		}
		return m, nil
	case focusResponse:
		_, cmd := m.handleViewportKey(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused editor and pushes edits into the composer.
func (m tuiModel) updateFocused(msg tea.Msg) (tuiModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusURL:
		before := m.urlInput.Value()
		m.urlInput, cmd = m.urlInput.Update(msg)
		if value := m.urlInput.Value(); value != before {
			m.composer.SetURL(value)
		}
	case focusBody:
		before := m.bodyInput.Value()
		m.bodyInput, cmd = m.bodyInput.Update(msg)
		if value := m.bodyInput.Value(); value != before {
			m.composer.SetBody(value)
		}
	}
	return m, cmd
}

func (m tuiModel) submit() (tuiModel, tea.Cmd) {
	if !m.composer.CanSubmit() {
		return m, nil
	}
	m.status = "sending..."
	return m, tea.Batch(submitCmd(m.composer), m.spinner.Tick)
}

func (m tuiModel) handleAlertKey(msg tea.KeyMsg) (tuiModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		close(m.alert.done)
		m.alert = nil
		m.adjustViewport()
	}
	return m, nil
}

func (m tuiModel) handleEvent(ev tuiEvent) (tuiModel, tea.Cmd) {
	if ev.alert != nil {
		m.alert = ev.alert
		m.adjustViewport()
	}
	if ev.refresh {
		m.refreshViewport()
	}
	return m, waitForEvent(m.events, m.refresh)
}

func isSubmitKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "enter":
		return true
	default:
		return false
	}
}
