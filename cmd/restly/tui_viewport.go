package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func newSpinner() spinner.Model {
	spin := spinner.New()
	spin.Spinner = spinner.Spinner{
		Frames: []string{"-", "\\", "|", "/"},
		FPS:    120 * time.Millisecond,
	}
	spin.Style = spinnerStyle
	return spin
}

// fixed rows: title, url, method, content type, body label, response heading, hint
const chromeRows = 7

func (m *tuiModel) adjustViewport() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.viewport.Width = max(10, m.width)
	contentHeight := m.height - chromeRows - m.bodyInput.Height()
	if m.alert != nil {
		contentHeight -= lineCount(renderAlert(m.alert, m.width))
	}
	m.viewport.Height = max(1, contentHeight)
}

func (m *tuiModel) refreshViewport() {
	m.viewport.SetContent(renderResponse(m.composer.ResponseBody(), m.composer.ResponseContentType(), m.pretty, m.viewport.Width))
}

func (m *tuiModel) handleViewportKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "pgup", "pgdown", "up", "down", "k", "j":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return true, cmd
	case "home", "g":
		m.viewport.GotoTop()
		return true, nil
	case "end", "G":
		m.viewport.GotoBottom()
		return true, nil
	default:
		return false, nil
	}
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
