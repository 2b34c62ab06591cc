package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mainbong/restly/internal/composer"
)

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	parts := []string{
		titleStyle.Render("restly"),
		m.label(focusURL, "URL") + m.urlInput.View(),
		m.label(focusMethod, "Method") + m.methodView(),
		m.label(focusContentType, "Type") + m.contentTypeView(),
		m.label(focusBody, "Body"),
		m.bodyInput.View(),
		m.responseHeading(),
		m.viewport.View(),
	}
	if m.alert != nil {
		parts = append(parts, renderAlert(m.alert, m.width))
	}
	parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Left, m.hint()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m tuiModel) label(area focusArea, text string) string {
	if m.focus == area {
		return activeLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (m tuiModel) methodView() string {
	method := m.composer.Method()
	if method == "" {
		return unsetStyle.Render("(not set)")
	}
	return selectorStyle.Render("< " + string(method) + " >")
}

func (m tuiModel) contentTypeView() string {
	ct := m.composer.ContentType()
	if ct == "" {
		return unsetStyle.Render("(none)")
	}
	return selectorStyle.Render("< " + ct + " >")
}

func (m tuiModel) responseHeading() string {
	heading := responseHeading.Render("Response")
	if m.composer.InFlight() {
		return heading + " " + m.spinner.View()
	}
	if ct := m.composer.ResponseContentType(); ct != "" {
		heading += " " + hintStyle.Render(ct)
	}
	if m.status != "" {
		heading += "  " + statusStyle.Render(m.status)
	}
	return heading
}

func (m tuiModel) hint() string {
	send := hintStyle.Render("Ctrl+S send")
	if !m.composer.CanSubmit() {
		send = disabledStyle.Render("Ctrl+S send")
	}
	header := hintStyle.Render("Ctrl+O headers")
	if !m.composer.CanShowHeader() {
		header = disabledStyle.Render("Ctrl+O headers")
	}
	pretty := "Ctrl+P raw"
	if !m.pretty {
		pretty = "Ctrl+P pretty"
	}
	sep := hintStyle.Render(" | ")
	return hintStyle.Render("Tab focus") + sep + send + sep + header + sep + hintStyle.Render(pretty) + sep + hintStyle.Render("Ctrl+C quit")
}

var (
	_ tea.Model          = tuiModel{}
	_ composer.AlertSink = tuiAlerts{}
)
