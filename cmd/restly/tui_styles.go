package main

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle       = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("245"))
	activeLabelStyle = labelStyle.Copy().Foreground(lipgloss.Color("212")).Bold(true)
	promptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	inputTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorLineStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	selectorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	unsetStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	disabledStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Strikethrough(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	responseHeading  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	responseText     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	spinnerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	alertBox        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1)
	alertTitle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	alertErrorTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	alertActive     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	alertHint       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
