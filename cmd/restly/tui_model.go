package main

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mainbong/restly/internal/composer"
	"github.com/mainbong/restly/internal/config"
)

type focusArea int

const (
	focusURL focusArea = iota
	focusMethod
	focusContentType
	focusBody
	focusResponse
	focusCount
)

// tuiEvent is everything the composer side pushes into the program.
type tuiEvent struct {
	refresh bool
	alert   *alertRequest
}

type alertRequest struct {
	message string
	title   string
	ack     string
	done    chan struct{}
}

type submitDoneMsg struct {
	result composer.Result
}

type configReloadedMsg struct {
	cfg *config.Config
	err error
}

type tuiModel struct {
	composer  *composer.Composer
	events    chan tuiEvent
	refresh   chan struct{}
	urlInput  textinput.Model
	bodyInput textarea.Model
	viewport  viewport.Model
	spinner   spinner.Model
	focus     focusArea
	methodIdx int
	ctypeIdx  int
	alert     *alertRequest
	pretty    bool
	status    string
	width     int
	height    int
}

func newTUIModel(c *composer.Composer, events chan tuiEvent, cfg *config.Config) tuiModel {
	urlInput := textinput.New()
	urlInput.Prompt = ""
	urlInput.Placeholder = "https://api.example.com/resource"
	urlInput.TextStyle = inputTextStyle
	urlInput.PlaceholderStyle = placeholderStyle
	urlInput.Focus()

	body := textarea.New()
	body.Placeholder = "request body"
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.Prompt = "│ "
	body.FocusedStyle = textarea.Style{
		Prompt:      promptStyle,
		Text:        inputTextStyle,
		Placeholder: placeholderStyle,
		CursorLine:  cursorLineStyle,
	}
	body.BlurredStyle = textarea.Style{
		Prompt:      promptStyle,
		Text:        inputTextStyle,
		Placeholder: placeholderStyle,
	}
	body.Blur()

	m := tuiModel{
		composer:  c,
		events:    events,
		refresh:   make(chan struct{}, 1),
		urlInput:  urlInput,
		bodyInput: body,
		viewport:  viewport.New(0, 0),
		spinner:   newSpinner(),
		methodIdx: -1,
		ctypeIdx:  -1,
		pretty:    true,
	}
	m.applyDefaults(cfg)

	// Changes coalesce into one pending refresh. Request fields are edited
	// from Update itself, so this must never block.
	refresh := m.refresh
	c.Subscribe(func(composer.Field) {
		select {
		case refresh <- struct{}{}:
		default:
		}
	})
	return m
}

func (m *tuiModel) applyDefaults(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if method, err := composer.ParseMethod(cfg.DefaultMethod); err == nil {
		m.setMethodIndex(indexOfMethod(method))
	}
	if cfg.DefaultContentType != "" {
		m.setContentTypeIndex(indexOfContentType(cfg.DefaultContentType))
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events, m.refresh))
}

func (m *tuiModel) setMethodIndex(idx int) {
	methods := composer.Methods()
	if idx < 0 || idx >= len(methods) {
		m.methodIdx = -1
		m.composer.SetMethod("")
		return
	}
	m.methodIdx = idx
	m.composer.SetMethod(methods[idx])
}

func (m *tuiModel) setContentTypeIndex(idx int) {
	types := composer.ContentTypes()
	if idx < 0 || idx >= len(types) {
		m.ctypeIdx = -1
		m.composer.SetContentType("")
		return
	}
	m.ctypeIdx = idx
	m.composer.SetContentType(types[idx])
}

// cycleMethod moves through the method list; the unset state is only the starting point.
func (m *tuiModel) cycleMethod(delta int) {
	n := len(composer.Methods())
	if m.methodIdx < 0 {
		m.setMethodIndex(0)
		return
	}
	m.setMethodIndex((m.methodIdx + delta + n) % n)
}

// cycleContentType includes a "none" slot at -1.
func (m *tuiModel) cycleContentType(delta int) {
	n := len(composer.ContentTypes()) + 1
	pos := (m.ctypeIdx + 1 + delta + n) % n
	m.setContentTypeIndex(pos - 1)
}

func (m *tuiModel) setFocus(f focusArea) {
	m.focus = f
	m.urlInput.Blur()
	m.bodyInput.Blur()
	switch f {
	case focusURL:
		m.urlInput.Focus()
	case focusBody:
		m.bodyInput.Focus()
	}
}

func (m *tuiModel) resize() {
	m.urlInput.Width = max(10, m.width-12)
	m.bodyInput.SetWidth(max(10, m.width-2))
	m.bodyInput.SetHeight(bodyHeight(m.height))
	m.adjustViewport()
	m.refreshViewport()
}

func bodyHeight(height int) int {
	return min(8, max(2, height/5))
}

func indexOfMethod(method composer.Method) int {
	for i, candidate := range composer.Methods() {
		if candidate == method {
			return i
		}
	}
	return -1
}

func indexOfContentType(contentType string) int {
	for i, candidate := range composer.ContentTypes() {
		if candidate == contentType {
			return i
		}
	}
	return -1
}
