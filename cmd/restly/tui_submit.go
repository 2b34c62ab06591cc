package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mainbong/restly/internal/composer"
	"github.com/mainbong/restly/internal/logger"
)

// tuiAlerts is the composer's alert sink while the screen is running.
// Alert blocks until the user dismisses the dialog.
type tuiAlerts struct {
	events chan<- tuiEvent
}

func (a tuiAlerts) Alert(ctx context.Context, message, title, ack string) error {
	req := &alertRequest{message: message, title: title, ack: ack, done: make(chan struct{})}
	select {
	case a.events <- tuiEvent{alert: req}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func submitCmd(c *composer.Composer) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{result: c.Submit(context.Background())}
	}
}

func showHeaderCmd(c *composer.Composer) tea.Cmd {
	return func() tea.Msg {
		if err := c.ShowHeader(context.Background()); err != nil {
			logger.Warn("failed to show response header: %v", err)
		}
		return nil
	}
}

func waitForEvent(events <-chan tuiEvent, refresh <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-events:
			return ev
		case <-refresh:
			return tuiEvent{refresh: true}
		}
	}
}

func submitStatus(result composer.Result) string {
	switch result.Kind {
	case composer.ResultOK:
		return fmt.Sprintf("received %d bytes", len(result.Response.Body))
	case composer.ResultBusy:
		return "request already in progress"
	default:
		return "request failed: " + result.Kind.String()
	}
}
