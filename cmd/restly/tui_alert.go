package main

import (
	"strings"

	"github.com/mainbong/restly/internal/composer"
)

func renderAlert(req *alertRequest, width int) string {
	if req == nil {
		return ""
	}
	title := req.title
	if title == "" {
		title = "Notice"
	}
	ack := req.ack
	if ack == "" {
		ack = "OK"
	}
	titleStyle := alertTitle
	if title == composer.TitleError {
		titleStyle = alertErrorTitle
	}

	body := strings.TrimRight(req.message, "\n")
	if width > 0 {
		body = strings.Join(wrapLines(body, min(width-6, 76)), "\n")
	}
	content := titleStyle.Render(title) + "\n" + body + "\n" +
		alertActive.Render("[ "+ack+" ]") + "\n" + alertHint.Render("Enter/Esc to dismiss")
	if width <= 0 {
		return alertBox.Render(content)
	}
	return alertBox.Width(min(width-2, 80)).Render(content)
}
