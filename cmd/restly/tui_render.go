package main

import (
	"strings"

	"github.com/mainbong/restly/internal/preview"
)

func renderResponse(body, contentType string, pretty bool, width int) string {
	if width <= 0 {
		width = 80
	}
	if body == "" {
		return placeholderStyle.Render("(no response)")
	}
	if pretty {
		body = preview.Render(contentType, body)
	}

	var b strings.Builder
	for _, line := range wrapLines(body, width) {
		b.WriteString(responseText.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func wrapLines(content string, width int) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		out = append(out, wrapText(expandTabs(line), width)...)
	}
	return out
}

func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", "    ")
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var line []rune
	count := 0
	for _, r := range []rune(text) {
		line = append(line, r)
		count++
		if count >= width {
			lines = append(lines, string(line))
			line = line[:0]
			count = 0
		}
	}
	if len(line) > 0 || len(lines) == 0 {
		lines = append(lines, string(line))
	}
	return lines
}
