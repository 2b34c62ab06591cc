package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Printer writes a captured response as labelled sections.
type Printer struct {
	writer io.Writer
	width  int
}

// NewPrinter creates a printer that writes to the provided writer.
func NewPrinter(writer io.Writer, width int) *Printer {
	if width <= 0 {
		width = 80
	}
	return &Printer{writer: writer, width: width}
}

// Section prints a titled block. Empty content prints a placeholder line.
func (p *Printer) Section(title, content string) {
	color.New(color.FgCyan, color.Bold).Fprintf(p.writer, "[%s]\n", title)
	if strings.TrimSpace(content) == "" {
		color.New(color.FgHiBlack).Fprintln(p.writer, "(empty)")
		return
	}
	fmt.Fprintln(p.writer, strings.TrimRight(content, "\n"))
}

// Headers prints "Name: value" lines with the name highlighted.
func (p *Printer) Headers(summary string) {
	color.New(color.FgCyan, color.Bold).Fprintln(p.writer, "[Headers]")
	if strings.TrimSpace(summary) == "" {
		color.New(color.FgHiBlack).Fprintln(p.writer, "(empty)")
		return
	}
	name := color.New(color.FgGreen)
	for _, line := range strings.Split(summary, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			fmt.Fprintln(p.writer, line)
			continue
		}
		fmt.Fprintf(p.writer, "%s:%s\n", name.Sprint(key), value)
	}
}

// Divider prints a horizontal rule across the configured width.
func (p *Printer) Divider() {
	fmt.Fprintln(p.writer, strings.Repeat("─", p.width))
}

// Error prints an alert-style message.
func (p *Printer) Error(title, message string) {
	color.New(color.FgRed, color.Bold).Fprintf(p.writer, "[%s] ", title)
	fmt.Fprintln(p.writer, message)
}
