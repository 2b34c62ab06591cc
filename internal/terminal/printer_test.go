package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withNoColor(t *testing.T, fn func()) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = prev
	})
	fn()
}

func TestPrinter_Section(t *testing.T) {
	withNoColor(t, func() {
		var buf bytes.Buffer
		p := NewPrinter(&buf, 10)
		p.Section("Body", "hello\n")
		p.Section("Empty", "  ")

		want := "[Body]\nhello\n[Empty]\n(empty)\n"
		if buf.String() != want {
			t.Fatalf("expected %q, got %q", want, buf.String())
		}
	})
}

func TestPrinter_Headers(t *testing.T) {
	withNoColor(t, func() {
		var buf bytes.Buffer
		p := NewPrinter(&buf, 10)
		p.Headers("Content-Type: text/plain\nbroken line")

		output := buf.String()
		if !strings.Contains(output, "Content-Type: text/plain\n") {
			t.Fatalf("expected header line, got:\n%s", output)
		}
		if !strings.Contains(output, "broken line\n") {
			t.Fatalf("expected raw line, got:\n%s", output)
		}
	})
}

func TestPrinter_DividerAndError(t *testing.T) {
	withNoColor(t, func() {
		var buf bytes.Buffer
		p := NewPrinter(&buf, 3)
		p.Divider()
		p.Error("Error", "boom")

		if buf.String() != "───\n[Error] boom\n" {
			t.Fatalf("unexpected output %q", buf.String())
		}
	})
}

func TestNewPrinter_DefaultWidth(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, 0)
	if p.width != 80 {
		t.Fatalf("expected default width 80, got %d", p.width)
	}
}
