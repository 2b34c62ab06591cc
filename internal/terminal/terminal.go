package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
)

// HasTTY reports whether both stdin and stdout are connected to a terminal.
func HasTTY() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// isTerminal also accepts Cygwin/MSYS pseudo terminals on Windows.
func isTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
