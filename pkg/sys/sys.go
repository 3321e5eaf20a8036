// Package sys provides system utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

func isATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsFileATTY determines whether f is a terminal. A nil file is not a
// terminal.
func IsFileATTY(f *os.File) bool {
	return f != nil && isATTY(f.Fd())
}
