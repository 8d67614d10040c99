package config

import (
	"os"

	"golang.org/x/term"
)

// EnableColorOutput checks if colorized output is possible for the stream.
func EnableColorOutput(stream *os.File) bool {
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	return enableVirtualTerminal(stream)
}
