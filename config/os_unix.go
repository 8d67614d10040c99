//go:build !windows

package config

import "os"

// ForbiddenNameChars lists characters which could not be used in file names.
const ForbiddenNameChars = string(os.PathSeparator) + string(os.PathListSeparator) + "\x00"

func enableVirtualTerminal(*os.File) bool {
	return true
}
