//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// ForbiddenNameChars lists characters which could not be used in file names.
const ForbiddenNameChars = `<>":/\|?*` + string(os.PathSeparator) + string(os.PathListSeparator) + "\x00"

// enableVirtualTerminal turns on VT100 sequence processing in Windows
// console, which is only available starting with Windows 10.
func enableVirtualTerminal(stream *os.File) bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	if v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber"); err != nil || v < 10 {
		return false
	}

	var mode uint32
	if err := windows.GetConsoleMode(windows.Handle(stream.Fd()), &mode); err != nil {
		return false
	}
	const virtualTerminalProcessing uint32 = 0x4
	return windows.SetConsoleMode(windows.Handle(stream.Fd()), mode|virtualTerminalProcessing) == nil
}
