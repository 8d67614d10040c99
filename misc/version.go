// Package misc keeps program identification set at build time.
package misc

import "runtime/debug"

// These are overwritten by the linker (-X) for release builds.
var (
	appName = "hammock"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash provided at build time or, when absent, the
// VCS revision recorded by the go tool.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
