// Package misc keeps build identification helpers shared by all commands.
package misc

import (
	"runtime/debug"
)

// Overwritten by the linker during release builds.
var (
	appName = "deckfit"
	version = "development"
)

// GetAppName returns program name to be used in logs, temporary file names, etc.
func GetAppName() string {
	return appName
}

// GetVersion returns program version set at build time.
func GetVersion() string {
	return version
}

// GetGitHash returns vcs revision recorded in build info, if any.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "unknown"
}
