// Package misc provides program identification values.
package misc

import "runtime/debug"

// Set at build time via -ldflags "-X selgen/misc.version=... -X selgen/misc.gitHash=...".
var (
	appName = "selgen"
	version = "0.0.0-dev"
	gitHash = ""
)

// GetAppName returns the program name.
func GetAppName() string {
	return appName
}

// GetVersion returns the program version.
func GetVersion() string {
	return version
}

// GetGitHash returns the VCS revision the program was built from.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
