// Package version exposes the build version reported at startup.
package version

import (
	"runtime/debug"
)

// Version is overridable with ldflags at build time.
var Version = "dev"

// String returns the version, with the short VCS revision when available.
func String() string {
	revision := ""
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				revision = setting.Value
			}
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision == "" {
		return Version
	}
	return Version + " (" + revision + ")"
}
