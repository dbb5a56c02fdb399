package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags at build time, e.g.
// go build -ldflags "-X github.com/heartmarshall/healthtrack-backend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion formats the version for the startup log. Without a Commit
// ldflag the VCS revision embedded by the Go toolchain is used, if any.
func BuildVersion() string {
	return formatVersion(Version, Commit, BuildTime, vcsRevision)
}

func formatVersion(version, commit, built string, revision func() string) string {
	if commit == "unknown" {
		if rev := revision(); rev != "" {
			commit = rev
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
