package app

import (
	"fmt"
	"runtime/debug"
)

// Build metadata, overridable with
// -ldflags "-X github.com/heartmarshall/queue-backend/internal/app.Version=v1.4.0".
// Commit and BuildTime fall back to the VCS stamp of the binary.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion formats Version with its commit and build time, as printed
// at server startup and by queuectl version.
func BuildVersion() string {
	commit, built, dirty := vcsStamp()
	if Commit != "" {
		commit = Commit
	}
	if BuildTime != "" {
		built = BuildTime
	}
	return formatVersion(Version, commit, built, dirty)
}

func formatVersion(version, commit, built string, dirty bool) string {
	if commit == "" {
		commit = "unknown"
	} else if len(commit) > 12 {
		commit = commit[:12]
	}
	if dirty {
		commit += "-dirty"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}

func vcsStamp() (revision, at string, modified bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return revision, at, modified
}
