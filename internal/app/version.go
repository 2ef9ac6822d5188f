package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit and BuildTime are set via ldflags, e.g.
//
//	go build -ldflags "-X github.com/heartmarshall/megamarket-backend/internal/app.Version=1.0.0" ./cmd/server
//
// Commit and BuildTime fall back to the VCS stamp embedded by the go tool.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns the version string reported in startup logs and /health.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		commit, built = vcsStamp(info.Settings, commit, built)
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, built)
}

func vcsStamp(settings []debug.BuildSetting, commit, built string) (string, string) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" && len(s.Value) >= 12 {
				commit = s.Value[:12]
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		}
	}
	return commit, built
}
