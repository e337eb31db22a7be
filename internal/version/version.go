// Package version carries build metadata, set at link time with
// -ldflags "-X github.com/MrSnakeDoc/navs/internal/version.Version=v0.1.0".
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "dev"             // ex: v0.1.0
	Commit    = "none"            // ex: abcd123
	BuildDate = "unknown"         // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version() // go version
)

func init() {
	fillFromBuildInfo(debug.ReadBuildInfo())
}

// fillFromBuildInfo uses the VCS stamp embedded by the go tool when the
// values were not set with -ldflags.
func fillFromBuildInfo(info *debug.BuildInfo, ok bool) {
	if !ok || info == nil {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && len(s.Value) >= 7 {
				Commit = s.Value[:7]
			}
		case "vcs.time":
			if BuildDate == "unknown" {
				BuildDate = s.Value
			}
		}
	}
}

// String is a one-line summary for startup logs.
func String() string {
	return fmt.Sprintf("navs %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
