package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFromBuildInfo(t *testing.T) {
	Version, Commit, BuildDate = "dev", "none", "unknown"
	t.Cleanup(func() { Version, Commit, BuildDate = "dev", "none", "unknown" })

	fillFromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}, true)

	if Version != "v1.2.3" || Commit != "0123456" || BuildDate != "2026-01-02T03:04:05Z" {
		t.Errorf("got %s/%s/%s", Version, Commit, BuildDate)
	}
}

func TestFillFromBuildInfo_KeepsLinkerValues(t *testing.T) {
	Version, Commit, BuildDate = "v9.9.9", "abcdef0", "yesterday"
	t.Cleanup(func() { Version, Commit, BuildDate = "dev", "none", "unknown" })

	fillFromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
	}, true)

	if Version != "v9.9.9" || Commit != "abcdef0" || BuildDate != "yesterday" {
		t.Errorf("linker values overwritten: %s/%s/%s", Version, Commit, BuildDate)
	}
}

func TestString(t *testing.T) {
	if s := String(); !strings.HasPrefix(s, "navs ") || !strings.Contains(s, GoVersion) {
		t.Errorf("String() = %q", s)
	}
}
