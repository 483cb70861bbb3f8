package version

import (
	"runtime/debug"
	"strings"

	"github.com/crazywolf132/fstr"
)

// Version is injected via ldflags on release builds.
var Version string

// Swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get resolves the version to report: the release ldflag when present,
// then the module version for go-install builds, then VCS metadata for
// plain `go build` trees.
func Get() string {
	if Version != "" {
		return strings.TrimPrefix(Version, "v")
	}

	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return "dev"
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		return fstr.F("dev-{}-dirty", revision)
	}
	return fstr.F("dev-{}", revision)
}
