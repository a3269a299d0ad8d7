package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/am5tools/smucheck/internal/version.Version=v1.16.0 \
//	                   -X github.com/am5tools/smucheck/internal/version.Commit=abc123"
//
// Otherwise they are filled from the embedded VCS info, or fall back to a
// dev version.
var (
	// Version is the semantic version of the checker
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo(debug.ReadBuildInfo)
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo fills Version and Commit from the build's VCS settings.
func fromBuildInfo(read func() (*debug.BuildInfo, bool)) {
	info, ok := read()
	if !ok {
		return
	}

	// a tagged module build carries a real version
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision, modified, vcsTime string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			vcsTime = s.Value
		}
	}

	if Commit == "" && revision != "" {
		Commit = revision
		if len(Commit) > 7 {
			Commit = Commit[:7]
		}
		if modified == "true" {
			Commit += "-dirty"
		}
	}

	if Version == "" && vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Title returns the window title line, e.g. "AM5 SMU Checker v1.16.0".
func Title() string {
	return "AM5 SMU Checker " + ensureV(Version)
}

func ensureV(v string) string {
	if strings.HasPrefix(v, "v") || strings.HasPrefix(v, "dev") {
		return v
	}
	return "v" + v
}
