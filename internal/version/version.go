// Package version provides build version information for seek.
// Variables are set at build time via ldflags:
//
//	go build -ldflags="-X github.com/jpl-au/seek/internal/version.Version=v1.0.0 \
//	  -X github.com/jpl-au/seek/internal/version.GitCommit=abc123 \
//	  -X github.com/jpl-au/seek/internal/version.BuildTime=2024-01-15T10:30:00Z"
//
// Builds without ldflags fall back to the module version recorded by
// "go install".
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/jpl-au/seek/internal/proc"
)

// Build information. Set via ldflags at build time.
var (
	Version   = "dev"     // Version tag (e.g., "v1.0.0")
	GitCommit = "unknown" // Short git commit hash
	BuildTime = "unknown" // RFC3339 build timestamp
)

// Tools are the external programs the search strategies can delegate to.
var Tools = []string{"git", "grep"}

// Info holds structured version information.
type Info struct {
	BuildTag  string          `json:"build_tag"`  // Version tag (e.g., "v1.0.0" or "dev")
	BuildTime string          `json:"build_time"` // RFC3339 build timestamp
	GitCommit string          `json:"git_commit"` // Short git commit hash
	GoVersion string          `json:"go_version"` // Go runtime version
	Platform  string          `json:"platform"`   // OS and architecture (e.g., "darwin arm64")
	Tools     map[string]bool `json:"tools"`      // External search tools found on PATH
}

// Get returns the current version information.
func Get() Info {
	tools := make(map[string]bool, len(Tools))
	for _, t := range Tools {
		tools[t] = proc.Available(t)
	}
	return Info{
		BuildTag:  Short(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH),
		Tools:     tools,
	}
}

// String returns a formatted version string suitable for display.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build Tag:    %s\n", i.BuildTag)
	fmt.Fprintf(&b, "Build Time:   %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go Version:   %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform:     %s\n", i.Platform)
	fmt.Fprintf(&b, "Git Commit:   %s\n", i.GitCommit)
	for _, t := range Tools {
		state := "not found"
		if i.Tools[t] {
			state = "available"
		}
		fmt.Fprintf(&b, "%-13s %s\n", t+":", state)
	}
	return b.String()
}

// Short returns just the version string (e.g., "v1.0.0" or "dev").
func Short() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}
