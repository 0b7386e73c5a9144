// Package version provides version information for the google-rss-mcp server.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

const unknownValue = "unknown"

// These variables can be set at build time using -ldflags
var (
	// Version is the version of the binary, set at build time
	Version = "dev"
	// GitCommit is the git commit hash, set at build time
	GitCommit = unknownValue
	// BuildDate is the build date, set at build time
	BuildDate = unknownValue
)

// Info contains version information
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
}

// Get returns version information, falling back to VCS build metadata when
// nothing was injected at build time
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok && info.Version == "dev" {
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.GitCommit == unknownValue && setting.Value != "" {
					info.GitCommit = shortCommit(setting.Value)
				}
			case "vcs.time":
				if info.BuildDate == unknownValue {
					info.BuildDate = setting.Value
				}
			}
		}
	}

	info.Version = strings.TrimPrefix(info.Version, "v")
	return info
}

func shortCommit(revision string) string {
	if len(revision) > 7 {
		return revision[:7]
	}
	return revision
}

// GetVersion returns just the version string
func GetVersion() string {
	return Get().Version
}

// GetFullVersion returns a full version string with commit info
func GetFullVersion() string {
	info := Get()
	if info.GitCommit != unknownValue {
		return info.Version + "-" + info.GitCommit
	}
	return info.Version
}
