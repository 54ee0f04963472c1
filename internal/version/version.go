// Package version provides build version information for slashline.
// The variables are meant to be overridden at build time via -ldflags.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

var (
	// Version is the semantic version of the application.
	Version = "0.1.0"

	// GitCommit is the git commit hash the binary was built from.
	GitCommit = "unknown"

	// BuildDate is the date the binary was built.
	BuildDate = "unknown"
)

// Info is the full version report shown by the version command.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the version info for the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Short returns the bare version string.
func Short() string {
	return Version
}

// Validate checks that the compiled-in version is valid semver. Build
// tooling calls this to catch a bad -ldflags value early.
func Validate() error {
	if _, err := semver.NewVersion(Version); err != nil {
		return fmt.Errorf("invalid version %q: %w", Version, err)
	}
	return nil
}

// IsAtLeast reports whether the running version satisfies the given minimum.
// A malformed argument or compiled-in version reports false.
func IsAtLeast(minimum string) bool {
	current, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	constraint, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return false
	}
	return constraint.Check(current)
}

// String renders the multi-line version report.
func (i Info) String() string {
	return fmt.Sprintf("slashline v%s\n  commit: %s\n  built: %s\n  go: %s (%s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
