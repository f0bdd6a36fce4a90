// Package version reports the version of the voltcheck binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"

	"github.com/AndreyAkinshin/voltcheck/internal/catalog"
)

// Version is set at build time with
// -ldflags "-X github.com/AndreyAkinshin/voltcheck/internal/version.Version=1.2.3".
var Version = "dev"

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go"`
	Platform  string `json:"platform"`
	// Edition is the regulation edition of the built-in device table.
	Edition string `json:"edition"`
}

// Current returns the version of the running binary. A "dev" build falls
// back to the module version recorded by "go install".
func Current() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// Get collects the build information of the running binary.
func Get() Info {
	info := Info{
		Version:   Current(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Edition:   catalog.DefaultEdition,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Commit = s.Value
				if len(info.Commit) > 12 {
					info.Commit = info.Commit[:12]
				}
			}
		}
	}
	return info
}

// Validate checks that v is a semantic version. A leading "v" is accepted.
func Validate(v string) error {
	if _, err := semver.NewVersion(v); err != nil {
		return fmt.Errorf("invalid semver format: %q", v)
	}
	return nil
}

// Compare compares two semantic versions and returns -1, 0 or 1.
func Compare(a, b string) (int, error) {
	va, err := semver.NewVersion(a)
	if err != nil {
		return 0, fmt.Errorf("invalid semver format: %q", a)
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return 0, fmt.Errorf("invalid semver format: %q", b)
	}
	return va.Compare(vb), nil
}
