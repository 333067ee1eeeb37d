// Package version reports the build identity injected through -ldflags.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Set with -ldflags "-X github.com/locationgenius/dashboard/internal/shared/version.Version=1.2.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time,omitempty"`
	Release   bool   `json:"release"`
}

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a release semver (no prerelease suffix).
func IsRelease(v string) bool {
	n := Normalize(v)
	return semver.IsValid(n) && semver.Prerelease(n) == ""
}

// Get returns the identity of the running binary.
func Get() Info {
	v := Version
	if n := Normalize(v); semver.IsValid(n) {
		v = semver.Canonical(n)
	}
	return Info{
		Version:   v,
		Commit:    Commit,
		BuildTime: BuildTime,
		Release:   IsRelease(Version),
	}
}
