// Package version exposes build information stamped in at link time.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Set with -ldflags "-X github.com/clubsaas/clubsaas/internal/shared/version.Version=v1.2.3".
var (
	Version = "dev"
	Commit  = "none"
)

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

// IsRelease reports whether v is a valid semantic version rather than a dev build.
func IsRelease(v string) bool {
	return semver.IsValid(Normalize(v))
}

// String renders the running build as "v1.2.3 (abc1234)".
func String() string {
	v := Version
	if IsRelease(v) {
		v = semver.Canonical(Normalize(v))
	}
	return fmt.Sprintf("%s (%s)", v, Commit)
}
