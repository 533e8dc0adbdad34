// Package version holds build metadata injected at link time via
// -ldflags "-X github.com/banshee-data/mmwave.report/internal/version.Version=...".
package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
