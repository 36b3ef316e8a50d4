// Package version holds build information injected with -ldflags.
package version

var (
	// Version is the release of the mcfunction binary.
	Version = "dev"
	// BuildTime is the time when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)
