// Package version exposes build metadata for the About dialog and logs.
package version

// Stamped at link time via -ldflags; the defaults cover plain `go build`.
var (
	Version = "0.1.0"

	BuildTime = "unknown"

	GitCommit = "unknown"
)
