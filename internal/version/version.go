// Package version holds the segkit release version.
package version

// Version is the segkit release, recorded in every dataset store it writes.
// Overridden at link time with -ldflags "-X github.com/born-ml/segkit/internal/version.Version=...".
var Version = "0.1.0"
