// Package version exposes the build version of the backend.
package version

// Version is the current release of the FundBank backend.
// Overridden at build time via -ldflags "-X .../internal/version.Version=...".
var Version = "1.0.0"
