// Package version carries build metadata injected via -ldflags.
package version

var (
	// Version is the release tag, e.g. v1.2.0.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
	// BuildDate is the UTC build date.
	BuildDate = ""
)
