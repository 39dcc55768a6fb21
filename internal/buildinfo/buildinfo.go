// Package buildinfo holds release metadata stamped in at link time.
package buildinfo

// GoReleaser sets these through ldflags; dev builds leave them empty and
// the version command falls back to module build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
