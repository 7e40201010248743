// Package buildinfo carries the version stamped in by the linker:
//
//	-ldflags "-X tickface/internal/buildinfo.Version=v0.3.0 -X tickface/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version, or the commit for untagged builds.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String is the full stamp as printed by -version.
func String() string {
	return "tickface " + Version + " (" + Commit + ", " + Date + ")"
}
