// Package version reports build information, set at link time with -ldflags "-X".
package version

//nolint:gochecknoglobals // overridden by the linker
var (
	name    = "scribe"
	version = "dev"
	commit  = "unknown"
)

// Name returns the program name.
func Name() string {
	return name
}

// Version returns the release version.
func Version() string {
	return version
}

// Commit returns the VCS revision the binary was built from.
func Commit() string {
	return commit
}
