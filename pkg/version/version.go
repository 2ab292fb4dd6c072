package version

// Build holds the build identifier, injected via -ldflags. Default "dev".
var Build = "dev"

// String is the version line printed by wgmesh --version.
func String() string {
	return "wgmesh " + Build
}
