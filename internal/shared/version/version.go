package version

// Version information for the swiftslice CLI.
// These variables can be overridden at build time via -ldflags.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

// String renders the version with the commit and build date when known.
func String() string {
	out := "swiftslice " + Version
	if GitCommit != "" {
		out += " (" + GitCommit
		if BuildDate != "" {
			out += ", " + BuildDate
		}
		out += ")"
	}
	return out
}
