package version

const (
	Version = "0.1.0"
)

// VersionString is printed by the command line tool.
var VersionString = "tablelayout " + Version
