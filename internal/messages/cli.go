package messages

// CLI messages for user-facing commands.
const (
	// RootUse is the CLI command name.
	RootUse = "buildtools"
	// RootShort is the short description for the root command.
	RootShort   = "Download and run prebuilt GN and Ninja binaries"
	RootLongFmt = "Download the latest GN and Ninja binaries from:\n  %s\n  %s\n\nIf no option is given, download the binaries."

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	FlagVersions     = "print version numbers of the downloaded binaries"
	FlagURLs         = "print the download URLs without fetching"
	FlagOnlyIfMust   = "only download if the binary does not exist"
	FlagQuiet        = "suppress progress output"
	FlagRemove       = "remove the downloaded binaries for this platform"
	FlagRemoveAll    = "remove the install root with the binaries of every platform"
	FlagConfig       = "path to a buildtools.toml config file"

	// GNUse is the gn passthrough command name.
	GNUse      = "gn"
	GNShort    = "Run GN, downloading it first if needed"
	NinjaUse   = "ninja"
	NinjaShort = "Run Ninja, downloading it first if needed"

	// InterruptedFmt is printed (in yellow) when the operator cancels a run.
	InterruptedFmt = "%s: Interrupted\n"
)
