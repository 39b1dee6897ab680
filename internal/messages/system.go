package messages

// System messages for platform detection, downloads, installs and dispatch.
const (
	// PlatformUnsupportedFmt indicates no prebuilt binary exists for the host.
	PlatformUnsupportedFmt = "no prebuilt binary offered for '%s'"
	PlatformUnknown        = "unsupported"

	ToolsURLFmt         = "%s URL: %s\n"
	ToolsUnknownToolFmt = "unknown tool %q"

	FetchKindNetwork    = "network"
	FetchKindHTTPStatus = "http status"
	FetchKindArchive    = "archive"
	FetchKindFilesystem = "filesystem"
	FetchKindUnknown    = "unknown"

	FetchCreateRequestFmt    = "create request for %s: %w"
	FetchRequestFailedFmt    = "download %s: %w"
	FetchUnexpectedStatusFmt = "download %s: unexpected status %s"
	FetchReadBodyFmt         = "read %s: %w"
	FetchTooLargeFmt         = "download %s: response too large (limit %d bytes)"
	FetchOpenZipFmt          = "open zip archive from %s: %w"
	FetchEntryNotFoundFmt    = "entry %q not found in archive from %s"
	FetchOpenEntryFmt        = "open zip entry %s: %w"
	FetchCreateDestDirFmt    = "create directory %s: %w"
	FetchCreateTempFileFmt   = "create temp file in %s: %w"
	FetchWriteTempFileFmt    = "write temp file for %s: %w"
	FetchSyncTempFileFmt     = "sync temp file for %s: %w"
	FetchCloseTempFileFmt    = "close temp file for %s: %w"
	FetchRenameTempFileFmt   = "move %s into place: %w"
	FetchCheckExistingFmt    = "check existing %s: %w"

	FetchHTTPErrorFmt     = "HTTP error %d (%s) fetching %s\n"
	FetchNetworkErrorFmt  = "Network error fetching %s: %v\n"
	FetchNetworkHint      = "Are you disconnected from the network? If you are behind a proxy, make sure HTTPS_PROXY is set.\n"
	FetchInsecureWarning  = "warning: TLS certificate verification is disabled (insecure_skip_verify = true)\n"
	FetchActionBannerTop  = "************** ACTION APPRECIATED **************"
	FetchActionBannerFill = "*                                              *"
	FetchActionBannerEnd  = "************************************************"
	FetchActionLine1      = "* If you are *certain* this URL is not blocked *"
	FetchActionLine2      = "* in your region, please alert the project     *"
	FetchActionLine3      = "* maintainers: the URL was likely deprecated.  *"
	FetchActionLine4Fmt   = "* HTTP error %3d                               *"

	InstallAlreadyDownloadedFmt = "[build tools] %s binary for '%s' already downloaded\n"
	InstallDownloadingFmt       = "[build tools] Downloading %s binary for '%s'...\n"
	InstallCreateDirFmt         = "create install directory %s: %w"
	InstallChmodFmt             = "set executable bit on %s: %w"
	InstallVersionFailedFmt     = "[Error] '%s --version' returns an error: %v\n"
	InstallVersionLineFmt       = "              '%s --version': %s\n"
	InstallVersionExplicitFmt   = "%-5s : %s\n"
	InstallFailureSummary       = "Error encountered: cannot download binaries."
	InstallFailureHintFmt       = "To circumvent: see %s section 'Alternative setup'.\n"
	InstallReadmeURL            = "https://github.com/conn-castle/buildtools/blob/main/README.md"
	InstallRemoveWarningFmt     = "warning: remove %s: %v\n"
	InstallOpenLockFmt          = "open lock %s: %w"
	InstallLockFmt              = "lock %s: %w"
	InstallLockTimeoutFmt       = "timed out waiting for lock after %s"

	DispatchSpecRequired      = "dispatch tool spec is required"
	DispatchSystemRequired    = "dispatch system is required"
	DispatchInstallerRequired = "dispatch installer is required"
	DispatchSpawnFailedFmt    = "%s: failed to run %s: %v\n"
)
