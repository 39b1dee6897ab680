package messages

// Config messages for loading buildtools.toml.
const (
	ConfigReadFailedFmt        = "read config %s: %w"
	ConfigInvalidFmt           = "invalid config %s: %w"
	ConfigResolveUserDirFmt    = "resolve user %s dir: %w"
	ConfigExpandInstallRootFmt = "expand install_root %q: %w"
	ConfigMissingPlaceholder   = "%s url %q must contain the {platform} placeholder"
	ConfigInvalidMaxBytes      = "max_download_bytes must be positive"
)
