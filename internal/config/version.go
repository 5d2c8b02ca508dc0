package config

// Version is the tasktrail binary version.
// Set at build time via: -ldflags "-X github.com/tasktrail/tasktrail/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
