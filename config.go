package vaultexport

import "github.com/goliatone/go-vault-export/internal/runtimeconfig"

var (
	ErrVaultRootRequired    = runtimeconfig.ErrVaultRootRequired
	ErrServerPortInvalid    = runtimeconfig.ErrServerPortInvalid
	ErrServerHostRequired   = runtimeconfig.ErrServerHostRequired
	ErrLoggingLevelInvalid  = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid = runtimeconfig.ErrLoggingFormatInvalid
	ErrFormatUnsupported    = runtimeconfig.ErrFormatUnsupported
)

type (
	Config        = runtimeconfig.Config
	ExportConfig  = runtimeconfig.ExportConfig
	ServerConfig  = runtimeconfig.ServerConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the settings used when the host supplies nothing.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfigFile reads a YAML configuration file, layering it over defaults.
func LoadConfigFile(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
