// Package runtimeconfig defines the module configuration surface: export
// defaults persisted by the host, the HTTP listener options, and logging.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVaultRootRequired    = errors.New("vault-export config: vault root is required")
	ErrServerPortInvalid    = errors.New("vault-export config: server port must be between 1 and 65535")
	ErrServerHostRequired   = errors.New("vault-export config: server host is required when the server is enabled")
	ErrLoggingLevelInvalid  = errors.New("vault-export config: logging level is invalid")
	ErrLoggingFormatInvalid = errors.New("vault-export config: logging format is invalid")
	ErrFormatUnsupported    = errors.New("vault-export config: only the asciidoc format is supported")
)

// Config aggregates the module's settings. Hosts persist it between sessions
// and hand a validated copy to the module on construction.
type Config struct {
	VaultRoot string        `yaml:"vault_root"`
	Export    ExportConfig  `yaml:"export"`
	Server    ServerConfig  `yaml:"server"`
	Logging   LoggingConfig `yaml:"logging"`
}

// ExportConfig captures the last-used export settings the host persists.
type ExportConfig struct {
	// TargetLocation is the default export destination; relative values
	// resolve as siblings of the vault root.
	TargetLocation string `yaml:"target_location"`
	// IncludeAssets enables asset copying by default.
	IncludeAssets bool `yaml:"include_assets"`
	// RenderDiagrams asks the host renderer for diagram fences. When
	// false, diagram source is always preserved literally.
	RenderDiagrams bool `yaml:"render_diagrams"`
	// Format names the target markup; empty means asciidoc.
	Format string `yaml:"format"`
}

// ServerConfig captures the HTTP protocol layer options.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// LoggingConfig mirrors the go-logger adapter options.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultConfig returns the settings used when the host supplies nothing.
func DefaultConfig() Config {
	return Config{
		Export: ExportConfig{
			TargetLocation: "asciidoc-export",
			IncludeAssets:  true,
			Format:         "asciidoc",
		},
		Server: ServerConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    8989,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.VaultRoot) == "" {
		return ErrVaultRootRequired
	}
	if format := strings.TrimSpace(cfg.Export.Format); format != "" && format != "asciidoc" {
		return fmt.Errorf("%w: %s", ErrFormatUnsupported, format)
	}
	if cfg.Server.Enabled {
		if strings.TrimSpace(cfg.Server.Host) == "" {
			return ErrServerHostRequired
		}
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("%w: %d", ErrServerPortInvalid, cfg.Server.Port)
		}
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
