// Package vaultexport converts an Obsidian-style note vault into AsciiDoc,
// exporting either to the filesystem or as a streamed tar archive over a
// local HTTP endpoint.
package vaultexport

import (
	"fmt"

	"github.com/goliatone/go-vault-export/internal/commands"
	exportcmd "github.com/goliatone/go-vault-export/internal/commands/export"
	"github.com/goliatone/go-vault-export/internal/converter"
	"github.com/goliatone/go-vault-export/internal/exporter"
	"github.com/goliatone/go-vault-export/internal/logging"
	"github.com/goliatone/go-vault-export/internal/server"
	"github.com/goliatone/go-vault-export/internal/vault"
	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

// ConverterService exports the document conversion contract.
type ConverterService = converter.Service

// ExporterService exports the orchestrator contract.
type ExporterService = exporter.Service

// ExportServer exports the HTTP protocol layer contract.
type ExportServer = server.Server

// ExportVaultCommand exports the command-bus message for triggering exports.
type ExportVaultCommand = exportcmd.ExportVaultCommand

// ExportVaultHandler exports the command-bus handler for triggering exports.
type ExportVaultHandler = exportcmd.ExportVaultHandler

// Option customises module assembly.
type Option func(*Module)

// WithLoggerProvider installs a logger provider; when omitted every module
// logger is a no-op.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.loggers = provider
	}
}

// WithRenderer installs the host's renderer registry consulted for
// code-fence language tags.
func WithRenderer(renderer interfaces.RendererRegistry) Option {
	return func(m *Module) {
		m.renderer = renderer
	}
}

// WithStorage overrides the filesystem-backed vault storage, letting hosts
// supply their own document store.
func WithStorage(storage interfaces.VaultStorage) Option {
	return func(m *Module) {
		m.storage = storage
	}
}

// Module is the top level export runtime façade.
type Module struct {
	cfg      Config
	loggers  interfaces.LoggerProvider
	renderer interfaces.RendererRegistry
	storage  interfaces.VaultStorage

	converter *converter.Service
	exporter  *exporter.Service
	server    *server.Server
}

// New constructs the export module from a validated configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.storage == nil {
		storage, err := vault.New(cfg.VaultRoot, vault.WithLogger(logging.VaultLogger(m.loggers)))
		if err != nil {
			return nil, err
		}
		m.storage = storage
	}

	m.converter = converter.NewService(logging.ConverterLogger(m.loggers))

	svc, err := exporter.NewService(exporter.Config{
		Storage:   m.storage,
		Converter: m.converter,
		Renderer:  m.renderer,
		Logger:    logging.ExporterLogger(m.loggers),
	})
	if err != nil {
		return nil, err
	}
	m.exporter = svc

	if cfg.Server.Enabled {
		srv, err := server.New(svc, server.Config{
			Host:     cfg.Server.Host,
			Port:     cfg.Server.Port,
			Defaults: m.defaultSettings(),
			Logger:   logging.ServerLogger(m.loggers),
		})
		if err != nil {
			return nil, err
		}
		m.server = srv
	}

	return m, nil
}

// Converter returns the document conversion service.
func (m *Module) Converter() *converter.Service { return m.converter }

// Exporter returns the export orchestrator.
func (m *Module) Exporter() *exporter.Service { return m.exporter }

// Server returns the HTTP protocol layer, or an error when the server
// feature is disabled in configuration.
func (m *Module) Server() (*server.Server, error) {
	if m.server == nil {
		return nil, fmt.Errorf("vaultexport: server is disabled in configuration")
	}
	return m.server, nil
}

// ExportHandler returns a command-bus handler bound to this module's
// orchestrator.
func (m *Module) ExportHandler() *exportcmd.ExportVaultHandler {
	return exportcmd.NewExportVaultHandler(m.exporter, commands.CommandLogger(m.loggers, "export"))
}

func (m *Module) defaultSettings() interfaces.ExportSettings {
	return interfaces.ExportSettings{
		TargetLocation:        m.cfg.Export.TargetLocation,
		IncludeAssets:         m.cfg.Export.IncludeAssets,
		PreserveDiagramSource: !m.cfg.Export.RenderDiagrams,
		Format:                interfaces.FormatAsciiDoc,
	}
}
