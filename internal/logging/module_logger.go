package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

const (
	rootModule      = "vaultexport"
	converterModule = "vaultexport.converter"
	exporterModule  = "vaultexport.exporter"
	serverModule    = "vaultexport.server"
	vaultModule     = "vaultexport.vault"
)

const (
	fieldDocumentPath = "document_path"
	fieldTargetPath   = "target_path"
	fieldRunID        = "run_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ConverterLogger returns the logger namespace reserved for the conversion pipeline.
func ConverterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, converterModule)
}

// ExporterLogger returns the logger namespace reserved for the export orchestrator.
func ExporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, exporterModule)
}

// ServerLogger returns the logger namespace reserved for the HTTP protocol layer.
func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

// VaultLogger returns the logger namespace reserved for vault storage.
func VaultLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, vaultModule)
}

// WithExportContext enriches the provided logger with common export fields
// such as source path, target path, and run id. Empty values are ignored.
func WithExportContext(logger interfaces.Logger, documentPath, targetPath, runID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(documentPath); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(targetPath); trimmed != "" {
		fields[fieldTargetPath] = trimmed
	}
	if trimmed := strings.TrimSpace(runID); trimmed != "" {
		fields[fieldRunID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
