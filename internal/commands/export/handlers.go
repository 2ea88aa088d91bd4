package exportcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-vault-export/internal/commands"
	"github.com/goliatone/go-vault-export/internal/exporter"
	"github.com/goliatone/go-vault-export/internal/logging"
	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

const exportOperation = "export.vault"

// ErrExporterRequired is returned when no orchestrator is bound.
var ErrExporterRequired = errors.New("export command: exporter service is required")

var _ command.Commander[ExportVaultCommand] = (*ExportVaultHandler)(nil)

// ExportVaultHandler drives filesystem-mode exports through the shared
// command handler foundation.
type ExportVaultHandler struct {
	inner *commands.Handler[ExportVaultCommand]
}

// NewExportVaultHandler creates a handler bound to the supplied orchestrator.
func NewExportVaultHandler(service *exporter.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ExportVaultCommand]) *ExportVaultHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ExportVaultCommand) error {
		if service == nil {
			return ErrExporterRequired
		}

		settings := interfaces.ExportSettings{
			TargetLocation:        msg.TargetLocation,
			IncludeAssets:         msg.IncludeAssets,
			PreserveDiagramSource: !msg.RenderDiagrams,
			Format:                interfaces.FormatAsciiDoc,
		}

		report, err := service.Export(ctx, settings)
		if err != nil {
			return err
		}
		baseLogger.Info("vault export complete",
			"run_id", report.RunID,
			"target", report.Target,
			"documents", report.Documents,
			"assets", report.Assets,
			"skipped", report.Skipped,
		)
		return nil
	}

	defaults := []commands.HandlerOption[ExportVaultCommand]{
		commands.WithLogger[ExportVaultCommand](baseLogger),
		commands.WithOperation[ExportVaultCommand](exportOperation),
	}
	return &ExportVaultHandler{
		inner: commands.NewHandler(exec, append(defaults, opts...)...),
	}
}

// Execute implements command.Commander.
func (h *ExportVaultHandler) Execute(ctx context.Context, msg ExportVaultCommand) error {
	return h.inner.Execute(ctx, msg)
}
