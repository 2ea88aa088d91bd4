package exportcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const exportVaultMessageType = "vaultexport.export_vault"

// ExportVaultCommand triggers a filesystem-mode export of the configured
// vault. Fields mirror the export settings the orchestrator consumes.
type ExportVaultCommand struct {
	// TargetLocation selects the export destination; relative locations
	// resolve as siblings of the vault root.
	TargetLocation string `json:"target_location"`
	// IncludeAssets copies non-document files alongside converted output.
	IncludeAssets bool `json:"include_assets,omitempty"`
	// RenderDiagrams allows diagram fences to be rendered when a renderer
	// is registered for the language tag.
	RenderDiagrams bool `json:"render_diagrams,omitempty"`
}

// Type implements command.Message.
func (ExportVaultCommand) Type() string { return exportVaultMessageType }

// Validate ensures the target location is usable before handlers execute.
func (cmd ExportVaultCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.TargetLocation, validation.By(func(value any) error {
			location, _ := value.(string)
			if strings.ContainsAny(location, "\x00") {
				return validation.NewError("vaultexport.export_vault.target_invalid", "target location contains invalid characters")
			}
			return nil
		})),
	)
}
