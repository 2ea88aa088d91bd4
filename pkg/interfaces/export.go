package interfaces

import (
	"context"
	"time"
)

// FormatAsciiDoc is the only target markup the exporter currently produces.
const FormatAsciiDoc = "asciidoc"

// ExportSettings carries one export run's validated configuration. Hosts
// build it from persisted preferences, CLI flags, or HTTP request payloads.
type ExportSettings struct {
	// TargetLocation may be absolute or relative. Relative locations are
	// resolved as siblings of the vault root so exports never land inside
	// the source tree.
	TargetLocation string
	// IncludeAssets copies non-document files alongside converted output.
	IncludeAssets bool
	// PreserveDiagramSource keeps diagram code fences literal even when a
	// renderer is available for their language tag.
	PreserveDiagramSource bool
	// Format names the target markup. Only FormatAsciiDoc is supported.
	Format string
}

// ConversionContext bundles the settings with the host capabilities the
// converter may consult. It is passed through the pipeline and never mutated.
type ConversionContext struct {
	Settings ExportSettings
	Renderer RendererRegistry
	Logger   Logger
}

// CanRender reports whether the host can render the supplied fence language.
func (c ConversionContext) CanRender(lang string) bool {
	if c.Renderer == nil {
		return false
	}
	return c.Renderer.CanRender(lang)
}

// EntryKind distinguishes converted documents from verbatim assets.
type EntryKind string

const (
	EntryKindDocument EntryKind = "document"
	EntryKindAsset    EntryKind = "asset"
)

// ConvertedEntry is the unit of export output: a target path plus content.
// Binary asset payloads are base64 transport-encoded and flagged Binary so
// downstream consumers (archive streamer, filesystem sink) can decode them.
type ConvertedEntry struct {
	TargetPath string
	Content    string
	Kind       EntryKind
	Binary     bool
}

// BundleMetadata echoes the run settings alongside run identity and counts.
type BundleMetadata struct {
	RunID      string
	ExportedAt time.Time
	Count      int
	Settings   ExportSettings
}

// ExportBundle is the ordered in-memory result of a memory-mode export. It is
// built fresh per run and never persisted.
type ExportBundle struct {
	Entries  []ConvertedEntry
	Metadata BundleMetadata
}

// Sink receives converted entries in order. The orchestrator is parameterized
// over a Sink and never branches on the export mode internally.
type Sink interface {
	// Put delivers one converted entry. Implementations must treat the
	// entry's TargetPath as relative to the resolved export root.
	Put(ctx context.Context, entry ConvertedEntry) error
}
