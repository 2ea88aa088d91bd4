package exporter

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-vault-export/internal/logging"
	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

var (
	ErrStorageRequired   = errors.New("exporter: vault storage is required")
	ErrConverterRequired = errors.New("exporter: document converter is required")
	ErrExportInFlight    = errors.New("exporter: an export run is already in flight")
	ErrUnsupportedFormat = errors.New("exporter: unsupported target format")
)

// DocumentConverter is the conversion capability the orchestrator drives
// once per text document.
type DocumentConverter interface {
	Convert(doc interfaces.VaultFile, ctx interfaces.ConversionContext) string
}

// Config wires the orchestrator's collaborators.
type Config struct {
	Storage   interfaces.VaultStorage
	Converter DocumentConverter
	Renderer  interfaces.RendererRegistry
	Logger    interfaces.Logger
}

// Service walks the vault snapshot, drives the converter per document, and
// delegates output to a sink. Runs are serialized: a second concurrent Run
// returns ErrExportInFlight rather than racing the first over the target.
type Service struct {
	storage   interfaces.VaultStorage
	converter DocumentConverter
	renderer  interfaces.RendererRegistry
	logger    interfaces.Logger
	inFlight  atomic.Bool
}

// NewService builds the export orchestrator from its configuration.
func NewService(cfg Config) (*Service, error) {
	if cfg.Storage == nil {
		return nil, ErrStorageRequired
	}
	if cfg.Converter == nil {
		return nil, ErrConverterRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		storage:   cfg.Storage,
		converter: cfg.Converter,
		renderer:  cfg.Renderer,
		logger:    logger,
	}, nil
}

// Report summarises a filesystem-mode export.
type Report struct {
	RunID     string
	Target    string
	Documents int
	Assets    int
	Skipped   int
}

// Export runs a filesystem-mode export: directories are created under the
// resolved target root and every entry is written through the storage port.
func (s *Service) Export(ctx context.Context, settings interfaces.ExportSettings) (*Report, error) {
	settings = normalizeSettings(settings)
	if settings.Format != interfaces.FormatAsciiDoc {
		return nil, ErrUnsupportedFormat
	}

	target := ResolveTarget(settings.TargetLocation, s.storage.Root())
	sink := newFilesystemSink(s.storage, target)
	outcome, err := s.run(ctx, settings, sink)
	if err != nil {
		return nil, err
	}
	return &Report{
		RunID:     outcome.runID,
		Target:    target,
		Documents: outcome.documents,
		Assets:    outcome.assets,
		Skipped:   outcome.skipped,
	}, nil
}

// ExportToBundle runs a memory-mode export and returns the ordered bundle.
// No directory is created and no file is written.
func (s *Service) ExportToBundle(ctx context.Context, settings interfaces.ExportSettings) (*interfaces.ExportBundle, error) {
	settings = normalizeSettings(settings)
	if settings.Format != interfaces.FormatAsciiDoc {
		return nil, ErrUnsupportedFormat
	}

	sink := newMemorySink()
	outcome, err := s.run(ctx, settings, sink)
	if err != nil {
		return nil, err
	}
	return sink.bundle(interfaces.BundleMetadata{
		RunID:      outcome.runID,
		ExportedAt: outcome.startedAt,
		Settings:   settings,
	}), nil
}

type runOutcome struct {
	runID     string
	startedAt time.Time
	documents int
	assets    int
	skipped   int
}

// run is the single conversion core shared by both modes; the sink is the
// only thing that differs.
func (s *Service) run(ctx context.Context, settings interfaces.ExportSettings, sink exportSink) (*runOutcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrExportInFlight
	}
	defer s.inFlight.Store(false)

	outcome := &runOutcome{
		runID:     uuid.NewString(),
		startedAt: time.Now().UTC(),
	}
	logger := logging.WithFields(s.logger, map[string]any{"run_id": outcome.runID})
	logger.Info("export run starting",
		"target", settings.TargetLocation,
		"include_assets", settings.IncludeAssets,
	)

	files, err := s.storage.List(ctx)
	if err != nil {
		return nil, err
	}

	var documents, assets []interfaces.VaultFile
	for _, file := range files {
		if file.IsTextDocument {
			documents = append(documents, file)
			continue
		}
		assets = append(assets, file)
	}

	targets := make([]string, 0, len(files)+1)
	for _, doc := range documents {
		targets = append(targets, documentTargetPath(doc.Path))
	}
	if settings.IncludeAssets {
		for _, asset := range assets {
			targets = append(targets, asset.Path)
		}
	}
	if err := sink.Prepare(ctx, ancestorDirs(targets)); err != nil {
		return nil, err
	}

	convCtx := interfaces.ConversionContext{
		Settings: settings,
		Renderer: s.renderer,
		Logger:   logger,
	}

	var converted []indexEntry
	for _, doc := range documents {
		targetPath := documentTargetPath(doc.Path)
		docLogger := logging.WithExportContext(s.logger, doc.Path, targetPath, outcome.runID)
		entry := interfaces.ConvertedEntry{
			TargetPath: targetPath,
			Content:    s.converter.Convert(doc, convCtx),
			Kind:       interfaces.EntryKindDocument,
		}
		if err := sink.Put(ctx, entry); err != nil {
			docLogger.Warn("document skipped", "error", err)
			outcome.skipped++
			continue
		}
		converted = append(converted, indexEntry{
			targetPath: targetPath,
			title:      strings.TrimSuffix(doc.Name, "."+doc.Extension),
		})
		outcome.documents++
	}

	if settings.IncludeAssets {
		for _, asset := range assets {
			entry, err := s.assetEntry(ctx, asset)
			if err != nil {
				logger.Warn("asset skipped", "path", asset.Path, "error", err)
				outcome.skipped++
				continue
			}
			if err := sink.Put(ctx, entry); err != nil {
				logger.Warn("asset skipped", "path", asset.Path, "error", err)
				outcome.skipped++
				continue
			}
			outcome.assets++
		}
	}

	// The index is generated last and lists only converted documents.
	index := interfaces.ConvertedEntry{
		TargetPath: IndexFileName,
		Content:    buildIndex(converted, outcome.startedAt),
		Kind:       interfaces.EntryKindDocument,
	}
	if err := sink.Put(ctx, index); err != nil {
		return nil, err
	}
	outcome.documents++

	logger.Info("export run finished",
		"documents", outcome.documents,
		"assets", outcome.assets,
		"skipped", outcome.skipped,
	)
	return outcome, nil
}

// assetEntry reads one non-document file, base64 transport-encoding binary
// payloads so they survive the in-memory bundle representation.
func (s *Service) assetEntry(ctx context.Context, asset interfaces.VaultFile) (interfaces.ConvertedEntry, error) {
	if isBinaryPath(asset.Path) {
		raw, err := s.storage.ReadBinary(ctx, asset.Path)
		if err != nil {
			return interfaces.ConvertedEntry{}, err
		}
		return interfaces.ConvertedEntry{
			TargetPath: asset.Path,
			Content:    base64.StdEncoding.EncodeToString(raw),
			Kind:       interfaces.EntryKindAsset,
			Binary:     true,
		}, nil
	}

	text, err := s.storage.ReadText(ctx, asset.Path)
	if err != nil {
		return interfaces.ConvertedEntry{}, err
	}
	return interfaces.ConvertedEntry{
		TargetPath: asset.Path,
		Content:    text,
		Kind:       interfaces.EntryKindAsset,
	}, nil
}

func normalizeSettings(settings interfaces.ExportSettings) interfaces.ExportSettings {
	if strings.TrimSpace(settings.TargetLocation) == "" {
		settings.TargetLocation = DefaultTargetFolder
	}
	if strings.TrimSpace(settings.Format) == "" {
		settings.Format = interfaces.FormatAsciiDoc
	}
	return settings
}
