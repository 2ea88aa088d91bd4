package exporter

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

// exportSink extends the public Sink contract with a one-shot directory
// preparation step. The orchestrator calls Prepare exactly once, before any
// Put.
type exportSink interface {
	interfaces.Sink
	Prepare(ctx context.Context, dirs []string) error
}

// filesystemSink writes every entry through the storage port, rooted at the
// resolved export target.
type filesystemSink struct {
	storage interfaces.VaultStorage
	root    string
}

func newFilesystemSink(storage interfaces.VaultStorage, root string) *filesystemSink {
	return &filesystemSink{storage: storage, root: root}
}

func (s *filesystemSink) Prepare(ctx context.Context, dirs []string) error {
	if err := s.storage.EnsureDir(ctx, s.root); err != nil {
		return fmt.Errorf("exporter: create target root %s: %w", s.root, err)
	}
	for _, dir := range dirs {
		if err := s.storage.EnsureDir(ctx, filepath.Join(s.root, filepath.FromSlash(dir))); err != nil {
			return fmt.Errorf("exporter: create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (s *filesystemSink) Put(ctx context.Context, entry interfaces.ConvertedEntry) error {
	target := filepath.Join(s.root, filepath.FromSlash(entry.TargetPath))
	if entry.Binary {
		raw, err := base64.StdEncoding.DecodeString(entry.Content)
		if err != nil {
			return fmt.Errorf("exporter: decode %s: %w", entry.TargetPath, err)
		}
		return s.storage.WriteBinary(ctx, target, raw)
	}
	return s.storage.WriteText(ctx, target, entry.Content)
}

// memorySink accumulates entries into an ordered bundle without touching the
// disk. Duplicate target paths are rejected to keep the bundle invariant.
type memorySink struct {
	entries []interfaces.ConvertedEntry
	seen    map[string]struct{}
}

func newMemorySink() *memorySink {
	return &memorySink{seen: map[string]struct{}{}}
}

func (s *memorySink) Prepare(context.Context, []string) error { return nil }

func (s *memorySink) Put(_ context.Context, entry interfaces.ConvertedEntry) error {
	if _, ok := s.seen[entry.TargetPath]; ok {
		return fmt.Errorf("exporter: duplicate bundle path %s", entry.TargetPath)
	}
	s.seen[entry.TargetPath] = struct{}{}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memorySink) bundle(meta interfaces.BundleMetadata) *interfaces.ExportBundle {
	meta.Count = len(s.entries)
	return &interfaces.ExportBundle{
		Entries:  append([]interfaces.ConvertedEntry(nil), s.entries...),
		Metadata: meta,
	}
}
