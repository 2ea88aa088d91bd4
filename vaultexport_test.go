package vaultexport

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

func seedVault(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "vault")

	write := func(rel, content string) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	write("notes/First Note.md", "# First\n\nSee [[Second Note]].\n")
	write("notes/Second Note.md", "# Second\n\nBack to [[First Note|first]].\n")
	write("attachments/shot.png", "\x89PNG")

	return root
}

func newModule(t *testing.T, cfg Config, opts ...Option) *Module {
	t.Helper()
	module, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module
}

func TestNew_RequiresValidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("empty config must fail validation")
	}
}

func TestModule_ExportToBundle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VaultRoot = seedVault(t)
	module := newModule(t, cfg)

	bundle, err := module.Exporter().ExportToBundle(context.Background(), interfaces.ExportSettings{
		IncludeAssets: true,
	})
	if err != nil {
		t.Fatalf("ExportToBundle: %v", err)
	}

	paths := make([]string, 0, len(bundle.Entries))
	for _, entry := range bundle.Entries {
		paths = append(paths, entry.TargetPath)
	}
	want := []string{
		"notes/First Note.adoc",
		"notes/Second Note.adoc",
		"attachments/shot.png",
		"index.adoc",
	}
	if len(paths) != len(want) {
		t.Fatalf("bundle paths = %#v, want %#v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("bundle path %d = %q, want %q", i, paths[i], want[i])
		}
	}

	first := bundle.Entries[0]
	if !strings.HasPrefix(first.Content, "= First Note\n") {
		t.Fatalf("converted document header wrong:\n%s", first.Content)
	}
	if !strings.Contains(first.Content, "xref:second-note.adoc[Second Note]") {
		t.Fatalf("wikilink not resolved:\n%s", first.Content)
	}
}

func TestModule_FilesystemExport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VaultRoot = seedVault(t)
	module := newModule(t, cfg)

	report, err := module.Exporter().Export(context.Background(), interfaces.ExportSettings{
		TargetLocation: "exported",
		IncludeAssets:  true,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	wantTarget := filepath.Join(filepath.Dir(cfg.VaultRoot), "exported")
	if report.Target != wantTarget {
		t.Fatalf("target = %q, want %q", report.Target, wantTarget)
	}

	data, err := os.ReadFile(filepath.Join(wantTarget, "notes", "First Note.adoc"))
	if err != nil {
		t.Fatalf("converted document missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "= First Note\n") {
		t.Fatalf("converted document content wrong:\n%s", data)
	}

	asset, err := os.ReadFile(filepath.Join(wantTarget, "attachments", "shot.png"))
	if err != nil {
		t.Fatalf("asset missing: %v", err)
	}
	if string(asset) != "\x89PNG" {
		t.Fatalf("asset bytes corrupted: %q", asset)
	}

	if _, err := os.Stat(filepath.Join(wantTarget, "index.adoc")); err != nil {
		t.Fatalf("index missing: %v", err)
	}
}

func TestModule_ServerDisabledByDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VaultRoot = seedVault(t)
	module := newModule(t, cfg)

	if _, err := module.Server(); err == nil {
		t.Fatalf("Server() must error while disabled")
	}
}

func TestModule_ExportHandler(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VaultRoot = seedVault(t)
	module := newModule(t, cfg)

	handler := module.ExportHandler()
	if err := handler.Execute(context.Background(), ExportVaultCommand{TargetLocation: "cmd-out"}); err != nil {
		t.Fatalf("handler.Execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(cfg.VaultRoot), "cmd-out", "index.adoc")); err != nil {
		t.Fatalf("command export produced no index: %v", err)
	}
}

func TestModule_WithRenderer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VaultRoot = seedVault(t)
	module := newModule(t, cfg, WithRenderer(interfaces.RendererRegistryFunc(func(lang string) bool {
		return lang == "mermaid"
	})))

	// Diagram fences keep literal source regardless of renderer availability.
	bundle, err := module.Exporter().ExportToBundle(context.Background(), interfaces.ExportSettings{})
	if err != nil {
		t.Fatalf("ExportToBundle: %v", err)
	}
	if len(bundle.Entries) == 0 {
		t.Fatalf("bundle empty")
	}
}
