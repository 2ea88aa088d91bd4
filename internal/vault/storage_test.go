package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func seedVault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "note.md", "# Note\n")
	writeFile(t, root, "sub/other.markdown", "# Other\n")
	writeFile(t, root, "img.png", "\x89PNG")
	writeFile(t, root, ".obsidian/app.json", "{}")
	writeFile(t, root, ".trash/gone.md", "# Gone\n")

	return root
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("missing root must error")
	}

	file := filepath.Join(t.TempDir(), "file.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(file); err == nil {
		t.Fatalf("non-directory root must error")
	}
}

func TestList_SnapshotSkipsBookkeepingDirs(t *testing.T) {
	storage, err := New(seedVault(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files, err := storage.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	wantPaths := []string{"img.png", "note.md", "sub/other.markdown"}
	if len(files) != len(wantPaths) {
		t.Fatalf("file count = %d, want %d: %#v", len(files), len(wantPaths), files)
	}
	for i, want := range wantPaths {
		if files[i].Path != want {
			t.Fatalf("file %d path = %q, want %q (listing must be sorted)", i, files[i].Path, want)
		}
	}
}

func TestList_ClassifiesAndLoadsDocuments(t *testing.T) {
	storage, err := New(seedVault(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	files, err := storage.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	byPath := map[string]int{}
	for i, f := range files {
		byPath[f.Path] = i
	}

	note := files[byPath["note.md"]]
	if !note.IsTextDocument || note.Content != "# Note\n" || note.Extension != "md" {
		t.Fatalf("note.md snapshot wrong: %+v", note)
	}
	other := files[byPath["sub/other.markdown"]]
	if !other.IsTextDocument || other.Extension != "markdown" {
		t.Fatalf("other.markdown snapshot wrong: %+v", other)
	}
	img := files[byPath["img.png"]]
	if img.IsTextDocument || img.Content != "" {
		t.Fatalf("img.png should be an asset without loaded content: %+v", img)
	}
	if img.LastModified.IsZero() {
		t.Fatalf("LastModified missing: %+v", img)
	}
}

func TestList_SkipsUnreadableDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.md", "# Good\n")
	// A dangling symlink enumerates as an .md entry but cannot be read.
	if err := os.Symlink(filepath.Join(root, "missing.md"), filepath.Join(root, "bad.md")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	storage, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files, err := storage.List(context.Background())
	if err != nil {
		t.Fatalf("one unreadable document must not fail the listing: %v", err)
	}
	if len(files) != 1 || files[0].Path != "good.md" {
		t.Fatalf("expected only the readable document, got %#v", files)
	}
	if files[0].Content != "# Good\n" {
		t.Fatalf("readable document content lost: %+v", files[0])
	}
}

func TestReadBinaryAndText(t *testing.T) {
	storage, err := New(seedVault(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	raw, err := storage.ReadBinary(context.Background(), "img.png")
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if string(raw) != "\x89PNG" {
		t.Fatalf("ReadBinary = %q", raw)
	}

	text, err := storage.ReadText(context.Background(), "note.md")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "# Note\n" {
		t.Fatalf("ReadText = %q", text)
	}

	if _, err := storage.ReadBinary(context.Background(), "absent.bin"); err == nil {
		t.Fatalf("missing file must error")
	}
}

func TestWriteOutsideVault(t *testing.T) {
	storage, err := New(seedVault(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out := t.TempDir()
	target := filepath.Join(out, "deep", "a.adoc")

	if err := storage.EnsureDir(context.Background(), filepath.Dir(target)); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	// Repeat creation is not an error.
	if err := storage.EnsureDir(context.Background(), filepath.Dir(target)); err != nil {
		t.Fatalf("EnsureDir repeat: %v", err)
	}
	if err := storage.WriteText(context.Background(), target, "= A\n"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "= A\n" {
		t.Fatalf("written content = %q", data)
	}
}

func TestList_HonorsContextCancellation(t *testing.T) {
	storage, err := New(seedVault(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := storage.List(ctx); err == nil {
		t.Fatalf("cancelled context must abort the walk")
	}
}
