package archive

import (
	"archive/tar"
	"bytes"
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

func TestWriteBundle_RoundTrip(t *testing.T) {
	raw := []byte{0x00, 0x01, 0xff, 0x10}
	exportedAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	bundle := &interfaces.ExportBundle{
		Entries: []interfaces.ConvertedEntry{
			{
				TargetPath: "notes/a.adoc",
				Content:    "= A\n\nbody\n",
				Kind:       interfaces.EntryKindDocument,
			},
			{
				TargetPath: "attachments/img.png",
				Content:    base64.StdEncoding.EncodeToString(raw),
				Kind:       interfaces.EntryKindAsset,
				Binary:     true,
			},
		},
		Metadata: interfaces.BundleMetadata{
			RunID:      "run-1",
			ExportedAt: exportedAt,
			Count:      2,
		},
	}

	var buf bytes.Buffer
	if err := WriteBundle(&buf, bundle); err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}

	tr := tar.NewReader(&buf)

	first, err := tr.Next()
	if err != nil {
		t.Fatalf("first header: %v", err)
	}
	if first.Name != "notes/a.adoc" {
		t.Fatalf("first entry name = %q", first.Name)
	}
	if first.Mode != 0o644 {
		t.Fatalf("first entry mode = %o", first.Mode)
	}
	if !first.ModTime.Equal(exportedAt) {
		t.Fatalf("first entry modtime = %v", first.ModTime)
	}
	content, err := io.ReadAll(tr)
	if err != nil {
		t.Fatalf("read first entry: %v", err)
	}
	if string(content) != "= A\n\nbody\n" {
		t.Fatalf("first entry content = %q", content)
	}

	second, err := tr.Next()
	if err != nil {
		t.Fatalf("second header: %v", err)
	}
	if second.Name != "attachments/img.png" {
		t.Fatalf("second entry name = %q", second.Name)
	}
	if second.Size != int64(len(raw)) {
		t.Fatalf("second entry size = %d, want %d", second.Size, len(raw))
	}
	payload, err := io.ReadAll(tr)
	if err != nil {
		t.Fatalf("read second entry: %v", err)
	}
	if !bytes.Equal(payload, raw) {
		t.Fatalf("binary payload = %v, want %v", payload, raw)
	}

	if _, err := tr.Next(); err != io.EOF {
		t.Fatalf("archive should terminate after last entry, got %v", err)
	}
}

func TestWriteBundle_EmptyBundle(t *testing.T) {
	var buf bytes.Buffer
	bundle := &interfaces.ExportBundle{}
	if err := WriteBundle(&buf, bundle); err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}
	// An empty archive still carries the terminating marker blocks.
	if buf.Len() == 0 {
		t.Fatalf("empty bundle should still produce a finalized archive")
	}
	if _, err := tar.NewReader(&buf).Next(); err != io.EOF {
		t.Fatalf("empty archive should read as EOF, got %v", err)
	}
}

func TestWriteBundle_NilBundle(t *testing.T) {
	if err := WriteBundle(io.Discard, nil); err == nil {
		t.Fatalf("nil bundle must error")
	}
}

func TestWriteBundle_BadBinaryEncoding(t *testing.T) {
	bundle := &interfaces.ExportBundle{
		Entries: []interfaces.ConvertedEntry{
			{TargetPath: "bad.bin", Content: "not base64!!!", Binary: true},
		},
	}
	if err := WriteBundle(io.Discard, bundle); err == nil {
		t.Fatalf("invalid transport encoding must error")
	}
}
