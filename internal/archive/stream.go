// Package archive serializes an export bundle into a streamable tar
// container: one named entry per converted entry, finalized with the tar
// terminating marker.
package archive

import (
	"archive/tar"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

// WriteBundle streams the bundle into w as a tar archive. Text entries are
// written as-is; binary entries are decoded from their transport encoding
// back to raw bytes. The archive is explicitly finalized after the last
// entry.
func WriteBundle(w io.Writer, bundle *interfaces.ExportBundle) error {
	if bundle == nil {
		return fmt.Errorf("archive: bundle is nil")
	}

	tw := tar.NewWriter(w)
	for _, entry := range bundle.Entries {
		payload, err := entryPayload(entry)
		if err != nil {
			return err
		}
		header := &tar.Header{
			Name:    entry.TargetPath,
			Mode:    0o644,
			Size:    int64(len(payload)),
			ModTime: bundle.Metadata.ExportedAt,
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("archive: write header %s: %w", entry.TargetPath, err)
		}
		if _, err := tw.Write(payload); err != nil {
			return fmt.Errorf("archive: write entry %s: %w", entry.TargetPath, err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("archive: finalize: %w", err)
	}
	return nil
}

func entryPayload(entry interfaces.ConvertedEntry) ([]byte, error) {
	if !entry.Binary {
		return []byte(entry.Content), nil
	}
	raw, err := base64.StdEncoding.DecodeString(entry.Content)
	if err != nil {
		return nil, fmt.Errorf("archive: decode %s: %w", entry.TargetPath, err)
	}
	return raw, nil
}
