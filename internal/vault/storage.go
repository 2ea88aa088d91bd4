// Package vault implements the storage port on top of a local filesystem
// directory. List takes one consistent snapshot per call; write operations
// accept resolved paths outside the vault so exports can land beside it.
package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-vault-export/internal/logging"
	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

// skippedDirs are host bookkeeping folders never exported.
var skippedDirs = map[string]struct{}{
	".obsidian": {},
	".git":      {},
	".trash":    {},
}

// Storage is a filesystem-backed interfaces.VaultStorage.
type Storage struct {
	root   string
	fsys   fs.FS
	logger interfaces.Logger
}

// Option customises Storage construction.
type Option func(*Storage)

// WithLogger attaches the logger used to report skipped files. Defaults to
// a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New validates the vault root and returns a Storage rooted there.
func New(root string, opts ...Option) (*Storage, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("vault: stat root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault: root %s is not a directory", abs)
	}

	s := &Storage{root: abs, fsys: os.DirFS(abs), logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the absolute vault root path.
func (s *Storage) Root() string { return s.root }

// List walks the vault once and returns a snapshot of every file. Text
// documents carry their content; binary assets are read lazily.
func (s *Storage) List(ctx context.Context) ([]interfaces.VaultFile, error) {
	var files []interfaces.VaultFile

	walkErr := fs.WalkDir(s.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skippedDirs[d.Name()]; skip && path != "." {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel := filepath.ToSlash(path)
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(rel), "."))
		file := interfaces.VaultFile{
			Path:           rel,
			Name:           d.Name(),
			Extension:      ext,
			IsTextDocument: isTextDocument(ext),
			LastModified:   info.ModTime(),
		}
		if file.IsTextDocument {
			data, err := fs.ReadFile(s.fsys, path)
			if err != nil {
				// One unreadable document must not abort the snapshot.
				s.logger.Warn("document unreadable, skipping", "path", rel, "error", err)
				return nil
			}
			file.Content = string(data)
		}
		files = append(files, file)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// ReadText returns the text content of a vault-relative path.
func (s *Storage) ReadText(ctx context.Context, path string) (string, error) {
	data, err := s.ReadBinary(ctx, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadBinary returns the raw bytes of a vault-relative path.
func (s *Storage) ReadBinary(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, filepath.ToSlash(path))
	if err != nil {
		return nil, fmt.Errorf("vault: read %s: %w", path, err)
	}
	return data, nil
}

// WriteText writes UTF-8 text at the supplied target path.
func (s *Storage) WriteText(ctx context.Context, path string, content string) error {
	return s.WriteBinary(ctx, path, []byte(content))
}

// WriteBinary writes raw bytes at the supplied target path.
func (s *Storage) WriteBinary(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("vault: write %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates the directory and any missing parents; an existing
// directory is not an error.
func (s *Storage) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("vault: mkdir %s: %w", path, err)
	}
	return nil
}

func isTextDocument(ext string) bool {
	switch ext {
	case "md", "markdown":
		return true
	default:
		return false
	}
}

var _ interfaces.VaultStorage = (*Storage)(nil)
