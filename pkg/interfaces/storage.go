package interfaces

import (
	"context"
	"time"
)

// VaultFile describes a single entry discovered inside the source vault. The
// struct is an immutable snapshot: Content is populated only for text
// documents, binary payloads are read lazily through the storage port.
type VaultFile struct {
	// Path is the slash-separated, vault-relative location of the file.
	Path string
	// Name is the base name including extension.
	Name string
	// Extension is the lowercased extension without the leading dot.
	Extension string
	// IsTextDocument reports whether the file is a convertible text document.
	IsTextDocument bool
	// Content holds the raw text for text documents; empty otherwise.
	Content string
	// LastModified records the file modification time at snapshot time.
	LastModified time.Time
}

// VaultStorage is the narrow read/write/list capability the export core uses
// to talk to the host's document store. List returns one consistent snapshot
// per call; write operations accept resolved target paths that may live
// outside the vault.
type VaultStorage interface {
	// List enumerates every file in the vault, documents and assets alike.
	List(ctx context.Context) ([]VaultFile, error)
	// ReadText returns the text content of a vault-relative path.
	ReadText(ctx context.Context, path string) (string, error)
	// ReadBinary returns the raw bytes of a vault-relative path.
	ReadBinary(ctx context.Context, path string) ([]byte, error)
	// WriteText writes UTF-8 text at the supplied target path.
	WriteText(ctx context.Context, path string, content string) error
	// WriteBinary writes raw bytes at the supplied target path.
	WriteBinary(ctx context.Context, path string, content []byte) error
	// EnsureDir creates the directory (and parents) when missing. An
	// already existing directory is not an error.
	EnsureDir(ctx context.Context, path string) error
	// Root returns the absolute path of the vault root, used to resolve
	// relative export targets as siblings of the vault.
	Root() string
}
