package converter

import (
	"strings"

	"github.com/goliatone/go-vault-export/internal/logging"
	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

// TargetExtension is the file extension applied to converted documents.
const TargetExtension = "adoc"

// Service converts vault documents into AsciiDoc. Conversion is pure and
// deterministic; the logger is best-effort diagnostics and never alters
// output.
type Service struct {
	logger interfaces.Logger
}

// NewService builds a converter Service. A nil logger falls back to no-op.
func NewService(logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{logger: logger}
}

// Convert runs the full pipeline over a single text document and returns the
// AsciiDoc output.
func (s *Service) Convert(doc interfaces.VaultFile, ctx interfaces.ConversionContext) string {
	meta, body := extractMetadata(doc.Content, s.logger)

	body = convertTags(body)
	body = convertCallouts(body)
	body = convertEmbeds(body)
	body = convertWikilinks(body)
	body = convertBlockAnchors(body)
	body = convertMath(body)
	body = convertHeaders(body)
	body = convertEmphasis(body)
	body = s.convertCodeFences(body, ctx)
	body = convertRemaining(body)

	return injectHeader(documentTitle(doc), meta, body)
}

// documentTitle derives the document title from the file name, dropping the
// text extension.
func documentTitle(doc interfaces.VaultFile) string {
	name := doc.Name
	if idx := strings.LastIndex(name, "."); idx > 0 && isTextExtension(name[idx+1:]) {
		return name[:idx]
	}
	return name
}

func isTextExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case "md", "markdown":
		return true
	default:
		return false
	}
}
