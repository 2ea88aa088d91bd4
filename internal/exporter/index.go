package exporter

import (
	"fmt"
	"strings"
	"time"
)

// IndexFileName is the generated document listing every converted document.
const IndexFileName = "index.adoc"

type indexEntry struct {
	targetPath string
	title      string
}

// buildIndex renders the index document. Entries keep the original
// enumeration order and reference only converted documents, never assets.
func buildIndex(entries []indexEntry, exportedAt time.Time) string {
	var b strings.Builder
	b.WriteString("= Vault Index\n")
	b.WriteString(":doctype: article\n")
	b.WriteString(":toc: auto\n")
	fmt.Fprintf(&b, ":revdate: %s\n", exportedAt.Format("2006-01-02"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d documents exported.\n\n", len(entries))
	for _, entry := range entries {
		fmt.Fprintf(&b, "* xref:%s[%s]\n", entry.targetPath, entry.title)
	}
	return b.String()
}
