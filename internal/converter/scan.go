package converter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

var (
	calloutHeaderPattern = regexp.MustCompile(`(?i)^>\s*\[!(note|tip|important|warning|caution|example|quote)\]([+-]?)\s*(.*)$`)
	quotedLinePattern    = regexp.MustCompile(`^>\s?(.*)$`)
	fenceOpenPattern     = regexp.MustCompile("^```([A-Za-z0-9_+-]*)\\s*$")
	fenceClosePattern    = regexp.MustCompile("^```\\s*$")
)

// convertCallouts runs a two-state line scanner (idle, collecting) over the
// text. A quoted callout header opens an admonition container; every
// subsequent quoted line is consumed into the body, and the first non-quoted
// line closes it.
func convertCallouts(text string) string {
	lines := strings.Split(text, "\n")
	var out []string

	collecting := false
	var body []string
	var open []string

	flush := func() {
		if !collecting {
			return
		}
		out = append(out, open...)
		out = append(out, "====")
		out = append(out, body...)
		out = append(out, "====")
		collecting = false
		body = nil
		open = nil
	}

	for _, line := range lines {
		if groups := calloutHeaderPattern.FindStringSubmatch(line); groups != nil {
			flush()
			kind := strings.ToUpper(groups[1])
			attr := "[" + kind + "]"
			if groups[2] != "" {
				attr = "[" + kind + "%collapsible]"
			}
			open = []string{attr}
			if title := strings.TrimSpace(groups[3]); title != "" {
				open = append(open, "."+title)
			}
			collecting = true
			continue
		}

		if collecting {
			if groups := quotedLinePattern.FindStringSubmatch(line); groups != nil {
				body = append(body, groups[1])
				continue
			}
			flush()
		}
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}

// convertCodeFences rewrites fenced blocks into labeled source listings. The
// renderer registry is consulted for the language tag, but the current policy
// keeps literal source whenever rendering is declined, which today is every
// case; rendering is a capability the pipeline may invoke, never assumes.
func (s *Service) convertCodeFences(text string, ctx interfaces.ConversionContext) string {
	lines := strings.Split(text, "\n")
	var out []string

	inFence := false
	lang := ""
	var body []string

	for _, line := range lines {
		if !inFence {
			if groups := fenceOpenPattern.FindStringSubmatch(line); groups != nil {
				inFence = true
				lang = groups[1]
				if lang == "" {
					lang = "text"
				}
				if !ctx.Settings.PreserveDiagramSource && ctx.CanRender(lang) {
					s.logger.Debug("renderer available for fence, keeping literal source", "lang", lang)
				}
				body = nil
				continue
			}
			out = append(out, line)
			continue
		}

		if fenceClosePattern.MatchString(line) {
			out = append(out, "[source,"+lang+"]", "----")
			out = append(out, body...)
			out = append(out, "----")
			inFence = false
			continue
		}
		body = append(body, line)
	}

	// Unterminated fence: keep the buffered lines literal.
	if inFence {
		out = append(out, "[source,"+lang+"]", "----")
		out = append(out, body...)
		out = append(out, "----")
	}

	return strings.Join(out, "\n")
}

var (
	imagePattern       = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	linkPattern        = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	unorderedPattern   = regexp.MustCompile(`^(\s*)[-*] (.*)$`)
	orderedPattern     = regexp.MustCompile(`^(\s*)\d+\. (.*)$`)
	blockquotePattern  = regexp.MustCompile(`^> ?(.*)$`)
	rulePattern        = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})\s*$`)
	tableRowPattern    = regexp.MustCompile(`^\|.*\|\s*$`)
	tableSeparatorCell = regexp.MustCompile(`^:?-+:?$`)
)

// convertRemaining applies the independently idempotent stage: inline code
// (identity), list markers, standard links and images, blockquotes,
// horizontal rules, and the table scanner. Lines inside listing ('----'),
// passthrough ('++++'), and quote ('____') blocks produced by earlier stages
// are protected, which keeps every rule here idempotent. A delimiter counts
// as a protection opener only directly after the attribute line an earlier
// stage emitted; a bare run of dashes or underscores is a horizontal rule.
func convertRemaining(text string) string {
	lines := strings.Split(text, "\n")
	var out []string

	protected := ""
	prev := ""
	var tableRows []string

	flushTable := func() {
		if len(tableRows) == 0 {
			return
		}
		out = append(out, renderTable(tableRows)...)
		tableRows = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if protected != "" {
			out = append(out, line)
			if trimmed == protected {
				protected = ""
			}
			prev = line
			continue
		}
		if (trimmed == "----" || trimmed == "++++" || trimmed == "____") && isBlockAttribute(prev) {
			flushTable()
			protected = trimmed
			out = append(out, line)
			prev = line
			continue
		}

		if tableRowPattern.MatchString(line) {
			tableRows = append(tableRows, line)
			prev = line
			continue
		}
		flushTable()

		out = append(out, convertLine(line))
		prev = line
	}
	flushTable()

	return strings.Join(out, "\n")
}

// isBlockAttribute reports whether the line is one of the attribute lines
// the earlier stages emit directly above a delimited block.
func isBlockAttribute(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "[stem]" || trimmed == "[quote]" || strings.HasPrefix(trimmed, "[source,")
}

func convertLine(line string) string {
	if rulePattern.MatchString(line) {
		return "'''"
	}

	if groups := unorderedPattern.FindStringSubmatch(line); groups != nil {
		depth := len(groups[1]) / 2
		return strings.Repeat("*", depth+1) + " " + groups[2]
	}
	if groups := orderedPattern.FindStringSubmatch(line); groups != nil {
		depth := len(groups[1]) / 2
		return strings.Repeat(".", depth+1) + " " + groups[2]
	}

	if groups := blockquotePattern.FindStringSubmatch(line); groups != nil {
		return "[quote]\n____\n" + groups[1] + "\n____"
	}

	line = imagePattern.ReplaceAllString(line, "image::$2[$1]")
	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		groups := linkPattern.FindStringSubmatch(match)
		text, url := groups[1], groups[2]
		if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
			return fmt.Sprintf("%s[%s]", url, text)
		}
		return fmt.Sprintf("link:%s[%s]", url, text)
	})
	return line
}

// renderTable emits buffered pipe-delimited rows as a column-spec table. The
// separator row is dropped; the first remaining row becomes an emphasized
// header row.
func renderTable(rows []string) []string {
	var cellRows [][]string
	for _, row := range rows {
		cells := splitTableRow(row)
		if isSeparatorRow(cells) {
			continue
		}
		cellRows = append(cellRows, cells)
	}
	if len(cellRows) == 0 {
		return nil
	}

	cols := len(cellRows[0])
	spec := make([]string, cols)
	for i := range spec {
		spec[i] = "1"
	}

	out := []string{
		fmt.Sprintf("[cols=\"%s\"]", strings.Join(spec, ",")),
		"|===",
		formatTableRow(cellRows[0], true),
	}
	for _, cells := range cellRows[1:] {
		out = append(out, "", formatTableRow(cells, false))
	}
	out = append(out, "|===")
	return out
}

func splitTableRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		cells = append(cells, strings.TrimSpace(part))
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if cell == "" || !tableSeparatorCell.MatchString(cell) {
			return false
		}
	}
	return true
}

func formatTableRow(cells []string, header bool) string {
	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		if header {
			cell = "*" + cell + "*"
		}
		parts = append(parts, "|"+cell)
	}
	return strings.Join(parts, " ")
}
