package converter

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var (
	tagPattern         = regexp.MustCompile(`(^|\s)#([A-Za-z0-9][A-Za-z0-9_/-]*)`)
	embedPattern       = regexp.MustCompile(`!\[\[([^\]|]+?)(?:\|([^\]]+))?\]\]`)
	wikilinkPattern    = regexp.MustCompile(`\[\[([^\]|#]+?)(?:#([^\]|]+))?(?:\|([^\]]+))?\]\]`)
	blockAnchorPattern = regexp.MustCompile(`\s\^([A-Za-z0-9-]+)\s*$`)
	blockMathPattern   = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	inlineMathPattern  = regexp.MustCompile(`\$([^$\n]+?)\$`)
	headerPattern      = regexp.MustCompile(`^(#{1,6}) (.*)$`)
	strongStarPattern  = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strongUnderPattern = regexp.MustCompile(`__(.+?)__`)
	italicStarPattern  = regexp.MustCompile(`\*([^*\n]+)\*`)
)

var imageExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "svg": {}, "bmp": {}, "webp": {}, "avif": {},
}

func isImageExtension(ext string) bool {
	_, ok := imageExtensions[strings.ToLower(ext)]
	return ok
}

// convertTags rewrites inline #tag tokens into styled spans. Lines inside
// code fences are left untouched; fence delimiters are distinct from '#' so a
// simple line scan suffices.
func convertTags(text string) string {
	lines := strings.Split(text, "\n")
	inFence := false
	for i, line := range lines {
		if isFenceDelimiter(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		lines[i] = tagPattern.ReplaceAllString(line, `$1[.tag]#$2#`)
	}
	return strings.Join(lines, "\n")
}

// convertEmbeds turns ![[target]] into an image macro for image extensions
// and an include directive for everything else.
func convertEmbeds(text string) string {
	return embedPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := embedPattern.FindStringSubmatch(match)
		target := strings.TrimSpace(groups[1])
		alias := strings.TrimSpace(groups[2])

		ext := strings.TrimPrefix(path.Ext(target), ".")
		if isImageExtension(ext) {
			alt := alias
			if alt == "" {
				alt = strings.TrimSuffix(path.Base(target), path.Ext(target))
			}
			return fmt.Sprintf("image::%s[%s]", target, alt)
		}
		return fmt.Sprintf("include::%s[]", targetFileName(target))
	})
}

// convertWikilinks resolves [[target]], [[target|alias]], and
// [[target#section]] forms into xref macros against sanitized file names.
// Block references ([[note#^id]]) point at the anchor id minus the caret.
func convertWikilinks(text string) string {
	return wikilinkPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := wikilinkPattern.FindStringSubmatch(match)
		target := strings.TrimSpace(groups[1])
		section := strings.TrimSpace(groups[2])
		alias := strings.TrimSpace(groups[3])

		label := alias
		if label == "" {
			label = target
			if section != "" {
				label = target + "#" + section
			}
		}

		file := targetFileName(target)
		if section == "" {
			return fmt.Sprintf("xref:%s[%s]", file, label)
		}
		anchor := sanitizeName(strings.TrimPrefix(section, "^"))
		return fmt.Sprintf("xref:%s#%s[%s]", file, anchor, label)
	})
}

// convertBlockAnchors rewrites a trailing ^id token into an inline anchor.
// The id is sanitized the same way reference targets are, so a [[note#^id]]
// cross-reference and the anchor it points at always agree.
func convertBlockAnchors(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = blockAnchorPattern.ReplaceAllStringFunc(line, func(match string) string {
			groups := blockAnchorPattern.FindStringSubmatch(match)
			return " anchor:" + sanitizeName(groups[1]) + "[]"
		})
	}
	return strings.Join(lines, "\n")
}

// convertMath handles block math before inline math so the inline rule never
// matches across the block delimiters.
func convertMath(text string) string {
	text = blockMathPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := blockMathPattern.FindStringSubmatch(match)
		content := strings.Trim(groups[1], "\n")
		return "[stem]\n++++\n" + content + "\n++++"
	})
	return inlineMathPattern.ReplaceAllString(text, "stem:[$1]")
}

// convertHeaders maps 1-6 leading hashes onto the same number of '=' markers.
func convertHeaders(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		groups := headerPattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		lines[i] = strings.Repeat("=", len(groups[1])) + " " + groups[2]
	}
	return strings.Join(lines, "\n")
}

// convertEmphasis turns double-delimited spans into strong emphasis and lone
// single-asterisk spans into italics. Strong output is hidden behind a
// placeholder while the italic rule runs so the freshly produced '*'
// delimiters cannot be re-matched. Greedy non-overlapping matches, first
// rule wins.
func convertEmphasis(text string) string {
	const marker = "\x00"
	text = strongStarPattern.ReplaceAllString(text, marker+"$1"+marker)
	text = strongUnderPattern.ReplaceAllString(text, marker+"$1"+marker)
	text = italicStarPattern.ReplaceAllString(text, "_${1}_")
	return strings.ReplaceAll(text, marker, "*")
}

func isFenceDelimiter(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}
