package converter

import (
	"regexp"
	"strings"
)

var nonNameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// sanitizeName lowercases the value and collapses every run of characters
// outside [a-z0-9_-] into a single hyphen, trimming leading and trailing
// hyphens. The function is idempotent: sanitizing an already sanitized name
// returns it unchanged.
func sanitizeName(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	collapsed := nonNameChars.ReplaceAllString(lowered, "-")
	return strings.Trim(collapsed, "-")
}

// targetFileName maps a wikilink target onto its converted file name: the
// sanitized base name with a markdown-ish extension rewritten to the target
// markup extension.
func targetFileName(target string) string {
	target = strings.TrimSpace(target)
	if idx := strings.LastIndex(target, "."); idx > 0 && isTextExtension(target[idx+1:]) {
		target = target[:idx]
	}
	return sanitizeName(target) + "." + TargetExtension
}
