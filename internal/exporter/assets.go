package exporter

import (
	"path"
	"strings"
)

// binaryExtensions is the static allow-list deciding which assets are read
// and written as raw bytes. Everything else is copied as text. The same
// classification applies in filesystem and memory modes.
var binaryExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "bmp": {}, "webp": {},
	"svg": {}, "ico": {}, "avif": {},
	"pdf": {}, "zip": {},
	"mp3": {}, "mp4": {}, "wav": {}, "ogg": {}, "webm": {}, "flac": {},
	"woff": {}, "woff2": {}, "ttf": {}, "otf": {},
}

// isBinaryPath reports whether the path's extension is on the binary
// allow-list.
func isBinaryPath(p string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	_, ok := binaryExtensions[ext]
	return ok
}
