package exporter

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultTargetFolder is used when no export location is supplied.
const DefaultTargetFolder = "asciidoc-export"

// ResolveTarget turns the configured target location into the export root.
// Absolute locations (unix, drive-letter, UNC) are kept verbatim; relative
// locations become siblings of the vault root so the export can never land
// inside the source tree.
func ResolveTarget(target, vaultRoot string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		target = DefaultTargetFolder
	}
	if isAbsolutePath(target) {
		return target
	}
	return filepath.Join(filepath.Dir(vaultRoot), target)
}

func isAbsolutePath(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	// UNC shares: \\host\share
	if strings.HasPrefix(p, `\\`) {
		return true
	}
	// Drive letters: C:\ or C:/
	if len(p) >= 3 && isDriveLetter(p[0]) && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		return true
	}
	return false
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// documentTargetPath rewrites a document's vault-relative path onto its
// converted location: same directory, extension swapped to the target markup.
func documentTargetPath(sourcePath string) string {
	ext := path.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + ".adoc"
}

// ancestorDirs derives the unique set of directories implied by the supplied
// target paths, ordered parents-first so each can be created exactly once.
func ancestorDirs(paths []string) []string {
	seen := map[string]struct{}{}
	var dirs []string
	for _, p := range paths {
		dir := path.Dir(p)
		for dir != "." && dir != "/" && dir != "" {
			if _, ok := seen[dir]; !ok {
				seen[dir] = struct{}{}
				dirs = append(dirs, dir)
			}
			dir = path.Dir(dir)
		}
	}
	// Parents-first so each directory exists before its children.
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], "/") < strings.Count(dirs[j], "/")
	})
	return dirs
}
