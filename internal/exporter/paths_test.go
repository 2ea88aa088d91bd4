package exporter

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolveTarget(t *testing.T) {
	cases := []struct {
		name   string
		target string
		root   string
		want   string
	}{
		{"relative beside vault", "out", "/home/me/vault", filepath.Join("/home/me", "out")},
		{"empty uses default", "", "/home/me/vault", filepath.Join("/home/me", DefaultTargetFolder)},
		{"absolute unix", "/exports/docs", "/home/me/vault", "/exports/docs"},
		{"absolute drive", `C:\exports`, "/home/me/vault", `C:\exports`},
		{"absolute unc", `\\server\share`, "/home/me/vault", `\\server\share`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveTarget(tc.target, tc.root); got != tc.want {
				t.Fatalf("ResolveTarget(%q, %q) = %q, want %q", tc.target, tc.root, got, tc.want)
			}
		})
	}
}

func TestDocumentTargetPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"notes/a.md", "notes/a.adoc"},
		{"deep/nested/doc.markdown", "deep/nested/doc.adoc"},
		{"root.md", "root.adoc"},
	}
	for _, tc := range cases {
		if got := documentTargetPath(tc.in); got != tc.want {
			t.Fatalf("documentTargetPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAncestorDirs(t *testing.T) {
	got := ancestorDirs([]string{
		"a/b/c/file.adoc",
		"a/other.adoc",
		"top.adoc",
	})

	want := []string{"a", "a/b", "a/b/c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ancestorDirs = %#v, want %#v", got, want)
	}
}

func TestIsBinaryPath(t *testing.T) {
	if !isBinaryPath("media/photo.PNG") {
		t.Fatalf("uppercase extension should classify as binary")
	}
	if isBinaryPath("notes/readme.txt") {
		t.Fatalf("txt should classify as text")
	}
	if isBinaryPath("Makefile") {
		t.Fatalf("extensionless files should classify as text")
	}
}
