// Package converter rewrites Obsidian-flavoured markdown documents into
// AsciiDoc. The pipeline is an ordered sequence of textual stages; order is
// load-bearing because later stages assume earlier ones already normalized
// their syntax.
package converter
