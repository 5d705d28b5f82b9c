package domain

import "strings"

const (
	// SourceExt is the file extension of a translation unit.
	SourceExt = ".cpp"

	// ObjectExt is the file extension of a compiled object artifact.
	ObjectExt = ".o"
)

// IsSource reports whether name is a translation unit by extension.
func IsSource(name string) bool {
	return strings.HasSuffix(name, SourceExt) && name != SourceExt
}

// ObjectFor derives the object artifact path for a source path by swapping
// the extension. The mapping is 1:1 and purely lexical.
func ObjectFor(source string) string {
	return strings.TrimSuffix(source, SourceExt) + ObjectExt
}
