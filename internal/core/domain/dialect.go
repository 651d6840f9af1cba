package domain

import (
	"path/filepath"
	"strings"
)

// Dialect identifies the source grammar of a file.
type Dialect uint8

const (
	// DialectUnknown marks files the engine does not analyze.
	DialectUnknown Dialect = iota
	// DialectJavaScript covers .js, .mjs, .cjs and .jsx files.
	DialectJavaScript
	// DialectTypeScript covers .ts, .mts and .cts files.
	DialectTypeScript
	// DialectTSX covers .tsx files.
	DialectTSX
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectJavaScript:
		return "javascript"
	case DialectTypeScript:
		return "typescript"
	case DialectTSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// SupportedExtensions lists the file extensions the graph builder processes.
var SupportedExtensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx"}

// DialectOf returns the dialect implied by the extension of path.
func DialectOf(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs", ".jsx":
		return DialectJavaScript
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx":
		return DialectTSX
	default:
		return DialectUnknown
	}
}

// IsSupported reports whether path has a supported extension.
func IsSupported(path string) bool {
	return DialectOf(path) != DialectUnknown
}

// IsExcluded reports whether path contains any of the exclusion fragments.
func IsExcluded(path string, fragments []string) bool {
	for _, fragment := range fragments {
		if fragment != "" && strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}
