package domain

import "strings"

// TestSpec describes the candidate test files, either as glob patterns or as explicit paths.
type TestSpec struct {
	Patterns []string
	Files    []string
}

// IsEmpty reports whether the spec names no patterns and no files.
func (s TestSpec) IsEmpty() bool {
	return len(s.Patterns) == 0 && len(s.Files) == 0
}

// NewTestSpec classifies entries: when any entry contains glob syntax all entries are treated
// as patterns, otherwise they are explicit file paths.
func NewTestSpec(entries ...string) TestSpec {
	for _, e := range entries {
		if IsGlob(e) {
			return TestSpec{Patterns: entries}
		}
	}
	return TestSpec{Files: entries}
}

// IsGlob reports whether s contains glob metacharacters.
func IsGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
