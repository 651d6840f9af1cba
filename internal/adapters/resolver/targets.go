package resolver

import (
	"strings"
)

// conditionOrder is the priority of conditional target keys.
var conditionOrder = []string{"import", "node", "default", "require"}

// resolveTarget reduces an imports/exports target to a path template.
// Conditional objects take the first present condition in conditionOrder, recursively.
// Arrays take their first resolvable entry. null and other JSON values do not resolve.
func resolveTarget(target any) (string, bool) {
	switch v := target.(type) {
	case string:
		return v, true
	case map[string]any:
		for _, condition := range conditionOrder {
			if sub, ok := v[condition]; ok && sub != nil {
				return resolveTarget(sub)
			}
		}
		return "", false
	case []any:
		for _, entry := range v {
			if resolved, ok := resolveTarget(entry); ok {
				return resolved, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

// matchMapping resolves key against an imports or exports mapping.
// An exact key without a wildcard wins. Otherwise the wildcard pattern with the longest
// prefix (then the longest key) whose prefix and suffix enclose key is used, and every
// `*` in its target is replaced by the captured substring.
func matchMapping(mapping map[string]any, key string) (string, bool) {
	if target, ok := mapping[key]; ok && !strings.Contains(key, "*") {
		return resolveTarget(target)
	}

	best := ""
	for pattern := range mapping {
		if !matchesPattern(pattern, key) {
			continue
		}
		if best == "" || comparePatterns(pattern, best) < 0 {
			best = pattern
		}
	}
	if best == "" {
		return "", false
	}

	target, ok := resolveTarget(mapping[best])
	if !ok {
		return "", false
	}
	star := strings.IndexByte(best, '*')
	capture := key[star : len(key)-(len(best)-star-1)]
	return strings.ReplaceAll(target, "*", capture), true
}

// matchesPattern reports whether key matches a single-wildcard pattern.
// The capture must not be empty.
func matchesPattern(pattern, key string) bool {
	star := strings.IndexByte(pattern, '*')
	if star < 0 || strings.LastIndexByte(pattern, '*') != star {
		return false
	}
	prefix, suffix := pattern[:star], pattern[star+1:]
	return len(key) >= len(pattern) &&
		strings.HasPrefix(key, prefix) &&
		strings.HasSuffix(key, suffix)
}

// comparePatterns orders patterns by descending prefix length, then descending length.
func comparePatterns(a, b string) int {
	pa, pb := strings.IndexByte(a, '*'), strings.IndexByte(b, '*')
	switch {
	case pa > pb:
		return -1
	case pa < pb:
		return 1
	case len(a) > len(b):
		return -1
	case len(a) < len(b):
		return 1
	default:
		return strings.Compare(a, b)
	}
}
