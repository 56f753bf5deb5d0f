package intercept

import (
	"strings"

	"github.com/ryhazerus/dedux"
)

// MatchType reports whether an action type matches a glob-style pattern.
// Action types are treated as slash-separated paths.
//
// Supported patterns:
//   - "app/counter/*" matches every type under app/counter
//   - "*/RESET" matches RESET in any single namespace
//   - "app/counter/INCREMENT" exact match
func MatchType(pattern, actionType string) bool {
	pattern = strings.TrimRight(pattern, "/")
	actionType = strings.TrimRight(actionType, "/")

	if pattern == actionType {
		return true
	}

	// Trailing /* means match everything under that prefix.
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if actionType == prefix || strings.HasPrefix(actionType, prefix+"/") {
			return true
		}
	}

	return wildcardMatch(pattern, actionType)
}

// wildcardMatch handles * as matching any sequence of characters.
func wildcardMatch(pattern, str string) bool {
	if pattern == "*" {
		return true
	}

	for len(pattern) > 0 {
		if pattern[0] == '*' {
			pattern = pattern[1:]
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(str); i++ {
				if wildcardMatch(pattern, str[i:]) {
					return true
				}
			}
			return false
		}

		if len(str) == 0 || pattern[0] != str[0] {
			return false
		}

		pattern = pattern[1:]
		str = str[1:]
	}

	return len(str) == 0
}

func matchAny(patterns []string, actionType string) bool {
	for _, p := range patterns {
		if MatchType(p, actionType) {
			return true
		}
	}
	return false
}

// Allow passes on only actions whose type matches one of patterns.
func Allow[S any](patterns ...string) dedux.Interceptor[S] {
	return Filter[S](func(a *dedux.Action) bool {
		return matchAny(patterns, a.Type)
	})
}

// Deny drops actions whose type matches one of patterns.
func Deny[S any](patterns ...string) dedux.Interceptor[S] {
	return Filter[S](func(a *dedux.Action) bool {
		return !matchAny(patterns, a.Type)
	})
}
