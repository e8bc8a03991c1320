package match

import (
	"regexp"
	"strings"
)

// RegexPrefix tags a pattern as a raw regular expression. The remainder of
// the pattern is compiled and searched (not anchored) against the text.
const RegexPrefix = "regex:"

// Options controls how patterns are compared against text.
type Options struct {
	// CaseSensitive enables case-sensitive comparison for all strategies.
	// Default: false
	CaseSensitive bool
}

// Matches reports whether text matches pattern. The strategy is selected
// from the pattern syntax, in this fixed order:
//
//  1. Regex: pattern starts with "regex:" - compiled and searched.
//  2. Wildcard: pattern contains '*' or '?' - translated to an anchored
//     regular expression ('*' matches any run, '?' a single character).
//  3. Exact: case-normalized equality.
func Matches(text, pattern string, opts Options) bool {
	if strings.HasPrefix(pattern, RegexPrefix) {
		return regexMatch(text, strings.TrimPrefix(pattern, RegexPrefix), opts)
	}
	if HasWildcard(pattern) {
		return WildcardMatch(text, pattern, opts)
	}
	return ExactMatch(text, pattern, opts)
}

// MatchesAny reports whether text matches at least one pattern in patterns.
// An empty pattern list never matches anything.
func MatchesAny(text string, patterns []string, opts Options) bool {
	for _, p := range patterns {
		if Matches(text, p, opts) {
			return true
		}
	}
	return false
}

// ExactMatch reports case-normalized equality of text and pattern.
func ExactMatch(text, pattern string, opts Options) bool {
	if opts.CaseSensitive {
		return text == pattern
	}
	return strings.EqualFold(text, pattern)
}

// HasWildcard reports whether pattern contains a wildcard metacharacter.
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

// WildcardMatch reports whether text matches a wildcard pattern in full.
// The pattern is translated to an anchored regular expression: '*' becomes
// ".*", '?' becomes ".", everything else is matched literally.
func WildcardMatch(text, pattern string, opts Options) bool {
	expr := wildcardExpr(pattern, opts)
	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// regexMatch searches text with a raw regular expression pattern.
// A pattern that does not compile matches nothing; pattern validity is
// checked up front by configuration validation.
func regexMatch(text, expr string, opts Options) bool {
	if !opts.CaseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// wildcardExpr translates a wildcard pattern into an anchored regular
// expression string.
func wildcardExpr(pattern string, opts Options) string {
	var sb strings.Builder
	if !opts.CaseSensitive {
		sb.WriteString("(?i)")
	}
	sb.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	return sb.String()
}

// ValidatePattern reports whether a pattern is well formed. Only
// regex-tagged patterns can be malformed; wildcard and exact patterns are
// always valid. Used by configuration validation so that malformed
// patterns surface as configuration errors instead of silent non-matches.
func ValidatePattern(pattern string) error {
	if !strings.HasPrefix(pattern, RegexPrefix) {
		return nil
	}
	_, err := regexp.Compile(strings.TrimPrefix(pattern, RegexPrefix))
	return err
}
