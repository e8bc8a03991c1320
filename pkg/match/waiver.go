package match

import "strings"

// FirstMatch scans keys in declaration order and returns the first key that
// matches text by any of three strategies, tried per key in this order:
// exact match, wildcard match, bidirectional substring containment.
//
// The search is ordered and non-exhaustive: the first key to satisfy any
// strategy wins, even when a later key would match more specifically. This
// ordering dependency is a documented contract of the waiver table.
func FirstMatch(text string, keys []string, opts Options) (string, bool) {
	for _, key := range keys {
		if ExactMatch(text, key, opts) {
			return key, true
		}
		if HasWildcard(key) && WildcardMatch(text, key, opts) {
			return key, true
		}
		if containsEither(text, key, opts) {
			return key, true
		}
	}
	return "", false
}

// WordSubsetMatch scans keys in declaration order and returns the first key
// whose whitespace-separated word set is a subset of the text's word set.
// A key that is not a word subset still matches if it satisfies
// bidirectional substring containment. Intended for waiver tables whose
// authors reorder or pad words around a fixed phrase.
func WordSubsetMatch(text string, keys []string, opts Options) (string, bool) {
	textWords := wordSet(text, opts)
	for _, key := range keys {
		if isWordSubset(wordSet(key, opts), textWords) {
			return key, true
		}
		if containsEither(text, key, opts) {
			return key, true
		}
	}
	return "", false
}

// containsEither reports bidirectional substring containment: the key
// appears inside the text, or the text appears inside the key.
func containsEither(text, key string, opts Options) bool {
	if text == "" || key == "" {
		return false
	}
	if !opts.CaseSensitive {
		text = strings.ToLower(text)
		key = strings.ToLower(key)
	}
	return strings.Contains(text, key) || strings.Contains(key, text)
}

func wordSet(s string, opts Options) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		if !opts.CaseSensitive {
			w = strings.ToLower(w)
		}
		words[w] = struct{}{}
	}
	return words
}

func isWordSubset(sub, super map[string]struct{}) bool {
	if len(sub) == 0 {
		return false
	}
	for w := range sub {
		if _, ok := super[w]; !ok {
			return false
		}
	}
	return true
}
