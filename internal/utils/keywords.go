package utils

import (
	"regexp"
	"strings"
)

var wordSplitter = regexp.MustCompile(`[^a-z0-9']+`)

// ContainsAny reports whether the lower-cased text contains any of the
// given phrases as substrings. Multi-word phrases match anywhere.
func ContainsAny(lowerText string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lowerText, p) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether the lower-cased text contains the given
// word as a whole token. Short keywords like "uk" need this so they do
// not fire inside longer words.
func ContainsWord(lowerText, word string) bool {
	for _, tok := range wordSplitter.Split(lowerText, -1) {
		if tok == word {
			return true
		}
	}
	return false
}

// ContainsAnyWord reports whether any of the words appears as a whole
// token in the lower-cased text.
func ContainsAnyWord(lowerText string, words []string) bool {
	toks := wordSplitter.Split(lowerText, -1)
	set := make(map[string]struct{}, len(toks))
	for _, tok := range toks {
		set[tok] = struct{}{}
	}
	for _, w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

// Normalize lower-cases and collapses a message for phrase-set
// comparison: trims space and strips trailing punctuation.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.TrimRight(s, ".!?… ")
	return strings.Join(strings.Fields(s), " ")
}
