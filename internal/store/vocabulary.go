package store

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// wordRunRE splits on runs of characters that are not letters, digits,
// underscore, or hyphen (spec §4.5: "split on non-letter-non-digit-
// non-[_-] runs").
var wordRunRE = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// stopWords is the fixed stop-list consulted by vocabulary extraction
// and the distinctive-term extractor.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "has": true,
	"had": true, "was": true, "were": true, "this": true, "that": true,
	"with": true, "from": true, "have": true, "will": true, "your": true,
	"they": true, "them": true, "their": true, "what": true, "which": true,
	"when": true, "where": true, "who": true, "how": true, "into": true,
	"than": true, "then": true, "its": true, "it's": true, "about": true,
	"there": true, "these": true, "those": true, "been": true, "being": true,
	"does": true, "did": true, "doing": true, "each": true, "few": true,
	"more": true, "most": true, "other": true, "some": true, "such": true,
	"only": true, "own": true, "same": true, "out": true, "over": true,
	"under": true, "again": true, "further": true, "once": true,
}

// tokenizeWords splits s into raw word-shaped runs (no length filter,
// no stop-list); used to build stemmed text for indexing.
func tokenizeWords(s string) []string {
	parts := wordRunRE.Split(s, -1)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// vocabularyWords applies the full vocabulary-extraction rule: lowercase,
// length >= 3, not in the stop-list (spec §4.5).
func vocabularyWords(s string) []string {
	var words []string
	for _, w := range tokenizeWords(s) {
		lw := strings.ToLower(w)
		if utf8.RuneCountInString(lw) < 3 {
			continue
		}
		if stopWords[lw] {
			continue
		}
		words = append(words, lw)
	}
	return words
}
