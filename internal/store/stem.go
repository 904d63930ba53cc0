package store

import (
	"strings"

	"github.com/surgebase/porter2"
)

// stemText lowercases and Porter2-stems each run of letters, digits,
// underscores and hyphens in s, treating every other character as a
// word separator. Used to
// build the stemmed_title/stemmed_body columns that chunks_fts is
// tokenized over (spec §4.6 tier 1, glossary "Stemmed tokenization").
func stemText(s string) string {
	var b strings.Builder
	for _, word := range tokenizeWords(s) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(stemWord(word))
	}
	return b.String()
}

// stemWord lowercases and stems a single word.
func stemWord(word string) string {
	return porter2.Stem(strings.ToLower(word))
}
