package store

import (
	"strings"
	"unicode"
)

// ftsOperatorChars are the FTS5 query-syntax characters the sanitizer
// strips before a user query reaches either virtual table (spec §4.6).
const ftsOperatorChars = `'"(){}[]*:^~`

// reservedOperatorWords are FTS5 boolean operators; a bare occurrence
// of one of these in a query is discarded rather than quoted, so it
// never acts as an operator.
var reservedOperatorWords = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
}

// sanitizeWords splits q on whitespace, strips FTS5 operator characters
// from each token, and drops empty tokens and reserved operator words
// (case-insensitively). The returned words are otherwise untouched —
// case and stemming are the caller's concern.
func sanitizeWords(q string) []string {
	fields := strings.Fields(q)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		stripped := strings.Map(func(r rune) rune {
			if strings.ContainsRune(ftsOperatorChars, r) {
				return -1
			}
			return r
		}, f)
		stripped = strings.TrimSpace(stripped)
		if stripped == "" {
			continue
		}
		if reservedOperatorWords[strings.ToUpper(stripped)] {
			continue
		}
		words = append(words, stripped)
	}
	return words
}

// sanitizeFTSQuery builds the stemmed-tier query: every surviving word
// quoted and OR-joined. An empty result (nothing survives sanitization)
// yields the literal string `""`, which matches nothing (spec §4.6).
func sanitizeFTSQuery(q string) string {
	words := sanitizeWords(q)
	if len(words) == 0 {
		return `""`
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = quoteFTSWord(stemWord(w))
	}
	return strings.Join(quoted, " OR ")
}

// trigramFTSQuery builds the substring/trigram-tier query: same
// stripping, but only words of length >= 3 survive (trigram tokens need
// at least three characters to produce any trigram at all), quoted and
// OR-joined. Returns "" when nothing qualifies, signaling the caller to
// skip this tier entirely.
func trigramFTSQuery(q string) string {
	words := sanitizeWords(q)
	var quoted []string
	for _, w := range words {
		if len([]rune(w)) < 3 {
			continue
		}
		quoted = append(quoted, quoteFTSWord(w))
	}
	return strings.Join(quoted, " OR ")
}

// quoteFTSWord wraps w in double quotes for the FTS5 query parser,
// escaping any internal double quote by doubling it.
func quoteFTSWord(w string) string {
	return `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
}

// fuzzyWords splits the original query into lowercase words of at
// least three characters, the candidate set for per-word fuzzy
// correction (spec §4.6 tier 3).
func fuzzyWords(q string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			w := strings.ToLower(cur.String())
			if len([]rune(w)) >= 3 {
				words = append(words, w)
			}
			cur.Reset()
		}
	}
	for _, r := range q {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}
