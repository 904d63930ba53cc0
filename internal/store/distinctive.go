package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"forge/internal/logging"
)

// defaultMaxTerms is applied when DistinctiveTerms is called with
// maxTerms <= 0 (spec §4.7).
const defaultMaxTerms = 40

// minDocFreq is the floor document frequency a word must clear to be
// considered distinctive — below it, a word appears too rarely to be a
// useful follow-up query term.
const minDocFreq = 2

// DistinctiveTerms returns the top maxTerms words that are distinctive
// to sourceID: neither so rare they appear in under minDocFreq chunks,
// nor so common they appear in more than max(3, ⌈40%⌉) of the source's
// chunks (spec
// §4.7). Returns an empty slice (not an error) for sources with fewer
// than 3 chunks, per the spec's "too small to be meaningful" rule.
func (s *Store) DistinctiveTerms(sourceID int64, maxTerms int) ([]string, error) {
	if maxTerms <= 0 {
		maxTerms = defaultMaxTerms
	}

	timer := logging.StartTimer(logging.CategorySearch, "distinctive terms")
	defer timer.Stop()

	var chunkCount int
	err := s.db.QueryRow("SELECT chunk_count FROM sources WHERE id = ?", sourceID).Scan(&chunkCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: distinctive terms: read source: %w", err)
	}
	if chunkCount < 3 {
		return nil, nil
	}

	maxDF := int(math.Ceil(0.4 * float64(chunkCount)))
	if maxDF < 3 {
		maxDF = 3
	}

	bodies, err := s.chunkBodies(sourceID)
	if err != nil {
		return nil, err
	}

	docFreq := make(map[string]int, len(bodies)*8)
	for _, body := range bodies {
		seen := make(map[string]bool, 16)
		for _, w := range vocabularyWords(body) {
			if seen[w] {
				continue
			}
			seen[w] = true
			docFreq[w]++
		}
	}

	type scored struct {
		word  string
		score float64
	}
	var candidates []scored
	for word, df := range docFreq {
		if df < minDocFreq || df > maxDF {
			continue
		}
		candidates = append(candidates, scored{word: word, score: distinctiveScore(word, df, chunkCount)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].word < candidates[j].word
	})

	if len(candidates) > maxTerms {
		candidates = candidates[:maxTerms]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.word
	}
	return out, nil
}

// distinctiveScore implements spec §4.7 step 5: rarity (inverse
// document frequency) plus a length bonus plus an identifier-shape
// bonus that favors tokens most useful as follow-up query terms.
func distinctiveScore(word string, df, chunkCount int) float64 {
	score := math.Log(float64(chunkCount) / float64(df))

	lengthBonus := float64(len([]rune(word))) / 20.0
	if lengthBonus > 0.5 {
		lengthBonus = 0.5
	}
	score += lengthBonus

	switch {
	case strings.Contains(word, "_"):
		score += 1.5
	case len([]rune(word)) >= 12:
		score += 0.8
	}
	return score
}

func (s *Store) chunkBodies(sourceID int64) ([]string, error) {
	rows, err := s.db.Query("SELECT body FROM chunks_data WHERE source_id = ?", sourceID)
	if err != nil {
		return nil, fmt.Errorf("store: distinctive terms: read chunks: %w", err)
	}
	defer rows.Close()

	var bodies []string
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("store: distinctive terms: scan chunk: %w", err)
		}
		bodies = append(bodies, body)
	}
	return bodies, rows.Err()
}
