package store

import (
	"fmt"
	"strings"

	"forge/internal/apperr"
	appchunk "forge/internal/chunk"
	"forge/internal/logging"
)

// titleWeight and bodyWeight tune bm25() column weighting so a match in
// a chunk's title counts for more than the same match in its body
// (spec §4.6).
const (
	titleWeight = 2.0
	bodyWeight  = 1.0
)

// Search runs the three-tier fallback search of spec §4.6: stemmed,
// then substring/trigram, then fuzzy-corrected. limit <= 0 defaults to
// 3 (spec §6). source, when non-empty, restricts results to sources
// whose label contains it.
func (s *Store) Search(query string, limit int, source string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.NewBadRequest("search query must not be empty")
	}
	if limit <= 0 {
		limit = 3
	}

	timer := logging.StartTimer(logging.CategorySearch, "search")
	defer timer.Stop()
	logger := logging.Get(logging.CategorySearch)

	results, err := s.searchStemmed(query, limit, source)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		logger.Debug("query %q: %d stemmed hits", query, len(results))
		return results, nil
	}

	results, err = s.searchSubstring(query, limit, source)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		logger.Debug("query %q: %d substring hits", query, len(results))
		return results, nil
	}

	corrected, changed, err := s.fuzzyCorrectQuery(query)
	if err != nil {
		return nil, err
	}
	if !changed {
		logger.Debug("query %q: no fallback hits", query)
		return nil, nil
	}

	results, err = s.searchStemmed(corrected, limit, source)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		results, err = s.searchSubstring(corrected, limit, source)
		if err != nil {
			return nil, err
		}
	}
	for i := range results {
		results[i].MatchLayer = MatchFuzzy
	}
	logger.Debug("query %q: corrected to %q, %d fuzzy hits", query, corrected, len(results))
	return results, nil
}

func (s *Store) searchStemmed(query string, limit int, source string) ([]SearchResult, error) {
	ftsQuery := sanitizeFTSQuery(query)
	rows, args := s.buildSearchSQL("chunks_fts", ftsQuery, limit, source)
	return s.runSearchQuery(rows, args, MatchStemmed)
}

func (s *Store) searchSubstring(query string, limit int, source string) ([]SearchResult, error) {
	ftsQuery := trigramFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}
	rows, args := s.buildSearchSQL("chunks_trigram_fts", ftsQuery, limit, source)
	return s.runSearchQuery(rows, args, MatchSubstr)
}

// buildSearchSQL assembles the shared "join chunks_data+sources against
// one of the two FTS5 tables, rank by weighted bm25, optional source
// filter" query shape (spec §4.6 step 1/2 share this shape exactly).
func (s *Store) buildSearchSQL(ftsTable, ftsQuery string, limit int, source string) (string, []any) {
	q := fmt.Sprintf(`
		SELECT c.title, c.body, sr.label, c.content_type,
		       bm25(%s, %f, %f) AS rank
		FROM %s
		JOIN chunks_data c ON c.id = %s.rowid
		JOIN sources sr ON sr.id = c.source_id
		WHERE %s MATCH ?`, ftsTable, titleWeight, bodyWeight, ftsTable, ftsTable, ftsTable)

	args := []any{ftsQuery}
	if source != "" {
		q += " AND sr.label LIKE ?"
		args = append(args, "%"+source+"%")
	}
	q += " ORDER BY rank LIMIT ?"
	args = append(args, limit)
	return q, args
}

func (s *Store) runSearchQuery(query string, args []any, layer MatchLayer) ([]SearchResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: search query: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var contentType string
		if err := rows.Scan(&r.Title, &r.Body, &r.SourceLabel, &contentType, &r.Rank); err != nil {
			return nil, fmt.Errorf("store: search scan: %w", err)
		}
		r.ContentType = appchunk.ContentType(contentType)
		r.MatchLayer = layer
		out = append(out, r)
	}
	return out, rows.Err()
}

// fuzzyCorrectQuery applies fuzzy_correct to every >=3-char word of the
// original query (spec §4.6 tier 3) and reports whether the corrected
// query differs from a lowercased join of the original words.
func (s *Store) fuzzyCorrectQuery(query string) (corrected string, changed bool, err error) {
	words := fuzzyWords(query)
	if len(words) == 0 {
		return query, false, nil
	}

	vocab, err := s.loadVocabulary()
	if err != nil {
		return "", false, err
	}

	correctedWords := make([]string, len(words))
	anyChanged := false
	for i, w := range words {
		if fixed, ok := fuzzyCorrect(w, vocab); ok {
			correctedWords[i] = fixed
			anyChanged = true
		} else {
			correctedWords[i] = w
		}
	}
	if !anyChanged {
		return query, false, nil
	}
	return strings.Join(correctedWords, " "), true, nil
}

func (s *Store) loadVocabulary() ([]string, error) {
	rows, err := s.db.Query("SELECT word FROM vocabulary")
	if err != nil {
		return nil, fmt.Errorf("store: load vocabulary: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("store: vocabulary scan: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// ListSources returns every source's label and chunk count (spec §4.6
// "auxiliary operations"), in insertion order.
func (s *Store) ListSources() ([]SourceSummary, error) {
	rows, err := s.db.Query("SELECT label, chunk_count FROM sources ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("store: list sources: %w", err)
	}
	defer rows.Close()

	var out []SourceSummary
	for rows.Next() {
		var sm SourceSummary
		if err := rows.Scan(&sm.Label, &sm.ChunkCount); err != nil {
			return nil, fmt.Errorf("store: list sources scan: %w", err)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// ChunksBySource returns every chunk of sourceID in insertion order,
// bypassing full-text match entirely — used to enumerate a freshly
// indexed batch (spec §4.6).
func (s *Store) ChunksBySource(sourceID int64) ([]StoredChunk, error) {
	rows, err := s.db.Query(
		"SELECT title, body, content_type FROM chunks_data WHERE source_id = ? ORDER BY seq",
		sourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: chunks by source: %w", err)
	}
	defer rows.Close()

	var out []StoredChunk
	for rows.Next() {
		var c StoredChunk
		var contentType string
		if err := rows.Scan(&c.Title, &c.Body, &contentType); err != nil {
			return nil, fmt.Errorf("store: chunks by source scan: %w", err)
		}
		c.ContentType = appchunk.ContentType(contentType)
		out = append(out, c)
	}
	return out, rows.Err()
}
