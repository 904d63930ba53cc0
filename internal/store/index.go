package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appchunk "forge/internal/chunk"
	"forge/internal/logging"
)

const defaultLinesPerChunk = 50

// Index ingests content (or the file at path) as a new Source,
// chunking it and writing every chunk to both full-text tables in one
// atomic transaction (spec §4.5). At least one of content or path must
// be non-empty; if both are given, content wins. label defaults to
// path, then "untitled".
//
// Which chunker strategy applies is not part of the external Index
// call's signature (spec §6 lists only content/path/label); this Store
// resolves it from the effective label's file extension — ".md" or
// ".markdown" routes through the Markdown strategy, everything else
// through the plain-text strategy — consistent with spec §4.4's
// instruction that strategy selection is explicit, not content-sniffed.
func (s *Store) Index(content, path, label string) (IndexResult, error) {
	if content == "" && path == "" {
		return IndexResult{}, errBadRequest("index requires content or path")
	}

	text := content
	if text == "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return IndexResult{}, errBadRequest(fmt.Sprintf("failed to read path %s: %v", path, err))
		}
		text = string(data)
	}

	effectiveLabel := label
	if effectiveLabel == "" {
		if path != "" {
			effectiveLabel = path
		} else {
			effectiveLabel = "untitled"
		}
	}

	chunks := chunkFor(effectiveLabel, text)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	timer := logging.StartTimer(logging.CategoryStore, "index")
	defer timer.Stop()

	tx, err := s.db.Begin()
	if err != nil {
		return IndexResult{}, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	codeCount := 0
	for _, c := range chunks {
		if c.ContentType == appchunk.ContentCode {
			codeCount++
		}
	}

	res, err := tx.Exec(
		"INSERT INTO sources (label, chunk_count, code_chunk_count, indexed_at) VALUES (?, ?, ?, ?)",
		effectiveLabel, len(chunks), codeCount, time.Now().Unix(),
	)
	if err != nil {
		return IndexResult{}, fmt.Errorf("store: insert source: %w", err)
	}
	sourceID, err := res.LastInsertId()
	if err != nil {
		return IndexResult{}, fmt.Errorf("store: source id: %w", err)
	}

	for i, c := range chunks {
		stemmedTitle := stemText(c.Title)
		stemmedBody := stemText(c.Body)

		chunkRes, err := tx.Exec(
			`INSERT INTO chunks_data (source_id, title, body, stemmed_title, stemmed_body, content_type, seq)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sourceID, c.Title, c.Body, stemmedTitle, stemmedBody, string(c.ContentType), i,
		)
		if err != nil {
			return IndexResult{}, fmt.Errorf("store: insert chunk: %w", err)
		}
		chunkID, err := chunkRes.LastInsertId()
		if err != nil {
			return IndexResult{}, fmt.Errorf("store: chunk id: %w", err)
		}

		if _, err := tx.Exec(
			"INSERT INTO chunks_fts (rowid, stemmed_title, stemmed_body) VALUES (?, ?, ?)",
			chunkID, stemmedTitle, stemmedBody,
		); err != nil {
			return IndexResult{}, fmt.Errorf("store: insert chunks_fts: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO chunks_trigram_fts (rowid, title, body) VALUES (?, ?, ?)",
			chunkID, c.Title, c.Body,
		); err != nil {
			return IndexResult{}, fmt.Errorf("store: insert chunks_trigram_fts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return IndexResult{}, fmt.Errorf("store: commit: %w", err)
	}

	// Vocabulary extraction runs post-commit, over the raw text (spec
	// §4.5); a failure here does not unwind the ingest that already
	// committed.
	if err := s.extractVocabulary(text); err != nil {
		logging.Get(logging.CategoryStore).Warn("vocabulary extraction failed for source %d: %v", sourceID, err)
	}

	logging.Get(logging.CategoryStore).Info("indexed source %d (%s): %d chunks, %d code", sourceID, effectiveLabel, len(chunks), codeCount)

	return IndexResult{
		SourceID:       sourceID,
		Label:          effectiveLabel,
		TotalChunks:    len(chunks),
		CodeChunkCount: codeCount,
	}, nil
}

func (s *Store) extractVocabulary(text string) error {
	words := vocabularyWords(text)
	if len(words) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO vocabulary (word) VALUES (?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		if _, err := stmt.Exec(w); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func chunkFor(label, text string) []appchunk.Chunk {
	ext := strings.ToLower(filepath.Ext(label))
	if ext == ".md" || ext == ".markdown" {
		return appchunk.Markdown(text)
	}
	return appchunk.PlainText(text, defaultLinesPerChunk)
}
