// Package store is the Content Store & Retrieval Engine: an embedded,
// per-process SQLite full-text index with stemmed, trigram, and fuzzy
// search tiers over chunks produced by the chunk package.
package store

import "forge/internal/chunk"

// Source is an ingestion batch: the parent of many Chunks.
type Source struct {
	ID             int64
	Label          string
	ChunkCount     int
	CodeChunkCount int
	IndexedAt      int64 // unix seconds
}

// MatchLayer records which search tier produced a Search Result.
type MatchLayer string

const (
	MatchStemmed MatchLayer = "stemmed"
	MatchSubstr  MatchLayer = "substring"
	MatchFuzzy   MatchLayer = "fuzzy"
)

// SearchResult is one ranked hit from search_with_fallback.
type SearchResult struct {
	Title       string
	Body        string
	SourceLabel string
	Rank        float64 // BM25; lower is better
	ContentType chunk.ContentType
	MatchLayer  MatchLayer
}

// IndexResult is returned from a successful Index call.
type IndexResult struct {
	SourceID       int64
	Label          string
	TotalChunks    int
	CodeChunkCount int
}

// SourceSummary is one row of ListSources.
type SourceSummary struct {
	Label      string
	ChunkCount int
}

// StoredChunk is one row of ChunksBySource, in insertion order.
type StoredChunk struct {
	Title       string
	Body        string
	ContentType chunk.ContentType
}
