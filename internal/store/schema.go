package store

// Schema (spec §4.5): a conventional sources table, two FTS5 virtual
// tables over the same logical chunk rows (stemmed word tokenization
// and character-trigram tokenization), both in external-content mode
// so the canonical row lives once in chunks_data, and a flat
// vocabulary table for the fuzzy-correction layer.
//
// mattn/go-sqlite3 only compiles FTS5 support in when built with the
// sqlite_fts5 build tag (go build -tags sqlite_fts5 ./...); this is a
// property of the driver, not of this schema.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS sources (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	label            TEXT NOT NULL,
	chunk_count      INTEGER NOT NULL DEFAULT 0,
	code_chunk_count INTEGER NOT NULL DEFAULT 0,
	indexed_at       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS chunks_data (
	id            INTEGER PRIMARY KEY,
	source_id     INTEGER NOT NULL REFERENCES sources(id),
	title         TEXT NOT NULL,
	body          TEXT NOT NULL,
	stemmed_title TEXT NOT NULL,
	stemmed_body  TEXT NOT NULL,
	content_type  TEXT NOT NULL,
	seq           INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_data_source ON chunks_data(source_id, seq);

CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
	stemmed_title, stemmed_body,
	content='chunks_data', content_rowid='id',
	tokenize='unicode61'
);

CREATE VIRTUAL TABLE IF NOT EXISTS chunks_trigram_fts USING fts5(
	title, body,
	content='chunks_data', content_rowid='id',
	tokenize='trigram'
);

CREATE TABLE IF NOT EXISTS vocabulary (
	word TEXT NOT NULL UNIQUE
);
`
