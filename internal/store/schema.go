package store

// schemaVersion is the highest migration this binary knows how to apply.
// Store.InitSchema fails with a KindSchema error if the database's stored
// version is greater than this.
const schemaVersion = 1

// migrations holds each numbered schema step, applied in order inside a
// single transaction. Entry 0 is migration 1, entry 1 is migration 2, etc.
var migrations = []string{migration1}

const migration1 = `
CREATE TABLE IF NOT EXISTS meta (
  id              INTEGER PRIMARY KEY CHECK (id = 1),
  schema_version  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  path            TEXT NOT NULL UNIQUE,
  language        TEXT NOT NULL,
  line_count      INTEGER NOT NULL DEFAULT 0,
  hash            TEXT NOT NULL,
  commit_count    INTEGER NOT NULL DEFAULT 0,
  churn_score     REAL NOT NULL DEFAULT 0,
  generation      INTEGER NOT NULL DEFAULT 0,
  last_indexed    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS symbols (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  name            TEXT NOT NULL,
  kind            TEXT NOT NULL,
  signature       TEXT NOT NULL,
  start_line      INTEGER NOT NULL,
  end_line        INTEGER NOT NULL
);

-- Regular (non-contentless) FTS5 table: it keeps its own copy of name and
-- signature rather than pointing back at the symbols table, so it stays
-- queryable even if symbols rows are later vacuumed independently.
CREATE VIRTUAL TABLE IF NOT EXISTS symbols_fts USING fts5(
  name,
  signature,
  tokenize="unicode61"
);

CREATE TRIGGER IF NOT EXISTS symbols_ai AFTER INSERT ON symbols BEGIN
  INSERT INTO symbols_fts(rowid, name, signature) VALUES (new.id, new.name, new.signature);
END;

CREATE TRIGGER IF NOT EXISTS symbols_ad AFTER DELETE ON symbols BEGIN
  DELETE FROM symbols_fts WHERE rowid = old.id;
END;

CREATE TABLE IF NOT EXISTS dependencies (
  id               INTEGER PRIMARY KEY,
  source_file_id   INTEGER NOT NULL REFERENCES files(id),
  target_file_id   INTEGER REFERENCES files(id),
  raw_import       TEXT NOT NULL,
  resolved         BOOLEAN NOT NULL DEFAULT 0,
  UNIQUE(source_file_id, raw_import)
);

CREATE TABLE IF NOT EXISTS decisions (
  id              INTEGER PRIMARY KEY,
  source          TEXT NOT NULL,
  reference       TEXT,
  timestamp       TIMESTAMP NOT NULL,
  kind            TEXT NOT NULL,
  subject         TEXT NOT NULL,
  body            TEXT,
  UNIQUE(source, reference)
);

CREATE TABLE IF NOT EXISTS knowledge_notes (
  id              INTEGER PRIMARY KEY,
  timestamp       TIMESTAMP NOT NULL,
  body            TEXT NOT NULL,
  related_file_id INTEGER REFERENCES files(id)
);

CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_id);
CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS idx_symbols_kind ON symbols(kind);
CREATE INDEX IF NOT EXISTS idx_deps_source ON dependencies(source_file_id);
CREATE INDEX IF NOT EXISTS idx_deps_target ON dependencies(target_file_id);
CREATE INDEX IF NOT EXISTS idx_deps_raw ON dependencies(raw_import);
CREATE INDEX IF NOT EXISTS idx_files_language ON files(language);
CREATE INDEX IF NOT EXISTS idx_decisions_timestamp ON decisions(timestamp);
CREATE INDEX IF NOT EXISTS idx_notes_file ON knowledge_notes(related_file_id);

INSERT INTO meta (id, schema_version) VALUES (1, 1)
  ON CONFLICT(id) DO NOTHING;
`
