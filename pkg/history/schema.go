package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the run history tables. created_at holds Unix nanoseconds
// so that ordering and cutoffs behave the same under both drivers.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,
    schema_path TEXT NOT NULL,

    -- JSON-encoded slices
    tokens TEXT NOT NULL,
    args TEXT NOT NULL,
    options TEXT NOT NULL,
    diagnostics TEXT NOT NULL,

    diagnostic_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_diagnostic_count ON runs(diagnostic_count);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// InsertSchemaVersion records the schema version if not already present.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion returns the highest applied schema version.
const GetSchemaVersion = `SELECT MAX(version) FROM schema_version;`
