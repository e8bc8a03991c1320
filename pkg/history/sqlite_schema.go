package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the run-history schema.
const Schema = `
-- Run records table
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    checklist TEXT,

    check_name TEXT NOT NULL,
    mode INTEGER NOT NULL,
    value TEXT NOT NULL,
    pass BOOLEAN NOT NULL,
    error TEXT,

    groups TEXT,

    duration INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_runs_run_id ON runs(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_check_name ON runs(check_name);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_pass ON runs(pass);
`

// InsertSchemaVersion inserts the schema version into the schema_version
// table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
