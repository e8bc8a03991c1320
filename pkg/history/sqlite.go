package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/history.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend. It initializes
// the database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "history.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("run-history storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a run record to the database.
func (s *SQLiteStorage) Store(ctx context.Context, record *RunRecord) error {
	groups, err := json.Marshal(record.Groups)
	if err != nil {
		return NewStorageError("sqlite", "marshal_groups", err)
	}

	var errorVal interface{}
	if record.Error != "" {
		errorVal = record.Error
	}

	query := `
		INSERT INTO runs (
			id, run_id, checklist,
			check_name, mode, value, pass, error,
			groups,
			duration, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.RunID, record.Checklist,
		record.Check, record.Mode, record.Value, record.Pass, errorVal,
		string(groups),
		record.Duration.Milliseconds(), record.CreatedAt,
	)
	if err != nil {
		return NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query retrieves run records matching the query filters, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *Query) ([]*RunRecord, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT id, run_id, checklist, check_name, mode, value, pass, error, groups, duration, created_at FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY created_at DESC"

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)
	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*RunRecord{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of run records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Delete removes run records matching the query filters and returns the
// number of records deleted.
func (s *SQLiteStorage) Delete(ctx context.Context, query *Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	return count, nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("run-history storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters. Returns
// the clause (without the "WHERE" keyword) and the query arguments.
func buildWhereClause(query *Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.RunID != "" {
		conditions = append(conditions, "run_id = ?")
		args = append(args, query.RunID)
	}
	if query.Check != "" {
		conditions = append(conditions, "check_name = ?")
		args = append(args, query.Check)
	}
	if query.Since != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *query.Since)
	}
	if query.Until != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *query.Until)
	}
	if query.OnlyFailed {
		conditions = append(conditions, "(pass = 0 OR error IS NOT NULL)")
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow scans a database row into a RunRecord.
func scanRow(rows *sql.Rows) (*RunRecord, error) {
	var record RunRecord
	var groups string
	var errorVal sql.NullString
	var durationMs int64

	err := rows.Scan(
		&record.ID, &record.RunID, &record.Checklist,
		&record.Check, &record.Mode, &record.Value, &record.Pass, &errorVal,
		&groups,
		&durationMs, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if errorVal.Valid {
		record.Error = errorVal.String
	}
	if groups != "" && groups != "null" {
		if err := json.Unmarshal([]byte(groups), &record.Groups); err != nil {
			return nil, fmt.Errorf("corrupt groups column for record %s: %w", record.ID, err)
		}
	}
	record.Duration = time.Duration(durationMs) * time.Millisecond

	// Normalize an empty groups map back to nil for symmetry with Store.
	if len(record.Groups) == 0 {
		record.Groups = nil
	}

	return &record, nil
}
