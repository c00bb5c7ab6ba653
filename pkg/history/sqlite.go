package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"sieve-hq/sieve/pkg/config"
)

// SQLite driver names registered with database/sql.
const (
	// DriverCgo is github.com/mattn/go-sqlite3. Requires cgo.
	DriverCgo = "sqlite3"

	// DriverModernc is modernc.org/sqlite, a pure Go port.
	DriverModernc = "sqlite"
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Driver is DriverCgo or DriverModernc.
	// Default: DriverModernc
	Driver string

	// Path is the database file path. Parent directories are created.
	Path string

	// WALMode enables Write-Ahead Logging mode.
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config SQLiteConfig
	logger *slog.Logger
}

// Open creates the database if needed and returns a ready store.
func Open(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverModernc
	}
	if cfg.Driver != DriverCgo && cfg.Driver != DriverModernc {
		return nil, NewStorageError("sqlite", "open", fmt.Errorf("unknown driver %q", cfg.Driver))
	}
	if cfg.Path == "" {
		return nil, NewStorageError("sqlite", "open", errors.New("path is required"))
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	logger := slog.Default().With("component", "history.sqlite")

	if dir := filepath.Dir(cfg.Path); dir != "." && cfg.Path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError("sqlite", "mkdir", err)
		}
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	// Pragmas are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:     db,
		config: cfg,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("history store opened",
		"path", cfg.Path,
		"driver", cfg.Driver,
		"wal_mode", cfg.WALMode,
	)

	return s, nil
}

// OpenFromConfig opens the store described by cfg. A disabled history
// yields an empty MemoryStore so callers need no special case.
func OpenFromConfig(cfg *config.HistoryConfig) (Store, error) {
	if cfg == nil || !cfg.Enabled {
		return NewMemoryStore(), nil
	}
	return Open(SQLiteConfig{
		Driver:      cfg.Driver,
		Path:        cfg.Path,
		WALMode:     cfg.WALMode,
		BusyTimeout: cfg.BusyTimeout,
	})
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version sql.NullInt64
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version.Int64 != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version.Int64))
	}

	return nil
}

// Save inserts rec. Saving an ID twice is an error.
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	tokens, err := marshalJSON(rec.Tokens)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}
	args, err := marshalJSON(rec.Args)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}
	options, err := marshalJSON(rec.Options)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}
	diagnostics, err := marshalJSON(rec.Diagnostics)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, schema_path,
			tokens, args, options, diagnostics,
			diagnostic_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, unixNanos(rec.CreatedAt), rec.SchemaPath,
		tokens, args, options, diagnostics,
		len(rec.Diagnostics),
	)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}
	return nil
}

var (
	minStoredTime = time.Unix(0, math.MinInt64)
	maxStoredTime = time.Unix(0, math.MaxInt64)
)

// unixNanos converts t to the created_at column encoding. Times outside the
// range of int64 nanoseconds saturate instead of wrapping.
func unixNanos(t time.Time) int64 {
	switch {
	case t.Before(minStoredTime):
		return math.MinInt64
	case t.After(maxStoredTime):
		return math.MaxInt64
	}
	return t.UnixNano()
}

const selectColumns = `SELECT id, created_at, schema_path, tokens, args, options, diagnostics FROM runs`

// Get returns the record with the given ID, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "get", err)
	}
	return rec, nil
}

// List returns records matching q, newest first.
func (s *SQLiteStore) List(ctx context.Context, q Query) ([]*Record, error) {
	query := selectColumns + " WHERE 1=1"
	var args []any

	if !q.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, unixNanos(q.Since))
	}
	if q.ErrorsOnly {
		query += " AND diagnostic_count > 0"
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteBefore removes records created before cutoff.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.exec(ctx, "delete_before", "DELETE FROM runs WHERE created_at < ?", unixNanos(cutoff))
}

// DeleteOldest removes all but the newest keep records.
func (s *SQLiteStore) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	return s.exec(ctx, "delete_oldest", `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
}

func (s *SQLiteStore) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, NewStorageError("sqlite", op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", op, err)
	}
	return n, nil
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	s.logger.Debug("history store closed")
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec                                Record
		createdAt                          int64
		tokens, args, options, diagnostics string
	)
	if err := row.Scan(&rec.ID, &createdAt, &rec.SchemaPath, &tokens, &args, &options, &diagnostics); err != nil {
		return nil, err
	}
	rec.CreatedAt = time.Unix(0, createdAt).UTC()

	if err := json.Unmarshal([]byte(tokens), &rec.Tokens); err != nil {
		return nil, fmt.Errorf("decode tokens: %w", err)
	}
	if err := json.Unmarshal([]byte(args), &rec.Args); err != nil {
		return nil, fmt.Errorf("decode args: %w", err)
	}
	if err := json.Unmarshal([]byte(options), &rec.Options); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	if err := json.Unmarshal([]byte(diagnostics), &rec.Diagnostics); err != nil {
		return nil, fmt.Errorf("decode diagnostics: %w", err)
	}
	return &rec, nil
}

// marshalJSON encodes v, writing nil slices as empty arrays.
func marshalJSON[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
