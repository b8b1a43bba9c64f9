package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"NewsAggregator/internal/config"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// DB wraps a sql.DB together with the statement builder for its dialect.
type DB struct {
	db      *sql.DB
	dialect string
	builder sq.StatementBuilderType
	now     func() time.Time
}

// Open connects to the configured store and applies the embedded schema.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	dialect := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if dialect == "" {
		dialect = DialectSQLite
	}

	var (
		db  *sql.DB
		err error
	)
	switch dialect {
	case DialectSQLite:
		db, err = openSQLite(cfg.DSN)
	case DialectPostgres:
		db, err = sql.Open("postgres", cfg.DSN)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping database: %w", err)
	}

	store := newDB(db, dialect)
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func newDB(db *sql.DB, dialect string) *DB {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dialect == DialectPostgres {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &DB{db: db, dialect: dialect, builder: builder, now: time.Now}
}

func openSQLite(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = "db/news.db"
	}

	path := dsn
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimPrefix(path, "file:")
	if path != ":memory:" && path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite", dsn+sep+"_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// one writer at a time keeps the url uniqueness race inside sqlite's lock
	db.SetMaxOpenConns(1)
	return db, nil
}

func (d *DB) migrate(ctx context.Context) error {
	ddl, err := schemaFS.ReadFile("schema/" + d.dialect + ".sql")
	if err != nil {
		return fmt.Errorf("storage: read schema: %w", err)
	}
	if _, err := d.db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("storage: apply schema: %w", err)
	}
	return nil
}

// Dialect reports the active SQL dialect.
func (d *DB) Dialect() string {
	return d.dialect
}

// Ping checks that the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("storage: ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}
