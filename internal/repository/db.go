package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"auctionary/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MemoryPath opens a private in-memory SQLite database
const MemoryPath = ":memory:"

// Config holds database connection settings
type Config struct {
	// Driver is "sqlite" or "postgres"
	Driver string

	// Path is the SQLite database file, or MemoryPath
	Path string

	// DSN is the PostgreSQL connection string
	DSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// BusyTimeout is how long SQLite waits on a locked database, in milliseconds
	BusyTimeout int
}

// DefaultConfig returns an SQLite configuration for the given file
func DefaultConfig(path string) Config {
	return Config{
		Driver:          DriverSQLite,
		Path:            path,
		MaxOpenConns:    1, // single writer
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		BusyTimeout:     5000,
	}
}

// DB wraps the sql.DB handle together with its SQL dialect
type DB struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the configured database and verifies the connection
func Open(ctx context.Context, cfg Config) (*DB, error) {
	var (
		d   dialect
		dsn string
	)

	switch cfg.Driver {
	case DriverSQLite, "":
		d = sqliteDialect
		dsn = fmt.Sprintf(
			"%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
			cfg.Path, cfg.BusyTimeout,
		)
		if cfg.Path == MemoryPath {
			// every connection to :memory: is a separate database
			cfg.MaxOpenConns = 1
			cfg.MaxIdleConns = 1
			cfg.ConnMaxLifetime = 0
		} else if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	case DriverPostgres:
		d = postgresDialect
		dsn = cfg.DSN
	default:
		return nil, fmt.Errorf("open database: unsupported driver %q", cfg.Driver)
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	utils.Info("connected to database", map[string]any{
		"driver":    d.name,
		"path":      cfg.Path,
		"max_conns": cfg.MaxOpenConns,
	})

	return &DB{db: db, dialect: d}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.db.Close()
}

// Ping checks the database connection
func (db *DB) Ping(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

// conn returns a dialect-aware handle outside of any transaction
func (db *DB) conn() conn {
	return conn{q: db.db, d: db.dialect}
}

// WithTx runs fn inside a transaction, committing if fn returns nil.
// fn must only use the conn it is given.
func (db *DB) WithTx(ctx context.Context, fn func(c conn) error) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(conn{q: tx, d: db.dialect}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Migrate applies every embedded migration newer than the recorded schema version
func (db *DB) Migrate(ctx context.Context) error {
	c := db.conn()
	if _, err := c.exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at BIGINT NOT NULL
		)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var current int
	if err := c.queryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	dir := "migrations/" + db.dialect.name
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		version, err := migrationVersion(entry.Name())
		if err != nil {
			return err
		}
		if version <= current {
			continue
		}

		script, err := migrationsFS.ReadFile(dir + "/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		err = db.WithTx(ctx, func(tx conn) error {
			if _, err := tx.exec(ctx, string(script)); err != nil {
				return err
			}
			_, err := tx.exec(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
				version, time.Now().UnixMilli())
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}

		utils.Info("applied migration", map[string]any{"version": version, "file": entry.Name()})
	}

	return nil
}

// migrationVersion parses the numeric prefix of names like 0001_init.sql
func migrationVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("migration %s: missing version prefix", name)
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("migration %s: %w", name, err)
	}
	return v, nil
}
