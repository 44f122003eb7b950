// Package sqlite implements the SQLite storage backend for the catalog.
// One database file holds the items table; every operation runs on a single
// connection guarded by the backend mutex.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Compile-time interface check: Backend must implement Catalog.
var _ types.Catalog = (*Backend)(nil)

// pragmas applied to every connection opened by Attach.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
	"PRAGMA synchronous=NORMAL",
}

// Backend implements the Catalog interface on a SQLite database file.
type Backend struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	path     string
	db       *sql.DB

	logger *slog.Logger
	now    func() time.Time
	sq     squirrel.StatementBuilderType
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for lifecycle and statement logging.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock replaces time.Now as the source of "today" for date stamping.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens the database file under config.DataDir, creating the
// directory and the schema when missing. Existing data is kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, config.DatabaseFile())
	db, err := openDB(path)
	if err != nil {
		return &types.StorageError{Op: "open database", Err: err}
	}

	for _, stmt := range schemaDDL() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return &types.StorageError{Op: "create schema", Err: err}
		}
	}

	b.db = db
	b.path = path
	b.config = config
	b.attached = true

	b.logger.Info("catalog attached", "path", path)
	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrCatalogDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return &types.StorageError{Op: "close database", Err: err}
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Info("catalog detached", "path", b.path)
	return nil
}

// Path returns the database file path of the attached catalog, or "" when
// detached.
func (b *Backend) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return ""
	}
	return b.path
}

// openDB opens path with a single connection so that every statement,
// pragma and transaction shares one SQLite session.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}
	return db, nil
}

// lock acquires the backend mutex and checks that the backend is attached.
// On success the caller must call the returned unlock function.
func (b *Backend) lock() (unlock func(), err error) {
	b.mu.Lock()
	if !b.attached {
		b.mu.Unlock()
		return nil, types.ErrCatalogDetached
	}
	return b.mu.Unlock, nil
}

// today returns the current calendar day in the clock's location.
func (b *Backend) today() types.Date {
	return types.DateOf(b.now())
}

// stamp returns the last_updated value for a write to an item added on
// dateAdded: today, or dateAdded when that lies in the future.
func (b *Backend) stamp(dateAdded types.Date) types.Date {
	today := b.today()
	if dateAdded.After(today) {
		return dateAdded
	}
	return today
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (b *Backend) logStatement(op, query string, args []any) {
	b.logger.Debug("sql", "op", op, "query", query, "args", len(args))
}
