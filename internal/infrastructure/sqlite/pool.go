// Package sqlite provides the embedded relational store backing the user
// and activity repositories. It wraps zombiezen.com/go/sqlite with a
// fixed-size Take/Put connection pool and production defaults: WAL journal
// mode so the engine serializes concurrent writers without blocking
// readers, and a busy timeout instead of immediate SQLITE_BUSY failures.
package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	sqlitelib "zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Config holds the parameters for opening a connection pool.
type Config struct {
	// Path is the filesystem path to the database file. The parent
	// directory must exist; the file is created if it does not. Use
	// ":memory:" with PoolSize 1 for tests.
	Path string

	// PoolSize is the number of connections. Defaults to 4 if zero or
	// negative; SQLite serializes writes regardless, extra connections
	// only help concurrent reads.
	PoolSize int

	// Logger receives operational messages.
	Logger *zap.Logger

	// OnConnect runs once per connection after the standard pragmas,
	// typically to apply the idempotent schema bootstrap. A returned
	// error discards the connection.
	OnConnect func(conn *sqlitelib.Conn) error
}

// Pool is a fixed-size pool of SQLite connections. It is safe for
// concurrent use; individual connections are not. Each caller must Take
// its own connection and Put it back on every exit path:
//
//	conn, err := pool.Take(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Put(conn)
type Pool struct {
	inner  *sqlitex.Pool
	logger *zap.Logger
	path   string
}

// NewPool opens the database file, creating it if absent, and prepares
// every connection with the standard pragmas plus cfg.OnConnect.
// Connections are initialized lazily on first Take.
func NewPool(cfg Config) (*Pool, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 4
	}

	inner, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize: poolSize,
		PrepareConn: func(conn *sqlitelib.Conn) error {
			return prepareConnection(conn, cfg.OnConnect)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %w", cfg.Path, err)
	}

	logger.Info("sqlite pool opened",
		zap.String("path", cfg.Path),
		zap.Int("pool_size", poolSize),
	)

	return &Pool{
		inner:  inner,
		logger: logger,
		path:   cfg.Path,
	}, nil
}

// Take borrows a connection, blocking until one is available or ctx is
// cancelled. The caller must Put it back when done.
func (p *Pool) Take(ctx context.Context) (*sqlitelib.Conn, error) {
	conn, err := p.inner.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: take: %w", err)
	}
	return conn, nil
}

// Put returns a connection to the pool. Safe to call with nil.
func (p *Pool) Put(conn *sqlitelib.Conn) {
	p.inner.Put(conn)
}

// Close closes all connections. Blocks until borrowed connections are
// returned; afterwards Take returns an error.
func (p *Pool) Close() error {
	if err := p.inner.Close(); err != nil {
		p.logger.Error("sqlite pool close error", zap.String("path", p.path), zap.Error(err))
		return fmt.Errorf("sqlite: closing %s: %w", p.path, err)
	}
	p.logger.Info("sqlite pool closed", zap.String("path", p.path))
	return nil
}

func prepareConnection(conn *sqlitelib.Conn, onConnect func(*sqlitelib.Conn) error) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	if onConnect != nil {
		if err := onConnect(conn); err != nil {
			return fmt.Errorf("sqlite: OnConnect: %w", err)
		}
	}

	return nil
}
