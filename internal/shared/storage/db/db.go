package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"resume-roaster/internal/shared/config"
	"resume-roaster/internal/shared/telemetry"
)

// ErrNoDatabaseURL is returned when no connection string is configured.
var ErrNoDatabaseURL = errors.New("DATABASE_URL is empty")

// Pool sizes the connection pool of one kind of process.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
	PingTimeout time.Duration
}

var (
	// ServerPool suits the API process, which also runs the upload sweeper.
	ServerPool = Pool{MaxOpen: 10, MaxIdle: 5, MaxLifetime: time.Hour, MaxIdleTime: 2 * time.Minute, PingTimeout: 5 * time.Second}
	// CommandPool suits one-shot commands such as cmd/migrate.
	CommandPool = Pool{MaxOpen: 1, MaxIdle: 1, MaxLifetime: time.Hour, MaxIdleTime: 2 * time.Minute, PingTimeout: 5 * time.Second}
)

// WithConfig returns p with every positive DB_* setting from cfg applied.
func (p Pool) WithConfig(cfg config.Config) Pool {
	if cfg.DBMaxOpenConns > 0 {
		p.MaxOpen = cfg.DBMaxOpenConns
	}
	if cfg.DBMaxIdleConns > 0 {
		p.MaxIdle = cfg.DBMaxIdleConns
	}
	if cfg.DBConnMaxLifetime > 0 {
		p.MaxLifetime = cfg.DBConnMaxLifetime
	}
	if cfg.DBConnMaxIdleTime > 0 {
		p.MaxIdleTime = cfg.DBConnMaxIdleTime
	}
	if cfg.DBPingTimeout > 0 {
		p.PingTimeout = cfg.DBPingTimeout
	}
	return p
}

func (p Pool) apply(db *sql.DB) {
	if p.MaxIdle > p.MaxOpen && p.MaxOpen > 0 {
		p.MaxIdle = p.MaxOpen
	}
	db.SetMaxOpenConns(p.MaxOpen)
	db.SetMaxIdleConns(p.MaxIdle)
	db.SetConnMaxLifetime(p.MaxLifetime)
	db.SetConnMaxIdleTime(p.MaxIdleTime)
}

var openDB = sql.Open

// Open connects to Postgres through pgx and pings before returning.
func Open(ctx context.Context, databaseURL string, pool Pool) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, ErrNoDatabaseURL
	}
	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool.apply(db)

	timeout := pool.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	stats := db.Stats()
	telemetry.Info("db.connected", map[string]any{
		"max_open": stats.MaxOpenConnections,
		"open":     stats.OpenConnections,
		"idle":     stats.Idle,
	})
	return db, nil
}

var shared struct {
	mu sync.Mutex
	db *sql.DB
}

// Shared returns the process-wide handle, opening it on first use. A failed
// open is not cached, so the next call tries again.
func Shared(ctx context.Context, databaseURL string, pool Pool) (*sql.DB, error) {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if shared.db != nil {
		return shared.db, nil
	}
	db, err := Open(ctx, databaseURL, pool)
	if err != nil {
		return nil, err
	}
	shared.db = db
	return db, nil
}

// CloseShared closes the process-wide handle if one is open.
func CloseShared() error {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if shared.db == nil {
		return nil
	}
	err := shared.db.Close()
	shared.db = nil
	return err
}
