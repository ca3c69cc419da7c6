package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"resume-roaster/internal/shared/telemetry"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// gooseLogger sends goose progress lines through telemetry.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	telemetry.Info("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

func (gooseLogger) Fatalf(format string, v ...any) {
	telemetry.Error("db.migrate_fatal", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
	os.Exit(1)
}

var (
	gooseOnce sync.Once
	gooseErr  error
)

func setupGoose() error {
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrationFiles)
		goose.SetLogger(gooseLogger{})
		gooseErr = goose.SetDialect("postgres")
	})
	return gooseErr
}

// Migrate applies pending resume-table migrations and returns the schema
// version afterwards. A nil database means records live in memory; nothing
// is applied.
func Migrate(ctx context.Context, database *sql.DB) (int64, error) {
	if database == nil {
		return 0, nil
	}
	if err := setupGoose(); err != nil {
		return 0, fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, database, migrationsDir); err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, database)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	telemetry.Info("db.migrated", map[string]any{"version": version})
	return version, nil
}
