package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/angelmondragon/orderdesk-backend/pkg/config"
)

// DefaultDir is the on-disk root holding one migration directory per driver.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/*/*.sql
var embedded embed.FS

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// DirFor returns the on-disk migration directory for a database driver.
func DirFor(driver string) string {
	return filepath.Join(DefaultDir, driver)
}

// Dialect maps a config driver name onto the goose dialect.
func Dialect(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "postgres", nil
	case config.DriverMySQL:
		return "mysql", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// Run executes a goose command against migrations read from dir on disk.
func Run(ctx context.Context, db *sql.DB, driver, dir, command string, args ...string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	return withGoose(driver, nil, func() error {
		return run(ctx, db, dir, command, args...)
	})
}

// RunEmbedded executes a goose command against the migrations compiled into the binary.
func RunEmbedded(ctx context.Context, db *sql.DB, driver, command string, args ...string) error {
	return withGoose(driver, embedded, func() error {
		return run(ctx, db, path.Join("migrations", driver), command, args...)
	})
}

func run(ctx context.Context, db *sql.DB, dir, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion moves the schema up or down until it matches targetVersion.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver, dir, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	return withGoose(driver, nil, func() error {
		current, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("get db version: %w", err)
		}
		switch {
		case current == target:
			return nil
		case current < target:
			if err := goose.UpToContext(ctx, db, dir, target); err != nil {
				return fmt.Errorf("goose up-to %d: %w", target, err)
			}
		default:
			if err := goose.DownToContext(ctx, db, dir, target); err != nil {
				return fmt.Errorf("goose down-to %d: %w", target, err)
			}
		}
		return nil
	})
}

// CurrentVersion reports the latest applied migration version.
func CurrentVersion(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	var version int64
	err := withGoose(driver, nil, func() error {
		v, err := goose.GetDBVersionContext(ctx, db)
		version = v
		return err
	})
	return version, err
}

func withGoose(driver string, fsys fs.FS, fn func() error) error {
	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	return fn()
}
