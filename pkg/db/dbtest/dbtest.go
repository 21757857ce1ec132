// Package dbtest opens migrated in-memory SQLite databases for package tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	"github.com/angelmondragon/orderdesk-backend/pkg/db"
	"github.com/angelmondragon/orderdesk-backend/pkg/migrate"
)

var counter atomic.Int64

func init() {
	goose.SetLogger(goose.NopLogger())
}

// New returns a client on a fresh shared-cache SQLite database with every
// embedded migration applied. The database is closed with the test.
func New(t *testing.T) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, counter.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, migrate.RunEmbedded(context.Background(), sqlDB, config.DriverSQLite, "up"))

	client := db.NewFromGorm(conn, config.DriverSQLite)
	t.Cleanup(func() { _ = client.Close() })
	return client
}
