package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/orderdesk-backend/pkg/config"
)

func init() {
	goose.SetLogger(goose.NopLogger())
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRunEmbeddedUpAndDown(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t)

	require.NoError(t, RunEmbedded(ctx, conn, config.DriverSQLite, "up"))

	version, err := CurrentVersion(ctx, conn, config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(20250301090500), version)

	_, err = conn.Exec(`INSERT INTO orders (user_id, order_date, order_number) VALUES ('1', '2024-01-01', 'A-100')`)
	require.NoError(t, err)
	_, err = conn.Exec(`UPDATE orders SET deleted_at = CURRENT_TIMESTAMP WHERE order_number = 'A-100'`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO orders (user_id, order_date, order_number) VALUES ('2', '2024-01-02', 'A-100')`)
	require.Error(t, err, "tombstoned numbers stay reserved")
	assert.Contains(t, err.Error(), "orders.order_number")

	require.NoError(t, RunEmbedded(ctx, conn, config.DriverSQLite, "down"))
	version, err = CurrentVersion(ctx, conn, config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(20250301090000), version)
}

func TestMigrateToVersion(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t)
	dir := filepath.Join("migrations", config.DriverSQLite)

	require.NoError(t, MigrateToVersion(ctx, conn, config.DriverSQLite, dir, "20250301090000"))
	version, err := CurrentVersion(ctx, conn, config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(20250301090000), version)

	_, err = conn.Exec(`SELECT id FROM orders`)
	assert.Error(t, err)

	assert.Error(t, MigrateToVersion(ctx, conn, config.DriverSQLite, dir, "latest"))
	assert.Error(t, MigrateToVersion(ctx, conn, config.DriverSQLite, dir, ""))
}

func TestDialect(t *testing.T) {
	for driver, want := range map[string]string{
		config.DriverPostgres: "postgres",
		config.DriverMySQL:    "mysql",
		config.DriverSQLite:   "sqlite3",
	} {
		got, err := Dialect(driver)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := Dialect("oracle")
	assert.Error(t, err)
	assert.Equal(t, filepath.Join(DefaultDir, "mysql"), DirFor("mysql"))
}

func TestShippedMigrationsAreConsistent(t *testing.T) {
	require.NoError(t, ValidateRoot("migrations"))
}

func TestMigrationsDeclareUniqueIndexes(t *testing.T) {
	for _, driver := range Drivers {
		users, err := os.ReadFile(filepath.Join("migrations", driver, "20250301090000_create_users.sql"))
		require.NoError(t, err)
		orders, err := os.ReadFile(filepath.Join("migrations", driver, "20250301090500_create_orders.sql"))
		require.NoError(t, err)

		for _, idx := range []string{"uq_users_username", "uq_users_phone", "uq_users_email"} {
			assert.Contains(t, string(users), idx, driver)
		}
		assert.Contains(t, string(orders), "uq_orders_order_number", driver)
		assert.Contains(t, string(orders), "deleted_at", driver)
		assert.NotContains(t, strings.ToUpper(string(orders)), "WHERE DELETED_AT", driver)
	}
}

func TestCreateSQLMigrations(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	paths, err := CreateSQLMigrations(root, "Add Order Notes!", now)
	require.NoError(t, err)
	require.Len(t, paths, len(Drivers))
	for i, driver := range Drivers {
		assert.Equal(t, filepath.Join(root, driver, "20250401120000_add_order_notes.sql"), paths[i])
	}
	require.NoError(t, ValidateRoot(root))

	_, err = CreateSQLMigrations(root, "add order notes", now)
	assert.Error(t, err)

	_, err = CreateSQLMigrations(root, "!!!", now)
	assert.Error(t, err)
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_bad.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	_, err := ValidateDir(dir)
	assert.Error(t, err)

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_no_down.sql"), []byte("-- +goose Up\n"), 0o644))
	_, err = ValidateDir(dir)
	assert.Error(t, err)

	root := t.TempDir()
	for _, driver := range Drivers {
		require.NoError(t, os.MkdirAll(filepath.Join(root, driver), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, config.DriverPostgres, "20250101000000_only_pg.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateRoot(root))
}
