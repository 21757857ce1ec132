package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/angelmondragon/orderdesk-backend/pkg/config"
)

var nameSanitizeRe = regexp.MustCompile(`[^a-z0-9_]+`)

// Drivers lists the dialects that each carry a full migration set.
var Drivers = []string{config.DriverPostgres, config.DriverMySQL, config.DriverSQLite}

const migrationTemplate = `-- +goose Up
-- %[1]s

-- +goose Down
-- rollback %[1]s
`

// CreateSQLMigrations writes <root>/<driver>/<YYYYMMDDHHMMSS>_<name>.sql for every
// driver using one shared version, so the dialects stay in lockstep.
func CreateSQLMigrations(root, name string, now time.Time) ([]string, error) {
	if root == "" {
		return nil, fmt.Errorf("dir is required")
	}
	safe := sanitizeName(name)
	if safe == "" {
		return nil, fmt.Errorf("name %q results in empty sanitized filename", name)
	}

	filename := fmt.Sprintf("%s_%s.sql", now.UTC().Format("20060102150405"), safe)
	paths := make([]string, 0, len(Drivers))
	for _, driver := range Drivers {
		full := filepath.Join(root, driver, filename)
		if _, err := os.Stat(full); err == nil {
			return nil, fmt.Errorf("migration already exists: %s", full)
		}
		paths = append(paths, full)
	}

	for _, full := range paths {
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %q: %w", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(fmt.Sprintf(migrationTemplate, safe)), 0o644); err != nil {
			return nil, fmt.Errorf("write migration %q: %w", full, err)
		}
	}
	return paths, nil
}

func sanitizeName(name string) string {
	safe := strings.ToLower(strings.TrimSpace(name))
	safe = nameSanitizeRe.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}
