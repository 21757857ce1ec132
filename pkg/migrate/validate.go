package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks filenames, version uniqueness, and goose annotations in one directory.
// It returns the migration filenames in order.
func ValidateDir(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}
		if prev, ok := seen[m[1]]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, name)
		}
		seen[m[1]] = name

		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read file %q: %w", name, err)
		}
		for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
			if !strings.Contains(string(b), marker) {
				return nil, fmt.Errorf("migration %q missing %q", name, marker)
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ValidateRoot validates every driver directory under root and requires them to
// hold the same migration filenames.
func ValidateRoot(root string) error {
	var reference []string
	for i, driver := range Drivers {
		names, err := ValidateDir(filepath.Join(root, driver))
		if err != nil {
			return fmt.Errorf("%s: %w", driver, err)
		}
		if i == 0 {
			reference = names
			continue
		}
		if strings.Join(names, ",") != strings.Join(reference, ",") {
			return fmt.Errorf("%s migrations differ from %s: %v vs %v", driver, Drivers[0], names, reference)
		}
	}
	return nil
}
