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

// ValidateBase validates every dialect subdirectory under baseDir and checks
// that the dialects carry the same migration filenames, so a schema change
// cannot land for one database engine only.
func ValidateBase(baseDir string) error {
	if baseDir == "" {
		return fmt.Errorf("baseDir is required")
	}

	names := map[string][]string{}
	for _, dialect := range dialectDirs {
		dir := filepath.Join(baseDir, dialect)
		files, err := validateDir(dir)
		if err != nil {
			return err
		}
		names[dialect] = files
	}

	reference := names[dialectDirs[0]]
	for _, dialect := range dialectDirs[1:] {
		if strings.Join(names[dialect], ",") != strings.Join(reference, ",") {
			return fmt.Errorf("migration sets diverge: %s has %v, %s has %v",
				dialectDirs[0], reference, dialect, names[dialect])
		}
	}
	return nil
}

// ValidateDir validates migration filenames and basic goose headers in a
// single directory.
func ValidateDir(dir string) error {
	_, err := validateDir(dir)
	return err
}

func validateDir(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename
	var files []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name
		files = append(files, name)

		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("read file %q: %w", full, err)
		}

		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		}
		if !strings.Contains(txt, "-- +goose Down") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		}
	}

	sort.Strings(files)
	return files, nil
}
