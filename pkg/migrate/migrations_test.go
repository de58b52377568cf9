package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsBaseIsValid(t *testing.T) {
	if err := ValidateBase("migrations"); err != nil {
		t.Fatalf("migrations base failed validation: %v", err)
	}
}

func TestDialectDirsCarrySameVersions(t *testing.T) {
	sqlite, err := validateDir(filepath.Join("migrations", "sqlite3"))
	if err != nil {
		t.Fatalf("sqlite3 dir: %v", err)
	}
	postgres, err := validateDir(filepath.Join("migrations", "postgres"))
	if err != nil {
		t.Fatalf("postgres dir: %v", err)
	}
	if len(sqlite) == 0 {
		t.Fatal("expected at least one migration")
	}
	if strings.Join(sqlite, ",") != strings.Join(postgres, ",") {
		t.Fatalf("dialect sets diverge: sqlite3=%v postgres=%v", sqlite, postgres)
	}
}

func readMigration(t *testing.T, dialect string) string {
	t.Helper()
	dir := filepath.Join("migrations", dialect)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s dir: %v", dialect, err)
	}

	var found string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_create_food_items.sql") {
			found = e.Name()
		}
	}
	if found == "" {
		t.Fatalf("expected a create_food_items migration for %s", dialect)
	}

	b, err := os.ReadFile(filepath.Join(dir, found))
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	return string(b)
}

func TestFoodItemsMigrationShape(t *testing.T) {
	for _, dialect := range dialectDirs {
		txt := readMigration(t, dialect)
		for _, col := range []string{"name", "quantity", "unit", "expiry_date", "last_used_date", "meals_without", "added_date"} {
			if !strings.Contains(txt, col) {
				t.Errorf("%s migration missing column %q", dialect, col)
			}
		}
		if !strings.Contains(txt, "DROP TABLE food_items") {
			t.Errorf("%s migration missing down statement", dialect)
		}
	}
}

func TestFoodItemsMigrationUsesDialectIdentity(t *testing.T) {
	sqlite := readMigration(t, "sqlite3")
	if !strings.Contains(sqlite, "INTEGER PRIMARY KEY AUTOINCREMENT") {
		t.Error("sqlite3 migration should use AUTOINCREMENT for id generation")
	}

	postgres := readMigration(t, "postgres")
	if strings.Contains(postgres, "AUTOINCREMENT") {
		t.Error("postgres migration must not use the sqlite AUTOINCREMENT keyword")
	}
	if !strings.Contains(postgres, "GENERATED ALWAYS AS IDENTITY") {
		t.Error("postgres migration must auto-generate id via an identity column")
	}
}

func TestDirFor(t *testing.T) {
	if got := DirFor("migrations", "sqlite"); got != filepath.Join("migrations", "sqlite3") {
		t.Fatalf("unexpected sqlite dir %q", got)
	}
	if got := DirFor("migrations", "postgres"); got != filepath.Join("migrations", "postgres") {
		t.Fatalf("unexpected postgres dir %q", got)
	}
}

func TestCreateSQLMigrationKeepsDialectsInLockstep(t *testing.T) {
	base := t.TempDir()
	paths, err := CreateSQLMigration(base, "Add Stores Table")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if len(paths) != len(dialectDirs) {
		t.Fatalf("expected %d files, got %v", len(dialectDirs), paths)
	}

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
		if !strings.HasSuffix(p, "_add_stores_table.sql") {
			t.Errorf("unexpected filename %q", p)
		}
	}
	if names[0] != names[1] {
		t.Fatalf("dialect files carry different versions: %v", names)
	}

	if err := ValidateBase(base); err != nil {
		t.Fatalf("created skeletons failed validation: %v", err)
	}
}
