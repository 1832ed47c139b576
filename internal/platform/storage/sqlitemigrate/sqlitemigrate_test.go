package sqlitemigrate

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyMigrationsRecordsApplied(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"migrations/001_posts.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE posts (id INTEGER PRIMARY KEY);\n-- +migrate Down\nDROP TABLE posts;\n")},
		"migrations/002_title.sql": {Data: []byte("-- +migrate Up\nALTER TABLE posts ADD COLUMN title TEXT;\n")},
		"migrations/README.md":     {Data: []byte("ignored")},
	}

	if err := ApplyMigrations(db, migrations, "migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	// Second run is a no-op; the ALTER would fail if replayed.
	if err := ApplyMigrations(db, migrations, "migrations"); err != nil {
		t.Fatalf("reapply migrations: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count applied: %v", err)
	}
	if count != 2 {
		t.Fatalf("applied count = %d, want 2", count)
	}
	if _, err := db.Exec("INSERT INTO posts (id, title) VALUES (1, 'x')"); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}
}

func TestApplyMigrationsRootDot(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (id INTEGER);")},
	}
	if err := ApplyMigrations(db, migrations, ""); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	var name string
	if err := db.QueryRow("SELECT name FROM schema_migrations").Scan(&name); err != nil {
		t.Fatalf("read applied name: %v", err)
	}
	if name != "001_init.sql" {
		t.Fatalf("name = %q, want 001_init.sql", name)
	}
}

func TestApplyMigrationsReportsFailingFile(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"m/001_bad.sql": {Data: []byte("CREATE TABLEX nope;")},
	}
	err := ApplyMigrations(db, migrations, "m")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "001_bad.sql") {
		t.Fatalf("error %q should name the failing file", err)
	}
}

func TestApplyMigrationsRequiresDB(t *testing.T) {
	if err := ApplyMigrations(nil, fstest.MapFS{}, "."); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "SELECT 1;", want: "SELECT 1;"},
		{name: "up only", content: "-- +migrate Up\nSELECT 1;", want: "\nSELECT 1;"},
		{name: "up and down", content: "-- +migrate Up\nSELECT 1;\n-- +migrate Down\nSELECT 2;", want: "\nSELECT 1;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractUpMigration(tt.content); got != tt.want {
				t.Fatalf("ExtractUpMigration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	if IsAlreadyExistsError(nil) {
		t.Fatal("nil error should not match")
	}
	if !IsAlreadyExistsError(errors.New("table posts already exists")) {
		t.Fatal("expected already exists match")
	}
	if !IsAlreadyExistsError(errors.New("duplicate column name: title")) {
		t.Fatal("expected duplicate column match")
	}
	if IsAlreadyExistsError(errors.New("syntax error")) {
		t.Fatal("syntax error should not match")
	}
}
