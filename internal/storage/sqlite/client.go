// Package sqlite is a local, file-backed table store for development and
// tests. It creates the Posts schema on open.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/penwright/blog/internal/platform/storage/sqlitemigrate"
	"github.com/penwright/blog/internal/storage"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Client is a storage.Client backed by one SQLite database file.
type Client struct {
	db *sql.DB
}

var _ storage.Client = (*Client)(nil)

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Client, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrationsContext(ctx, db, migrationFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return &Client{db: db}, nil
}

// Table returns the named table. Invalid names fail on first use.
func (c *Client) Table(name string) storage.Table {
	return &table{db: c.db, name: name, nameErr: storage.ValidateIdentifier(name)}
}

// Ping checks the database handle.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the database.
func (c *Client) Close() error {
	return c.db.Close()
}

type table struct {
	db      *sql.DB
	name    string
	nameErr error
}

func (t *table) SelectAll(ctx context.Context) ([]storage.Row, error) {
	if t.nameErr != nil {
		return nil, t.nameErr
	}
	return t.query(ctx, "SELECT * FROM "+quote(t.name)+" ORDER BY id ASC")
}

func (t *table) SelectByID(ctx context.Context, id int64) (storage.Row, bool, error) {
	if t.nameErr != nil {
		return nil, false, t.nameErr
	}
	rows, err := t.query(ctx, "SELECT * FROM "+quote(t.name)+" WHERE id = ?", id)
	return first(rows, err)
}

func (t *table) Insert(ctx context.Context, row storage.Row) (storage.Row, error) {
	if t.nameErr != nil {
		return nil, t.nameErr
	}
	columns, err := storage.Columns(row)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, column := range columns {
		names[i] = quote(column)
		placeholders[i] = "?"
		args[i] = row[column]
	}
	rows, err := t.query(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quote(t.name), strings.Join(names, ", "), strings.Join(placeholders, ", ")), args...)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("sqlite: insert into %s returned %d rows", t.name, len(rows))
	}
	return rows[0], nil
}

func (t *table) Update(ctx context.Context, id int64, row storage.Row) (storage.Row, bool, error) {
	if t.nameErr != nil {
		return nil, false, t.nameErr
	}
	columns, err := storage.Columns(row)
	if err != nil {
		return nil, false, err
	}
	assignments := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, column := range columns {
		assignments[i] = quote(column) + " = ?"
		args = append(args, row[column])
	}
	args = append(args, id)
	rows, err := t.query(ctx, fmt.Sprintf("UPDATE %s SET %s WHERE id = ? RETURNING *",
		quote(t.name), strings.Join(assignments, ", ")), args...)
	return first(rows, err)
}

func (t *table) DeleteByID(ctx context.Context, id int64) error {
	if t.nameErr != nil {
		return t.nameErr
	}
	if _, err := t.db.ExecContext(ctx, "DELETE FROM "+quote(t.name)+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("sqlite: delete from %s: %w", t.name, err)
	}
	return nil
}

func (t *table) query(ctx context.Context, query string, args ...any) ([]storage.Row, error) {
	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query %s: %w", t.name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: columns: %w", err)
	}
	var out []storage.Row
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		row := make(storage.Row, len(columns))
		for i, column := range columns {
			row[column] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: rows: %w", err)
	}
	return out, nil
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func first(rows []storage.Row, err error) (storage.Row, bool, error) {
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0], true, nil
}
