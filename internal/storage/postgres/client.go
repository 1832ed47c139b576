// Package postgres connects straight to the Postgres database behind the
// hosted REST API, for deployments that hold a database URL instead of an API
// key.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/penwright/blog/internal/storage"
)

// SQLSTATE codes for rejected credentials.
const (
	codeInvalidAuthorization = "28000"
	codeInvalidPassword      = "28P01"
)

// Config configures a Client.
type Config struct {
	DatabaseURL string
	MaxConns    int32
}

// Client is a storage.Client backed by a pgx pool.
type Client struct {
	pool *pgxpool.Pool
}

var _ storage.Client = (*Client)(nil)

// New parses cfg and creates a pool. Connections are established lazily;
// call Ping to verify reachability.
func New(ctx context.Context, cfg Config) (*Client, error) {
	dsn := strings.TrimSpace(cfg.DatabaseURL)
	if dsn == "" {
		return nil, errors.New("postgres: database url is required")
	}
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	return &Client{pool: pool}, nil
}

// Table returns the named table. Invalid names fail on first use.
func (c *Client) Table(name string) storage.Table {
	return &table{pool: c.pool, name: name, nameErr: storage.ValidateIdentifier(name)}
}

// Ping acquires a connection and round-trips to the server.
func (c *Client) Ping(ctx context.Context) error {
	return mapError(c.pool.Ping(ctx))
}

// Close closes every pooled connection.
func (c *Client) Close() error {
	c.pool.Close()
	return nil
}

type table struct {
	pool    *pgxpool.Pool
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
	rows, err := t.query(ctx, "SELECT * FROM "+quote(t.name)+" WHERE id = $1", id)
	return first(rows, err)
}

func (t *table) Insert(ctx context.Context, row storage.Row) (storage.Row, error) {
	if t.nameErr != nil {
		return nil, t.nameErr
	}
	sql, args, err := insertStatement(t.name, row)
	if err != nil {
		return nil, err
	}
	rows, err := t.query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("postgres: insert into %s returned %d rows", t.name, len(rows))
	}
	return rows[0], nil
}

func (t *table) Update(ctx context.Context, id int64, row storage.Row) (storage.Row, bool, error) {
	if t.nameErr != nil {
		return nil, false, t.nameErr
	}
	sql, args, err := updateStatement(t.name, id, row)
	if err != nil {
		return nil, false, err
	}
	rows, err := t.query(ctx, sql, args...)
	return first(rows, err)
}

func (t *table) DeleteByID(ctx context.Context, id int64) error {
	if t.nameErr != nil {
		return t.nameErr
	}
	if _, err := t.pool.Exec(ctx, "DELETE FROM "+quote(t.name)+" WHERE id = $1", id); err != nil {
		return mapError(err)
	}
	return nil
}

func (t *table) query(ctx context.Context, sql string, args ...any) ([]storage.Row, error) {
	rows, err := t.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]storage.Row, 0, len(maps))
	for _, m := range maps {
		out = append(out, storage.Row(m))
	}
	return out, nil
}

func insertStatement(tableName string, row storage.Row) (string, []any, error) {
	columns, err := storage.Columns(row)
	if err != nil {
		return "", nil, err
	}
	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, column := range columns {
		names[i] = quote(column)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[column]
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quote(tableName), strings.Join(names, ", "), strings.Join(placeholders, ", "))
	return sql, args, nil
}

func updateStatement(tableName string, id int64, row storage.Row) (string, []any, error) {
	columns, err := storage.Columns(row)
	if err != nil {
		return "", nil, err
	}
	assignments := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", quote(column), i+1)
		args = append(args, row[column])
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		quote(tableName), strings.Join(assignments, ", "), len(args))
	return sql, args, nil
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
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

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeInvalidAuthorization, codeInvalidPassword:
			return fmt.Errorf("%w: %w", storage.ErrUnauthorized, err)
		}
	}
	return fmt.Errorf("postgres: %w", err)
}
