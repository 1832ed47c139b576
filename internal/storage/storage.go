package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrUnauthorized reports that the store rejected the configured credentials.
var ErrUnauthorized = errors.New("storage: credentials rejected")

// Row is one loosely typed record as returned by a driver. Numeric columns
// may arrive as int64, float64 or json.Number depending on the driver; text
// as string; SQL NULL as nil.
type Row map[string]any

// Table addresses one logical table by its "id" primary key.
type Table interface {
	// SelectAll returns every row ordered by id ascending.
	SelectAll(ctx context.Context) ([]Row, error)
	// SelectByID returns the row with id, or false when none exists.
	SelectByID(ctx context.Context, id int64) (Row, bool, error)
	// Insert writes row and returns it as stored, including assigned columns.
	Insert(ctx context.Context, row Row) (Row, error)
	// Update overwrites the given columns of row id and returns the stored
	// row, or false when no row matched.
	Update(ctx context.Context, id int64, row Row) (Row, bool, error)
	// DeleteByID removes row id. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}

// Client is a connected store.
type Client interface {
	Table(name string) Table
	Ping(ctx context.Context) error
	Close() error
}

// ValidateIdentifier checks that name is usable as a table or column name:
// ASCII letters, digits and underscores, not starting with a digit.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("storage: identifier is required")
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return fmt.Errorf("storage: invalid identifier %q", name)
		}
	}
	return nil
}

// Columns returns the validated column names of row in sorted order, so
// generated statements are deterministic.
func Columns(row Row) ([]string, error) {
	if len(row) == 0 {
		return nil, fmt.Errorf("storage: row has no columns")
	}
	columns := make([]string, 0, len(row))
	for name := range row {
		if err := ValidateIdentifier(name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns, nil
}
