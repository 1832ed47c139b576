package post

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/penwright/blog/internal/storage"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// decodeRow converts a driver row into a Post. Drivers disagree on numeric
// and timestamp shapes, so every shape they produce is accepted here and
// anything else is rejected.
func decodeRow(row storage.Row) (Post, error) {
	id, err := decodeID(row[ColumnID])
	if err != nil {
		return Post{}, err
	}
	p := Post{ID: id}

	textColumns := []struct {
		column string
		target *string
	}{
		{ColumnTitle, &p.Title},
		{ColumnCategory, &p.Category},
		{ColumnSnippetDescription, &p.SnippetDescription},
		{ColumnFirstPartContent, &p.FirstPartContent},
	}
	for _, tc := range textColumns {
		value, present, err := decodeText(row[tc.column])
		if err != nil {
			return Post{}, fmt.Errorf("post %d: %s: %w", id, tc.column, err)
		}
		if present {
			*tc.target = value
		}
	}

	second, present, err := decodeText(row[ColumnSecondPartContent])
	if err != nil {
		return Post{}, fmt.Errorf("post %d: %s: %w", id, ColumnSecondPartContent, err)
	}
	if present {
		p.SecondPartContent = &second
	}

	createdAt, err := decodeTime(row[ColumnCreatedAt])
	if err != nil {
		return Post{}, fmt.Errorf("post %d: %s: %w", id, ColumnCreatedAt, err)
	}
	p.CreatedAt = createdAt
	return p, nil
}

func decodeID(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, fmt.Errorf("id %v is not an integer", v)
		}
		return int64(v), nil
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("id %q: %w", v, err)
		}
		return id, nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("id %q: %w", v, err)
		}
		return id, nil
	case nil:
		return 0, fmt.Errorf("row has no id")
	default:
		return 0, fmt.Errorf("id has unsupported type %T", value)
	}
}

// decodeText reports present=false for SQL NULL.
func decodeText(value any) (string, bool, error) {
	switch v := value.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case []byte:
		return string(v), true, nil
	default:
		return "", false, fmt.Errorf("unsupported type %T", value)
	}
}

func decodeTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v.UTC(), nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return time.Time{}, nil
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
	default:
		return time.Time{}, fmt.Errorf("unsupported type %T", value)
	}
}
