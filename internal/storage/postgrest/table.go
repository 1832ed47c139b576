package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/penwright/blog/internal/storage"
)

type table struct {
	client  *Client
	name    string
	nameErr error
}

func (t *table) SelectAll(ctx context.Context) ([]storage.Row, error) {
	if t.nameErr != nil {
		return nil, t.nameErr
	}
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "id.asc")
	return t.fetch(ctx, http.MethodGet, query, nil, nil)
}

func (t *table) SelectByID(ctx context.Context, id int64) (storage.Row, bool, error) {
	if t.nameErr != nil {
		return nil, false, t.nameErr
	}
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", idFilter(id))
	rows, err := t.fetch(ctx, http.MethodGet, query, nil, nil)
	return first(rows, err)
}

func (t *table) Insert(ctx context.Context, row storage.Row) (storage.Row, error) {
	if t.nameErr != nil {
		return nil, t.nameErr
	}
	body, err := encodeRow(row)
	if err != nil {
		return nil, err
	}
	rows, err := t.fetch(ctx, http.MethodPost, url.Values{"select": {"*"}}, body, returnRepresentation())
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("postgrest: insert into %s returned %d rows", t.name, len(rows))
	}
	return rows[0], nil
}

func (t *table) Update(ctx context.Context, id int64, row storage.Row) (storage.Row, bool, error) {
	if t.nameErr != nil {
		return nil, false, t.nameErr
	}
	body, err := encodeRow(row)
	if err != nil {
		return nil, false, err
	}
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", idFilter(id))
	rows, err := t.fetch(ctx, http.MethodPatch, query, body, returnRepresentation())
	return first(rows, err)
}

func (t *table) DeleteByID(ctx context.Context, id int64) error {
	if t.nameErr != nil {
		return t.nameErr
	}
	query := url.Values{}
	query.Set("id", idFilter(id))
	headers := http.Header{}
	headers.Set("Prefer", "return=minimal")
	resp, err := t.client.do(ctx, http.MethodDelete, t.client.tableURL(t.name, query), nil, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (t *table) fetch(ctx context.Context, method string, query url.Values, body []byte, headers http.Header) ([]storage.Row, error) {
	resp, err := t.client.do(ctx, method, t.client.tableURL(t.name, query), body, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeRows(resp.Body)
}

func decodeRows(r io.Reader) ([]storage.Row, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var raw []map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("postgrest: decode rows: %w", err)
	}
	rows := make([]storage.Row, 0, len(raw))
	for _, row := range raw {
		rows = append(rows, storage.Row(row))
	}
	return rows, nil
}

func encodeRow(row storage.Row) ([]byte, error) {
	if _, err := storage.Columns(row); err != nil {
		return nil, err
	}
	body, err := json.Marshal(map[string]any(row))
	if err != nil {
		return nil, fmt.Errorf("postgrest: encode row: %w", err)
	}
	return body, nil
}

func returnRepresentation() http.Header {
	headers := http.Header{}
	headers.Set("Prefer", "return=representation")
	return headers
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
