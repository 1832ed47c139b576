package post

import (
	"context"
	"sort"

	"github.com/penwright/blog/internal/storage"
)

// fakeClient serves one in-memory table and can be told to fail.
type fakeClient struct {
	table *fakeTable
}

func newFakeClient() *fakeClient {
	return &fakeClient{table: &fakeTable{rows: map[int64]storage.Row{}, nextID: 1}}
}

func (c *fakeClient) Table(string) storage.Table  { return c.table }
func (c *fakeClient) Ping(context.Context) error { return c.table.err }
func (c *fakeClient) Close() error                { return nil }

type fakeTable struct {
	rows   map[int64]storage.Row
	nextID int64
	err    error
	calls  int
	// raw, when set, is returned by SelectAll and SelectByID as-is.
	raw []storage.Row
}

func (t *fakeTable) SelectAll(context.Context) ([]storage.Row, error) {
	t.calls++
	if t.err != nil {
		return nil, t.err
	}
	if t.raw != nil {
		return t.raw, nil
	}
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]storage.Row, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyRow(t.rows[id]))
	}
	return out, nil
}

func (t *fakeTable) SelectByID(_ context.Context, id int64) (storage.Row, bool, error) {
	t.calls++
	if t.err != nil {
		return nil, false, t.err
	}
	if t.raw != nil {
		return t.raw[0], true, nil
	}
	row, ok := t.rows[id]
	if !ok {
		return nil, false, nil
	}
	return copyRow(row), true, nil
}

func (t *fakeTable) Insert(_ context.Context, row storage.Row) (storage.Row, error) {
	t.calls++
	if t.err != nil {
		return nil, t.err
	}
	stored := copyRow(row)
	stored[ColumnID] = t.nextID
	t.rows[t.nextID] = stored
	t.nextID++
	return copyRow(stored), nil
}

func (t *fakeTable) Update(_ context.Context, id int64, row storage.Row) (storage.Row, bool, error) {
	t.calls++
	if t.err != nil {
		return nil, false, t.err
	}
	stored, ok := t.rows[id]
	if !ok {
		return nil, false, nil
	}
	for k, v := range row {
		stored[k] = v
	}
	return copyRow(stored), true, nil
}

func (t *fakeTable) DeleteByID(_ context.Context, id int64) error {
	t.calls++
	if t.err != nil {
		return t.err
	}
	delete(t.rows, id)
	return nil
}

func copyRow(row storage.Row) storage.Row {
	out := make(storage.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
