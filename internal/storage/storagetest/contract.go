// Package storagetest holds the behavior every storage driver must share,
// exercised against the Posts table shape.
package storagetest

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/penwright/blog/internal/storage"
)

// PostsTable is the table name drivers are exercised against.
const PostsTable = "Posts"

// RunTableContract runs the driver contract. newClient must return a client
// whose Posts table is empty.
func RunTableContract(t *testing.T, newClient func(t *testing.T) storage.Client) {
	t.Helper()

	t.Run("empty table lists nothing", func(t *testing.T) {
		table := newClient(t).Table(PostsTable)
		rows, err := table.SelectAll(context.Background())
		if err != nil {
			t.Fatalf("SelectAll() error = %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("SelectAll() = %d rows, want 0", len(rows))
		}
	})

	t.Run("insert assigns id and echoes columns", func(t *testing.T) {
		table := newClient(t).Table(PostsTable)
		row, err := table.Insert(context.Background(), samplePost("First", nil))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if IDOf(t, row) <= 0 {
			t.Fatalf("Insert() id = %v, want positive", row["id"])
		}
		if row["title"] != "First" {
			t.Fatalf("Insert() title = %v, want First", row["title"])
		}
		if row["second_part_content"] != nil {
			t.Fatalf("Insert() second_part_content = %v, want nil", row["second_part_content"])
		}
	})

	t.Run("select by id finds inserted row", func(t *testing.T) {
		table := newClient(t).Table(PostsTable)
		second := "more"
		inserted, err := table.Insert(context.Background(), samplePost("Findable", &second))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		got, ok, err := table.SelectByID(context.Background(), IDOf(t, inserted))
		if err != nil || !ok {
			t.Fatalf("SelectByID() = %v, %v, %v; want row", got, ok, err)
		}
		if got["title"] != "Findable" || got["second_part_content"] != "more" {
			t.Fatalf("SelectByID() = %v", got)
		}
	})

	t.Run("select by id misses unknown id", func(t *testing.T) {
		table := newClient(t).Table(PostsTable)
		_, ok, err := table.SelectByID(context.Background(), 9999)
		if err != nil {
			t.Fatalf("SelectByID() error = %v", err)
		}
		if ok {
			t.Fatal("SelectByID() found a row for unknown id")
		}
	})

	t.Run("select all orders by id", func(t *testing.T) {
		table := newClient(t).Table(PostsTable)
		for _, title := range []string{"one", "two", "three"} {
			if _, err := table.Insert(context.Background(), samplePost(title, nil)); err != nil {
				t.Fatalf("Insert(%s) error = %v", title, err)
			}
		}
		rows, err := table.SelectAll(context.Background())
		if err != nil {
			t.Fatalf("SelectAll() error = %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("SelectAll() = %d rows, want 3", len(rows))
		}
		for i := 1; i < len(rows); i++ {
			if IDOf(t, rows[i-1]) >= IDOf(t, rows[i]) {
				t.Fatalf("rows not ordered by id: %v then %v", rows[i-1]["id"], rows[i]["id"])
			}
		}
		if rows[0]["title"] != "one" || rows[2]["title"] != "three" {
			t.Fatalf("unexpected order: %v, %v", rows[0]["title"], rows[2]["title"])
		}
	})

	t.Run("update overwrites and reports misses", func(t *testing.T) {
		table := newClient(t).Table(PostsTable)
		inserted, err := table.Insert(context.Background(), samplePost("Before", nil))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		id := IDOf(t, inserted)
		second := "added"
		updated, ok, err := table.Update(context.Background(), id, samplePost("After", &second))
		if err != nil || !ok {
			t.Fatalf("Update() = %v, %v, %v", updated, ok, err)
		}
		if updated["title"] != "After" || IDOf(t, updated) != id {
			t.Fatalf("Update() = %v", updated)
		}
		got, _, err := table.SelectByID(context.Background(), id)
		if err != nil {
			t.Fatalf("SelectByID() error = %v", err)
		}
		if got["second_part_content"] != "added" {
			t.Fatalf("second_part_content = %v, want added", got["second_part_content"])
		}

		_, ok, err = table.Update(context.Background(), id+1000, samplePost("Ghost", nil))
		if err != nil {
			t.Fatalf("Update(missing) error = %v", err)
		}
		if ok {
			t.Fatal("Update(missing) reported a match")
		}
	})

	t.Run("delete removes row and tolerates misses", func(t *testing.T) {
		table := newClient(t).Table(PostsTable)
		inserted, err := table.Insert(context.Background(), samplePost("Doomed", nil))
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		id := IDOf(t, inserted)
		if err := table.DeleteByID(context.Background(), id); err != nil {
			t.Fatalf("DeleteByID() error = %v", err)
		}
		if _, ok, err := table.SelectByID(context.Background(), id); err != nil || ok {
			t.Fatalf("SelectByID(after delete) = %v, %v", ok, err)
		}
		if err := table.DeleteByID(context.Background(), id); err != nil {
			t.Fatalf("DeleteByID(missing) error = %v", err)
		}
	})
}

// IDOf extracts the integer id of a driver row.
func IDOf(t *testing.T, row storage.Row) int64 {
	t.Helper()
	switch v := row["id"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			t.Fatalf("id %q: %v", v, err)
		}
		return n
	default:
		t.Fatalf("unexpected id type %T (%v)", v, v)
		return 0
	}
}

func samplePost(title string, second *string) storage.Row {
	row := storage.Row{
		"title":               title,
		"category":            "notes",
		"snippet_description": fmt.Sprintf("about %s", title),
		"first_part_content":  "# " + title,
		"second_part_content": nil,
	}
	if second != nil {
		row["second_part_content"] = *second
	}
	return row
}
