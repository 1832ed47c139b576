package postgrest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeServer is an in-memory subset of PostgREST: one table, id=eq filters,
// order=id.asc, and Prefer return=representation.
type fakeServer struct {
	t   *testing.T
	key string

	mu       sync.Mutex
	nextID   int64
	rows     map[string]map[int64]map[string]any
	requests []*http.Request
}

func newFakeServer(t *testing.T, key string) (*fakeServer, *httptest.Server) {
	t.Helper()
	fake := &fakeServer{t: t, key: key, nextID: 1, rows: map[string]map[int64]map[string]any{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return fake, server
}

func (f *fakeServer) lastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Clone(r.Context()))

	if r.Header.Get("apikey") != f.key || r.Header.Get("Authorization") != "Bearer "+f.key {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid API key"})
		return
	}
	if !strings.HasPrefix(r.URL.Path, restPath) {
		http.NotFound(w, r)
		return
	}
	tableName := strings.TrimPrefix(r.URL.Path, restPath)
	if tableName == "" {
		writeJSON(w, http.StatusOK, map[string]string{"swagger": "2.0"})
		return
	}
	if tableName != "Posts" {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"code":    "42P01",
			"message": `relation "public.` + tableName + `" does not exist`,
		})
		return
	}
	table := f.rows[tableName]
	if table == nil {
		table = map[int64]map[string]any{}
		f.rows[tableName] = table
	}

	id, hasID := parseIDFilter(r.URL.Query().Get("id"))
	switch r.Method {
	case http.MethodGet:
		if hasID {
			if row, ok := table[id]; ok {
				writeJSON(w, http.StatusOK, []map[string]any{row})
				return
			}
			writeJSON(w, http.StatusOK, []map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, sortedRows(table))
	case http.MethodPost:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"code": "PGRST102", "message": err.Error()})
			return
		}
		body["id"] = f.nextID
		body["created_at"] = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(f.nextID) * time.Hour).Format(time.RFC3339Nano)
		table[f.nextID] = body
		f.nextID++
		writeJSON(w, http.StatusCreated, []map[string]any{body})
	case http.MethodPatch:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"code": "PGRST102", "message": err.Error()})
			return
		}
		row, ok := table[id]
		if !hasID || !ok {
			writeJSON(w, http.StatusOK, []map[string]any{})
			return
		}
		for k, v := range body {
			row[k] = v
		}
		writeJSON(w, http.StatusOK, []map[string]any{row})
	case http.MethodDelete:
		if hasID {
			delete(table, id)
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func parseIDFilter(value string) (int64, bool) {
	raw, ok := strings.CutPrefix(value, "eq.")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func sortedRows(table map[int64]map[string]any) []map[string]any {
	ids := make([]int64, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, table[id])
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
