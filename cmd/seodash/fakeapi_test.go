package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeAPI is an in-memory REST backend. Collections are keyed by path,
// e.g. "/projects" or "/projects/p-1/keywords".
type fakeAPI struct {
	t   *testing.T
	srv *httptest.Server

	mu          sync.Mutex
	collections map[string][]map[string]any
	failures    map[string]int
	requests    []string
	nextID      int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		t:           t,
		collections: make(map[string][]map[string]any),
		failures:    make(map[string]int),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) URL() string {
	return f.srv.URL
}

func (f *fakeAPI) seed(collection string, records ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections[collection] = append(f.collections[collection], records...)
}

func (f *fakeAPI) failWith(p string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[p] = status
}

func (f *fakeAPI) records(collection string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.collections[collection]...)
}

func (f *fakeAPI) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := strings.TrimSuffix(r.URL.Path, "/")
	f.requests = append(f.requests, r.Method+" "+p)

	if status, ok := f.failures[p]; ok {
		writeJSON(w, status, map[string]any{"message": fmt.Sprintf("%s failed", p)})
		return
	}

	if p == "/health" {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
		return
	}

	// Odd segment counts name collections: /projects, /projects/p-1/keywords.
	if len(strings.Split(strings.Trim(p, "/"), "/"))%2 == 1 {
		switch r.Method {
		case http.MethodGet:
			f.list(w, r, p)
		case http.MethodPost:
			f.create(w, r, p)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	parent, id := path.Dir(p), path.Base(p)
	idx := f.indexOf(parent, id)
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"data": f.collections[parent][idx]})
	case http.MethodPatch:
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad body"})
			return
		}
		for k, v := range patch {
			f.collections[parent][idx][k] = v
		}
		writeJSON(w, http.StatusOK, f.collections[parent][idx])
	case http.MethodDelete:
		recs := f.collections[parent]
		f.collections[parent] = append(recs[:idx:idx], recs[idx+1:]...)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeAPI) indexOf(collection, id string) int {
	for i, rec := range f.collections[collection] {
		if rec["id"] == id {
			return i
		}
	}
	return -1
}

func (f *fakeAPI) list(w http.ResponseWriter, r *http.Request, collection string) {
	params := r.URL.Query()
	var matched []map[string]any
	for _, rec := range f.collections[collection] {
		if matchesParams(rec, params) {
			matched = append(matched, rec)
		}
	}

	page, _ := strconv.Atoi(params.Get("page"))
	limit, _ := strconv.Atoi(params.Get("limit"))
	page = max(page, 1)
	if limit <= 0 {
		limit = 20
	}

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))
	data := matched[start:end]
	if data == nil {
		data = []map[string]any{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  data,
		"total": len(matched),
		"page":  page,
		"limit": limit,
	})
}

func matchesParams(rec map[string]any, params map[string][]string) bool {
	for key, values := range params {
		want := values[0]
		switch key {
		case "page", "limit", "sort", "order":
		case "search":
			if !matchesSearch(rec, want) {
				return false
			}
		default:
			if fmt.Sprint(rec[key]) != want {
				return false
			}
		}
	}
	return true
}

func matchesSearch(rec map[string]any, search string) bool {
	search = strings.ToLower(search)
	for _, v := range rec {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}

func (f *fakeAPI) create(w http.ResponseWriter, r *http.Request, collection string) {
	var rec map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad body"})
		return
	}
	f.nextID++
	rec["id"] = fmt.Sprintf("%s-%d", path.Base(collection), f.nextID)
	if path.Base(collection) == "audits" {
		rec["status"] = "queued"
	}
	f.collections[collection] = append(f.collections[collection], rec)
	writeJSON(w, http.StatusCreated, rec)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
