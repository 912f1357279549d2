package proptest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"seodash/internal/store"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"pgregory.net/rapid"
)

const (
	DefaultLimit = 5
	minSeed      = 0
	maxSeed      = 12
)

type Record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag,omitempty"`
}

func (r Record) EntityID() string { return r.ID }

var recordNames = store.Names{Singular: "Record", Plural: "Records"}

// Server is an in-memory REST backend. It searches and pages on the server
// side the way the dashboard API does.
type Server struct {
	mu      sync.Mutex
	records []Record
	nextID  int
	fail    error
	calls   int
}

var _ store.Transport = (*Server)(nil)

func NewServer() *Server {
	return &Server{}
}

func (s *Server) Seed(recs ...Record) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(recs))
	for i, r := range recs {
		s.nextID++
		r.ID = fmt.Sprintf("r-%d", s.nextID)
		s.records = append(s.records, r)
		out[i] = r
	}
	return out
}

func (s *Server) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

func (s *Server) IDs() []string {
	return store.IDs(s.Records())
}

// FailNext makes the next request fail with err before it touches any data.
func (s *Server) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *Server) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *Server) beginUnlocked() error {
	s.calls++
	err := s.fail
	s.fail = nil
	return err
}

func (s *Server) indexUnlocked(id string) int {
	return slices.IndexFunc(s.records, func(r Record) bool { return r.ID == id })
}

func notFound() error {
	return &store.ServerError{Status: http.StatusNotFound, Message: "Not found"}
}

func intParam(params url.Values, key string, def int) int {
	n, err := strconv.Atoi(params.Get(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func (s *Server) List(_ context.Context, params url.Values) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginUnlocked(); err != nil {
		return nil, err
	}

	search := strings.ToLower(params.Get("search"))
	tag := params.Get("tag")
	page := intParam(params, "page", 1)
	limit := intParam(params, "limit", DefaultLimit)

	matched := []Record{}
	for _, r := range s.records {
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		if tag != "" && r.Tag != tag {
			continue
		}
		matched = append(matched, r)
	}

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))
	return json.Marshal(map[string]any{
		"data":  matched[start:end],
		"total": len(matched),
		"page":  page,
		"limit": limit,
	})
}

func (s *Server) Get(_ context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginUnlocked(); err != nil {
		return nil, err
	}

	i := s.indexUnlocked(id)
	if i < 0 {
		return nil, notFound()
	}
	return json.Marshal(map[string]any{"data": s.records[i]})
}

func (s *Server) Create(_ context.Context, payload any) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginUnlocked(); err != nil {
		return nil, err
	}

	in, ok := payload.(Record)
	if !ok {
		return nil, &store.ServerError{Status: http.StatusBadRequest, Message: "invalid payload"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, &store.ServerError{Status: http.StatusUnprocessableEntity, Code: "invalid", Message: "name is required"}
	}

	s.nextID++
	in.ID = fmt.Sprintf("r-%d", s.nextID)
	s.records = append(s.records, in)
	return json.Marshal(map[string]any{"data": in})
}

func (s *Server) Update(_ context.Context, id string, patch any) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginUnlocked(); err != nil {
		return nil, err
	}

	in, ok := patch.(Record)
	if !ok {
		return nil, &store.ServerError{Status: http.StatusBadRequest, Message: "invalid payload"}
	}
	i := s.indexUnlocked(id)
	if i < 0 {
		return nil, notFound()
	}
	if in.Name != "" {
		s.records[i].Name = in.Name
	}
	if in.Tag != "" {
		s.records[i].Tag = in.Tag
	}
	return json.Marshal(s.records[i])
}

func (s *Server) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginUnlocked(); err != nil {
		return err
	}

	i := s.indexUnlocked(id)
	if i < 0 {
		return notFound()
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

type Harness struct {
	T      *rapid.T
	Ctx    context.Context
	Server *Server
	Store  *store.Remote[Record]
}

func (h *Harness) SeedRecords(minCount, maxCount int) []Record {
	n := rapid.IntRange(minCount, maxCount).Draw(h.T, "numRecords")
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = RecordGen().Draw(h.T, "record")
	}
	return h.Server.Seed(recs...)
}

func (h *Harness) MustFetch(q store.Query) {
	if err := h.Store.FetchAll(h.Ctx, q); err != nil {
		h.T.Fatalf("fetch %+v failed: %v", q, err)
	}
}

func (h *Harness) MustCreate(in Record) Record {
	rec, err := h.Store.Create(h.Ctx, in)
	if err != nil {
		h.T.Fatalf("create %+v failed: %v", in, err)
	}
	return rec
}

// Run checks fn against a fresh server and store per iteration. The store
// options are drawn so every property holds for every configuration.
func Run(t *testing.T, fn func(h *Harness)) {
	rapid.Check(t, func(rt *rapid.T) {
		srv := NewServer()
		opts := append([]store.Option{store.WithPageSize(DefaultLimit)}, storeOptionsGen().Draw(rt, "options")...)
		fn(&Harness{
			T:      rt,
			Ctx:    context.Background(),
			Server: srv,
			Store:  store.NewRemote[Record](recordNames, srv, opts...),
		})
	})
}
