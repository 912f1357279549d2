package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"seodash/internal/store"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (i item) EntityID() string { return i.ID }

var itemNames = store.Names{Singular: "Item", Plural: "Items"}

func items(ids ...string) []item {
	out := make([]item, len(ids))
	for i, id := range ids {
		out[i] = item{ID: id, Name: "item " + id}
	}
	return out
}

func pageOf(t *testing.T, total, page, limit int, recs ...item) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"data":  recs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
	require.NoError(t, err)
	return raw
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

var errNotStubbed = errors.New("not stubbed")

// fakeTransport records calls and delegates to the stubbed functions.
type fakeTransport struct {
	mu    sync.Mutex
	calls []string

	list   func(ctx context.Context, params url.Values) ([]byte, error)
	get    func(ctx context.Context, id string) ([]byte, error)
	create func(ctx context.Context, payload any) ([]byte, error)
	update func(ctx context.Context, id string, patch any) ([]byte, error)
	remove func(ctx context.Context, id string) error
}

var _ store.Transport = (*fakeTransport)(nil)

func (f *fakeTransport) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeTransport) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeTransport) List(ctx context.Context, params url.Values) ([]byte, error) {
	f.record("list " + params.Encode())
	if f.list == nil {
		return nil, errNotStubbed
	}
	return f.list(ctx, params)
}

func (f *fakeTransport) Get(ctx context.Context, id string) ([]byte, error) {
	f.record("get " + id)
	if f.get == nil {
		return nil, errNotStubbed
	}
	return f.get(ctx, id)
}

func (f *fakeTransport) Create(ctx context.Context, payload any) ([]byte, error) {
	f.record("create")
	if f.create == nil {
		return nil, errNotStubbed
	}
	return f.create(ctx, payload)
}

func (f *fakeTransport) Update(ctx context.Context, id string, patch any) ([]byte, error) {
	f.record("update " + id)
	if f.update == nil {
		return nil, errNotStubbed
	}
	return f.update(ctx, id, patch)
}

func (f *fakeTransport) Remove(ctx context.Context, id string) error {
	f.record("remove " + id)
	if f.remove == nil {
		return errNotStubbed
	}
	return f.remove(ctx, id)
}
