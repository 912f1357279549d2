package proptest

import (
	"encoding/json"
	"errors"
	"net/http"
	"seodash/internal/store"
	"time"

	"pgregory.net/rapid"
)

var (
	tags     = []string{"", "seo", "ads", "mail"}
	searches = []string{"", "a", "e", "on", "zz"}
	nameGen  = rapid.StringMatching(`[a-z]{1,4}( [a-z]{1,6})?`)
	blankGen = rapid.SampledFrom([]string{"", " ", "\t"})
	failures = []error{
		&store.ServerError{Status: http.StatusInternalServerError, Message: "internal error"},
		&store.ServerError{Status: http.StatusTooManyRequests, Code: "rate_limited", Message: "slow down"},
		errors.Join(store.ErrTransport, errors.New("connection reset")),
	}
	failureGen = rapid.SampledFrom(failures)
)

func RecordGen() *rapid.Generator[Record] {
	return rapid.Custom(func(t *rapid.T) Record {
		return Record{
			Name: nameGen.Draw(t, "name"),
			Tag:  rapid.SampledFrom(tags).Draw(t, "tag"),
		}
	})
}

func QueryGen() *rapid.Generator[store.Query] {
	return rapid.Custom(func(t *rapid.T) store.Query {
		q := store.Query{
			Search: rapid.SampledFrom(searches).Draw(t, "search"),
			Page:   rapid.IntRange(0, 4).Draw(t, "page"),
		}
		if rapid.Bool().Draw(t, "hasLimit") {
			q.Limit = rapid.IntRange(1, 6).Draw(t, "limit")
		}
		return q.WithFilter("tag", rapid.SampledFrom(tags).Draw(t, "tagFilter"))
	})
}

func storeOptionsGen() *rapid.Generator[[]store.Option] {
	return rapid.Custom(func(t *rapid.T) []store.Option {
		var opts []store.Option
		if rapid.Bool().Draw(t, "latestOnly") {
			opts = append(opts, store.WithLatestOnly())
		}
		if rapid.Bool().Draw(t, "pageCache") {
			opts = append(opts, store.WithPageCache(rapid.IntRange(1, 8).Draw(t, "cacheSize"), time.Minute))
		}
		if rapid.Bool().Draw(t, "insertAtEnd") {
			opts = append(opts, store.WithInsertAt(store.InsertAtEnd))
		}
		return opts
	})
}

// countGen covers ordinary magnitudes and the float edge cases.
func countGen() *rapid.Generator[float64] {
	return rapid.OneOf(
		rapid.Float64(),
		rapid.Float64Range(-2e6, 2e6),
		rapid.Map(rapid.IntRange(-5_000_000, 5_000_000), func(n int) float64 { return float64(n) }),
		rapid.SampledFrom([]float64{0, 999, 1000, 999_999, 1e6, -1e6}),
	)
}

// envelopeGen wraps recs and their pagination in one of the response
// shapes the normalizer accepts.
func envelopeGen(recs []Record, p store.Pagination) *rapid.Generator[[]byte] {
	if recs == nil {
		recs = []Record{}
	}
	return rapid.Custom(func(t *rapid.T) []byte {
		var v any
		switch rapid.IntRange(0, 3).Draw(t, "shape") {
		case 0:
			v = recs
		case 1:
			v = map[string]any{"data": recs, "total": p.Total, "page": p.Page, "limit": p.Limit}
		case 2:
			v = map[string]any{"data": map[string]any{
				"items":      recs,
				"pagination": map[string]any{"total": p.Total, "page": p.Page, "limit": p.Limit},
			}}
		default:
			v = store.Page[Record]{Records: recs, Pagination: p}
		}
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal envelope: %v", err)
		}
		return raw
	})
}

func malformedJSONGen() *rapid.Generator[[]byte] {
	return rapid.OneOf(
		rapid.Just([]byte("{")),
		rapid.Just([]byte(`{"data": [`)),
		rapid.Just([]byte(`"just a string"`)),
		rapid.Just([]byte(`{"data": 42}`)),
		rapid.Just([]byte(`{"message": "no list here"}`)),
		rapid.Just([]byte("null")),
		rapid.SliceOfN(rapid.Byte(), 1, 64).Filter(func(b []byte) bool { return !json.Valid(b) }),
	)
}

func malformedYAMLGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("{{{{"),
		rapid.Just("- - - -"),
		rapid.Just(":::"),
		rapid.Just("[\n["),
		rapid.Just("queries: [unclosed"),
		rapid.Just("version: \"unmatched quote"),
		rapid.Just("queries:\n  keywords:\n  page: one"),
		rapid.StringMatching(`[^a-zA-Z0-9\s]{10,50}`),
	)
}
