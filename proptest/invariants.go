package proptest

import (
	"seodash/internal/store"

	"pgregory.net/rapid"
)

// verifyStoreInvariants checks the state every store must be in once all of
// its operations have returned.
func verifyStoreInvariants(t *rapid.T, r *store.Remote[Record]) {
	t.Helper()

	for op, st := range r.Tracker().Snapshot() {
		if st.Loading && st.Error != "" {
			t.Fatalf("slot %s is loading and failed at the same time: %+v", op, st)
		}
		if st.Loading {
			t.Fatalf("slot %s still loading after its call returned", op)
		}
	}
	if store.IsAnyLoading(r) {
		t.Fatalf("IsAnyLoading reports true with no call in flight")
	}

	recs := r.Records()
	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		if rec.ID == "" {
			t.Fatalf("cached record without id: %+v", rec)
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate id %s in cached page", rec.ID)
		}
		seen[rec.ID] = true
	}

	p := r.Pagination()
	if p.Page < 1 {
		t.Fatalf("page %d below 1", p.Page)
	}
	if p.Limit > 0 && len(recs) > p.Limit {
		t.Fatalf("cached page holds %d records, limit is %d", len(recs), p.Limit)
	}
	if p.TotalPages != store.TotalPages(p.Total, p.Limit) {
		t.Fatalf("total pages %d inconsistent with total %d and limit %d", p.TotalPages, p.Total, p.Limit)
	}
}
