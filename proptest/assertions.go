package proptest

import (
	"seodash/internal/store"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func assertRecordsEqual(t *rapid.T, expected, actual []Record) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func assertContains(t *rapid.T, recs []Record, id string) {
	t.Helper()
	if !slices.Contains(store.IDs(recs), id) {
		t.Fatalf("expected %s in %v", id, store.IDs(recs))
	}
}

func assertNotContains(t *rapid.T, recs []Record, id string) {
	t.Helper()
	if slices.Contains(store.IDs(recs), id) {
		t.Fatalf("did not expect %s in %v", id, store.IDs(recs))
	}
}

func assertSelected(t *rapid.T, r *store.Remote[Record], id string) {
	t.Helper()
	sel, ok := r.Selected()
	switch {
	case id == "" && ok:
		t.Fatalf("expected no selection, got %s", sel.ID)
	case id != "" && !ok:
		t.Fatalf("expected %s selected, got none", id)
	case id != "" && sel.ID != id:
		t.Fatalf("expected %s selected, got %s", id, sel.ID)
	}
}

func assertSlot(t *rapid.T, r *store.Remote[Record], op string, want store.OpState) {
	t.Helper()
	if diff := cmp.Diff(want, r.State(op)); diff != "" {
		t.Fatalf("slot %s mismatch (-want +got):\n%s", op, diff)
	}
}
