package store

import (
	"slices"
	"strings"
)

type OpError struct {
	Op      string
	Message string
}

type Stateful interface {
	Tracker() *Tracker
}

func IsAnyLoading(stores ...Stateful) bool {
	for _, s := range stores {
		for _, st := range s.Tracker().Snapshot() {
			if st.Loading {
				return true
			}
		}
	}
	return false
}

// ActiveErrors lists every failed operation across stores, ordered by
// operation name.
func ActiveErrors(stores ...Stateful) []OpError {
	var out []OpError
	for _, s := range stores {
		for op, st := range s.Tracker().Snapshot() {
			if st.Failed() {
				out = append(out, OpError{Op: op, Message: st.Error})
			}
		}
	}
	slices.SortFunc(out, func(a, b OpError) int {
		return strings.Compare(a.Op, b.Op)
	})
	return out
}

func ClearAllErrors(stores ...Stateful) {
	for _, s := range stores {
		s.Tracker().ClearErrors()
	}
}

// CountWhere counts matching records. Applied to a cached page the result
// is a count for that page only, not for the whole server-side collection.
func CountWhere[T any](records []T, pred func(T) bool) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

func Partition[T any](records []T, pred func(T) bool) (matched, rest []T) {
	for _, r := range records {
		if pred(r) {
			matched = append(matched, r)
		} else {
			rest = append(rest, r)
		}
	}
	return matched, rest
}

func IDs[T Entity](records []T) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.EntityID()
	}
	return ids
}
