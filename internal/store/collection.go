package store

import (
	"slices"
	"sync"
)

type InsertPosition int

const (
	InsertAtStart InsertPosition = iota
	InsertAtEnd
)

// Collection is the cached page of one entity type. It is the only writer
// of that state; every mutation goes through one of its reducer methods.
type Collection[T Entity] struct {
	mu         sync.RWMutex
	records    []T
	index      map[string]int
	pagination Pagination
	query      Query
	selected   *T
	insertAt   InsertPosition
}

func NewCollection[T Entity](insertAt InsertPosition) *Collection[T] {
	return &Collection[T]{
		index:      make(map[string]int),
		pagination: Pagination{Page: 1},
		insertAt:   insertAt,
	}
}

func (c *Collection[T]) reindexUnlocked() {
	c.index = make(map[string]int, len(c.records))
	for i, r := range c.records {
		c.index[r.EntityID()] = i
	}
}

func (c *Collection[T]) refreshSelectionUnlocked(rec T) {
	if c.selected != nil && (*c.selected).EntityID() == rec.EntityID() {
		c.selected = &rec
	}
}

// ReplacePage applies a fulfilled list fetch. Prior records are dropped,
// never merged; duplicate ids in the page keep their first occurrence.
func (c *Collection[T]) ReplacePage(page Page[T]) {
	page = Normalize(page)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make([]T, 0, len(page.Records))
	seen := make(map[string]bool, len(page.Records))
	for _, r := range page.Records {
		id := r.EntityID()
		if seen[id] {
			continue
		}
		seen[id] = true
		c.records = append(c.records, r)
		c.refreshSelectionUnlocked(r)
	}
	c.pagination = page.Pagination
	c.reindexUnlocked()
}

// Insert applies a fulfilled create with the server-returned record.
func (c *Collection[T]) Insert(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := rec.EntityID()
	if i, ok := c.index[id]; ok {
		c.records[i] = rec
		c.refreshSelectionUnlocked(rec)
		return
	}

	// A full page drops a record from the end opposite the insert so the
	// created record stays visible.
	limit := c.pagination.Limit
	full := limit > 0 && len(c.records) >= limit
	if c.insertAt == InsertAtEnd {
		if full {
			c.records = c.records[len(c.records)-limit+1:]
		}
		c.records = append(c.records, rec)
	} else {
		c.records = slices.Insert(c.records, 0, rec)
		if full {
			c.records = c.records[:limit]
		}
	}

	c.pagination.Total++
	c.pagination.TotalPages = TotalPages(c.pagination.Total, c.pagination.Limit)
	c.reindexUnlocked()
}

// Replace applies a fulfilled update. It reports whether the record was
// present in the cached page.
func (c *Collection[T]) Replace(rec T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshSelectionUnlocked(rec)

	i, ok := c.index[rec.EntityID()]
	if !ok {
		return false
	}
	c.records[i] = rec
	return true
}

// Remove applies a fulfilled delete. The server confirmed the delete, so
// Total drops even when the record is on another page. It reports whether
// the record was present in the cached page.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected != nil && (*c.selected).EntityID() == id {
		c.selected = nil
	}

	c.pagination.Total = max(0, c.pagination.Total-1)
	c.pagination.TotalPages = TotalPages(c.pagination.Total, c.pagination.Limit)

	i, ok := c.index[id]
	if !ok {
		return false
	}

	c.records = slices.Delete(c.records, i, i+1)
	c.reindexUnlocked()
	return true
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i, ok := c.index[id]; ok {
		return c.records[i], true
	}
	var zero T
	return zero, false
}

// Select stores rec as the current selection, reconciling it into the
// cached page when the same id is present there.
func (c *Collection[T]) Select(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[rec.EntityID()]; ok {
		c.records[i] = rec
	}
	c.selected = &rec
}

func (c *Collection[T]) SelectID(id string) error {
	if id == "" {
		return ErrEmptyID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return ErrNotCached
	}
	rec := c.records[i]
	c.selected = &rec
	return nil
}

func (c *Collection[T]) Selected() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.selected == nil {
		var zero T
		return zero, false
	}
	return *c.selected, true
}

func (c *Collection[T]) ClearSelected() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

func (c *Collection[T]) Records() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.records)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func (c *Collection[T]) Pagination() Pagination {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pagination
}

func (c *Collection[T]) Query() Query {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

func (c *Collection[T]) SetQuery(q Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
}

func (c *Collection[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = nil
	c.index = make(map[string]int)
	c.pagination = Pagination{Page: 1}
	c.selected = nil
}
