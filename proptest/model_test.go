package proptest

import (
	"seodash/internal/store"
	"strings"

	"pgregory.net/rapid"
)

// expectPage is the reference listing: the records a server holding all
// would return for q.
func expectPage(all []Record, q store.Query) (page []Record, total int) {
	search := strings.ToLower(q.Search)
	tag := q.Filters["tag"]

	var matched []Record
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Name), search) && (tag == "" || r.Tag == tag) {
			matched = append(matched, r)
		}
	}

	start := (q.Page - 1) * q.Limit
	if start >= len(matched) {
		return nil, len(matched)
	}
	end := min(start+q.Limit, len(matched))
	return matched[start:end], len(matched)
}

func sameSelection(a, b store.Query) bool {
	return a.Search == b.Search && a.Filters["tag"] == b.Filters["tag"]
}

// CheckedStore drives a store and tracks what its cache must hold. The
// server's record set is the ground truth the model reads from.
type CheckedStore struct {
	t        *rapid.T
	h        *Harness
	queried  bool
	query    store.Query
	selected string
}

func NewCheckedStore(h *Harness) *CheckedStore {
	return &CheckedStore{t: h.T, h: h}
}

func (c *CheckedStore) slots() store.Slots {
	return c.h.Store.Slots()
}

func (c *CheckedStore) effective(q store.Query) store.Query {
	if c.queried && !sameSelection(q, c.query) {
		q.Page = 1
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return q
}

func (c *CheckedStore) checkFailure(op string, err, injected error) {
	if err == nil {
		c.t.Fatalf("%s succeeded despite injected failure %v", op, injected)
	}
	assertSlot(c.t, c.h.Store, op, store.OpState{Error: store.Message(injected)})
}

func (c *CheckedStore) Fetch(q store.Query, injected error) {
	before := c.h.Store.Records()
	eq := c.effective(q)
	c.queried = true
	c.query = eq

	if injected != nil {
		c.h.Server.FailNext(injected)
	}
	err := c.h.Store.FetchAll(c.h.Ctx, q)

	if got := c.h.Store.Query(); !sameSelection(got, eq) || got.Page != eq.Page || got.Limit != eq.Limit {
		c.t.Fatalf("store query %+v, expected %+v", got, eq)
	}

	if injected != nil {
		// A cached page never reaches the server, so the failure stays armed.
		if err == nil {
			c.h.Server.FailNext(nil)
			assertRecordsEqual(c.t, c.expected(eq), c.h.Store.Records())
		} else {
			c.checkFailure(c.slots().List, err, injected)
			assertRecordsEqual(c.t, before, c.h.Store.Records())
		}
		c.verify()
		return
	}

	if err != nil {
		c.t.Fatalf("fetch %+v failed: %v", q, err)
	}
	want, total := expectPage(c.h.Server.Records(), eq)
	assertRecordsEqual(c.t, want, c.h.Store.Records())
	if p := c.h.Store.Pagination(); p.Total != total || p.Page != eq.Page || p.Limit != eq.Limit {
		c.t.Fatalf("pagination %+v, expected total %d page %d limit %d", p, total, eq.Page, eq.Limit)
	}
	assertSlot(c.t, c.h.Store, c.slots().List, store.OpState{})
	c.verify()
}

func (c *CheckedStore) expected(q store.Query) []Record {
	want, _ := expectPage(c.h.Server.Records(), q)
	return want
}

func (c *CheckedStore) Create(in Record, injected error) {
	totalBefore := c.h.Store.Pagination().Total
	if injected != nil {
		c.h.Server.FailNext(injected)
	}

	rec, err := c.h.Store.Create(c.h.Ctx, in)

	switch {
	case injected != nil:
		c.checkFailure(c.slots().Create, err, injected)
	case strings.TrimSpace(in.Name) == "":
		if err == nil {
			c.t.Fatalf("create accepted blank name %q", in.Name)
		}
		assertSlot(c.t, c.h.Store, c.slots().Create, store.OpState{Error: "name is required"})
	default:
		if err != nil {
			c.t.Fatalf("create %+v failed: %v", in, err)
		}
		assertContains(c.t, c.h.Store.Records(), rec.ID)
		if got := c.h.Store.Pagination().Total; got != totalBefore+1 {
			c.t.Fatalf("total %d after create, expected %d", got, totalBefore+1)
		}
	}
	assertSelected(c.t, c.h.Store, c.selected)
	c.verify()
}

func (c *CheckedStore) Update(id, name string) {
	_, err := c.h.Store.Update(c.h.Ctx, id, Record{Name: name})
	if err != nil {
		c.t.Fatalf("update %s failed: %v", id, err)
	}

	if rec, ok := c.h.Store.Collection().Get(id); ok && rec.Name != name {
		c.t.Fatalf("cached %s has name %q after update to %q", id, rec.Name, name)
	}
	if sel, ok := c.h.Store.Selected(); ok && sel.ID == id && sel.Name != name {
		c.t.Fatalf("selected %s has name %q after update to %q", id, sel.Name, name)
	}
	c.verify()
}

func (c *CheckedStore) Remove(id string, injected error) {
	if injected != nil {
		c.h.Server.FailNext(injected)
	}

	err := c.h.Store.Remove(c.h.Ctx, id)

	if injected != nil {
		c.checkFailure(c.slots().Delete, err, injected)
		c.verify()
		return
	}
	if err != nil {
		c.t.Fatalf("remove %s failed: %v", id, err)
	}
	if c.selected == id {
		c.selected = ""
	}
	assertNotContains(c.t, c.h.Store.Records(), id)
	assertSelected(c.t, c.h.Store, c.selected)
	c.verify()
}

func (c *CheckedStore) FetchOne(id string, exists bool) {
	rec, err := c.h.Store.FetchOne(c.h.Ctx, id)

	if !exists {
		if err == nil {
			c.t.Fatalf("fetch of missing %s succeeded", id)
		}
		assertSlot(c.t, c.h.Store, c.slots().One, store.OpState{Error: "Not found"})
		assertSelected(c.t, c.h.Store, c.selected)
		c.verify()
		return
	}

	if err != nil {
		c.t.Fatalf("fetch %s failed: %v", id, err)
	}
	if rec.ID != id {
		c.t.Fatalf("fetched %s, expected %s", rec.ID, id)
	}
	c.selected = id
	assertSelected(c.t, c.h.Store, c.selected)
	c.verify()
}

func (c *CheckedStore) SelectCached(id string) {
	if err := c.h.Store.SelectID(id); err != nil {
		c.t.Fatalf("select cached %s: %v", id, err)
	}
	c.selected = id
	assertSelected(c.t, c.h.Store, c.selected)
}

func (c *CheckedStore) ClearSelected() {
	c.h.Store.ClearSelected()
	c.selected = ""
	assertSelected(c.t, c.h.Store, "")
}

func (c *CheckedStore) verify() {
	verifyStoreInvariants(c.t, c.h.Store)
}
