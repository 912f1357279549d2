package store

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Transport is the remote API as seen by a store: raw JSON in and out,
// failures reported as errors.
type Transport interface {
	List(ctx context.Context, params url.Values) ([]byte, error)
	Get(ctx context.Context, id string) ([]byte, error)
	Create(ctx context.Context, payload any) ([]byte, error)
	Update(ctx context.Context, id string, patch any) ([]byte, error)
	Remove(ctx context.Context, id string) error
}

type Names struct {
	Singular string
	Plural   string
}

type Slots struct {
	List   string
	One    string
	Create string
	Update string
	Delete string
}

func (n Names) Slots() Slots {
	return Slots{
		List:   "fetch" + n.Plural,
		One:    "fetch" + n.Singular,
		Create: "create" + n.Singular,
		Update: "update" + n.Singular,
		Delete: "delete" + n.Singular,
	}
}

type options struct {
	logger     *log.Logger
	latestOnly bool
	pageSize   int
	cacheSize  int
	cacheTTL   time.Duration
	insertAt   InsertPosition
}

type Option func(*options)

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithLatestOnly makes every operation slot drop completions of requests
// that were superseded by a newer request on the same slot.
func WithLatestOnly() Option {
	return func(o *options) {
		o.latestOnly = true
	}
}

func WithPageSize(n int) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithPageCache keeps up to size recently fetched pages for ttl. Any
// fulfilled mutation purges it.
func WithPageCache(size int, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

func WithInsertAt(pos InsertPosition) Option {
	return func(o *options) {
		o.insertAt = pos
	}
}

// Remote is the store for one entity type: the cached collection, its
// operation tracker and the transport that feeds them.
type Remote[T Entity] struct {
	names    Names
	slots    Slots
	coll     *Collection[T]
	tracker  *Tracker
	resolve  func() (Transport, error)
	pages    *expirable.LRU[string, Page[T]]
	pageSize int
	log      *log.Logger

	applyMu sync.Mutex
	queried bool
}

func NewRemote[T Entity](names Names, t Transport, opts ...Option) *Remote[T] {
	return NewScopedRemote[T](names, func() (Transport, error) { return t, nil }, opts...)
}

// NewScopedRemote builds a store whose transport depends on other state,
// such as a parent entity being selected. resolve is called before every
// request; its error rejects the operation without touching the network.
func NewScopedRemote[T Entity](names Names, resolve func() (Transport, error), opts ...Option) *Remote[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var trackerOpts []TrackerOption
	if o.latestOnly {
		trackerOpts = append(trackerOpts, DiscardStale())
	}

	r := &Remote[T]{
		names:    names,
		slots:    names.Slots(),
		coll:     NewCollection[T](o.insertAt),
		tracker:  NewTracker(trackerOpts...),
		resolve:  resolve,
		pageSize: o.pageSize,
		log:      logger.With("store", names.Plural),
	}
	if o.cacheSize > 0 {
		r.pages = expirable.NewLRU[string, Page[T]](o.cacheSize, nil, o.cacheTTL)
	}
	return r
}

func (r *Remote[T]) transport(op string) (Transport, error) {
	t, err := r.resolve()
	if err == nil && t == nil {
		err = errors.New("no transport configured")
	}
	if err != nil {
		var pre *PreconditionError
		if !errors.As(err, &pre) {
			err = &PreconditionError{Op: op, Reason: err.Error(), Err: err}
		}
		r.reject(op, err)
		return nil, err
	}
	return t, nil
}

func (r *Remote[T]) reject(op string, err error) {
	r.log.Warn("operation rejected", "op", op, "reason", Message(err))
	r.tracker.Reject(op, err)
}

func (r *Remote[T]) begin(op string) Ticket {
	r.log.Debug("operation pending", "op", op)
	return r.tracker.Begin(op)
}

// settle records the outcome of tk and, when it is fulfilled and current,
// applies reduce. Completions are applied one at a time in arrival order.
func (r *Remote[T]) settle(tk Ticket, err error, reduce func()) error {
	r.applyMu.Lock()
	defer r.applyMu.Unlock()

	if !r.tracker.Finish(tk, err) {
		r.log.Debug("stale completion discarded", "op", tk.Op)
		return err
	}
	if err != nil {
		r.log.Warn("operation rejected", "op", tk.Op, "err", err)
		return err
	}

	reduce()
	r.log.Debug("operation fulfilled", "op", tk.Op)
	return nil
}

func (r *Remote[T]) requireID(op, id string) error {
	if id != "" {
		return nil
	}
	err := &PreconditionError{Op: op, Reason: "missing " + r.names.Singular + " id", Err: ErrEmptyID}
	r.reject(op, err)
	return err
}

func (r *Remote[T]) effectiveQuery(q Query) Query {
	r.applyMu.Lock()
	defer r.applyMu.Unlock()

	if r.queried && !q.SameFilters(r.coll.Query()) {
		q.Page = 1
	}
	r.queried = true

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = r.pageSize
	}
	return q
}

// FetchAll replaces the cached page with the result of listing q. When the
// filters differ from the previous request the page is reset to 1.
func (r *Remote[T]) FetchAll(ctx context.Context, q Query) error {
	op := r.slots.List
	t, err := r.transport(op)
	if err != nil {
		return err
	}

	q = r.effectiveQuery(q)
	r.coll.SetQuery(q)
	key := q.Key()
	tk := r.begin(op)

	if r.pages != nil {
		if page, ok := r.pages.Get(key); ok {
			r.log.Debug("page cache hit", "op", op, "query", key)
			return r.settle(tk, nil, func() { r.coll.ReplacePage(page) })
		}
	}

	var page Page[T]
	raw, err := t.List(ctx, q.Params())
	if err == nil {
		page, err = normalizeList[T](raw, Pagination{Page: q.Page, Limit: q.Limit})
	}

	return r.settle(tk, err, func() {
		r.coll.ReplacePage(page)
		if r.pages != nil {
			r.pages.Add(key, page)
		}
	})
}

func (r *Remote[T]) Refresh(ctx context.Context) error {
	r.Invalidate()
	return r.FetchAll(ctx, r.coll.Query())
}

func (r *Remote[T]) GoToPage(ctx context.Context, page int) error {
	return r.FetchAll(ctx, r.coll.Query().WithPage(page))
}

// FetchOne loads a single entity and makes it the current selection.
func (r *Remote[T]) FetchOne(ctx context.Context, id string) (T, error) {
	var rec T
	op := r.slots.One
	if err := r.requireID(op, id); err != nil {
		return rec, err
	}
	t, err := r.transport(op)
	if err != nil {
		return rec, err
	}

	tk := r.begin(op)
	raw, err := t.Get(ctx, id)
	if err == nil {
		rec, err = NormalizeRecord[T](raw)
	}

	err = r.settle(tk, err, func() { r.coll.Select(rec) })
	return rec, err
}

// Create sends payload and inserts the server-returned record. Nothing is
// inserted before the server has assigned an id.
func (r *Remote[T]) Create(ctx context.Context, payload any) (T, error) {
	var rec T
	op := r.slots.Create
	t, err := r.transport(op)
	if err != nil {
		return rec, err
	}

	tk := r.begin(op)
	raw, err := t.Create(ctx, payload)
	if err == nil {
		rec, err = NormalizeRecord[T](raw)
	}
	if err == nil && rec.EntityID() == "" {
		err = errors.New("server returned a record without id")
	}

	err = r.settle(tk, err, func() {
		r.coll.Insert(rec)
		r.Invalidate()
	})
	return rec, err
}

func (r *Remote[T]) Update(ctx context.Context, id string, patch any) (T, error) {
	var rec T
	op := r.slots.Update
	if err := r.requireID(op, id); err != nil {
		return rec, err
	}
	t, err := r.transport(op)
	if err != nil {
		return rec, err
	}

	tk := r.begin(op)
	raw, err := t.Update(ctx, id, patch)
	if err == nil {
		rec, err = NormalizeRecord[T](raw)
	}

	err = r.settle(tk, err, func() {
		r.coll.Replace(rec)
		r.Invalidate()
	})
	return rec, err
}

func (r *Remote[T]) Remove(ctx context.Context, id string) error {
	op := r.slots.Delete
	if err := r.requireID(op, id); err != nil {
		return err
	}
	t, err := r.transport(op)
	if err != nil {
		return err
	}

	tk := r.begin(op)
	err = t.Remove(ctx, id)

	return r.settle(tk, err, func() {
		r.coll.Remove(id)
		r.Invalidate()
	})
}

// Reset forgets the cached page, selection and last query, as when the
// scope the store was loaded for goes away.
func (r *Remote[T]) Reset() {
	r.applyMu.Lock()
	defer r.applyMu.Unlock()

	r.tracker.Supersede()
	r.coll.Clear()
	r.coll.SetQuery(Query{})
	r.queried = false
	r.Invalidate()
}

// Invalidate drops every cached page so the next fetch hits the server.
func (r *Remote[T]) Invalidate() {
	if r.pages != nil {
		r.pages.Purge()
	}
}

func (r *Remote[T]) Names() Names                  { return r.names }
func (r *Remote[T]) Slots() Slots                  { return r.slots }
func (r *Remote[T]) Tracker() *Tracker             { return r.tracker }
func (r *Remote[T]) Collection() *Collection[T]    { return r.coll }
func (r *Remote[T]) Records() []T                  { return r.coll.Records() }
func (r *Remote[T]) Pagination() Pagination        { return r.coll.Pagination() }
func (r *Remote[T]) Query() Query                  { return r.coll.Query() }
func (r *Remote[T]) Selected() (T, bool)           { return r.coll.Selected() }
func (r *Remote[T]) LoadingFlags() map[string]bool { return r.tracker.Loading() }
func (r *Remote[T]) ErrorFlags() map[string]string { return r.tracker.Errors() }
func (r *Remote[T]) State(op string) OpState       { return r.tracker.State(op) }
func (r *Remote[T]) ClearErrors()                  { r.tracker.ClearErrors() }
func (r *Remote[T]) ClearSelected()                { r.coll.ClearSelected() }
func (r *Remote[T]) SelectID(id string) error      { return r.coll.SelectID(id) }
