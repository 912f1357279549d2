package store

import (
	"maps"
	"slices"
	"sync"
)

type OpState struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

func (s OpState) Failed() bool {
	return !s.Loading && s.Error != ""
}

type Ticket struct {
	Op  string
	gen uint64
}

type slot struct {
	state OpState
	gen   uint64
}

// Tracker keeps an independent loading/error record per named operation.
type Tracker struct {
	mu         sync.RWMutex
	slots      map[string]*slot
	latestOnly bool
}

type TrackerOption func(*Tracker)

// DiscardStale discards completions of superseded invocations of the same
// operation instead of letting the last arrival win.
func DiscardStale() TrackerOption {
	return func(t *Tracker) {
		t.latestOnly = true
	}
}

func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{slots: make(map[string]*slot)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) slotUnlocked(op string) *slot {
	s, ok := t.slots[op]
	if !ok {
		s = &slot{}
		t.slots[op] = s
	}
	return s
}

func (t *Tracker) Begin(op string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.slotUnlocked(op)
	s.gen++
	s.state = OpState{Loading: true}
	return Ticket{Op: op, gen: s.gen}
}

// Finish settles the invocation identified by tk. It reports false when the
// completion was discarded as stale; callers must not reduce its payload.
func (t *Tracker) Finish(tk Ticket, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.slotUnlocked(tk.Op)
	if t.latestOnly && tk.gen != s.gen {
		return false
	}

	s.state = OpState{Error: Message(err)}
	return true
}

// Reject records a failure that happened before any request was issued.
func (t *Tracker) Reject(op string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.slotUnlocked(op)
	s.gen++
	s.state = OpState{Error: Message(err)}
}

// Supersede marks every in-flight invocation as stale and clears all
// loading flags. Only latest-only trackers drop the late completions.
func (t *Tracker) Supersede() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.slots {
		s.gen++
		s.state.Loading = false
	}
}

func (t *Tracker) IsCurrent(tk Ticket) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.slots[tk.Op]
	return ok && s.gen == tk.gen
}

func (t *Tracker) State(op string) OpState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if s, ok := t.slots[op]; ok {
		return s.state
	}
	return OpState{}
}

func (t *Tracker) Snapshot() map[string]OpState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]OpState, len(t.slots))
	for op, s := range t.slots {
		out[op] = s.state
	}
	return out
}

func (t *Tracker) Loading() map[string]bool {
	out := make(map[string]bool)
	for op, st := range t.Snapshot() {
		out[op] = st.Loading
	}
	return out
}

func (t *Tracker) Errors() map[string]string {
	snap := t.Snapshot()
	out := make(map[string]string, len(snap))
	for op, st := range snap {
		if st.Error != "" {
			out[op] = st.Error
		}
	}
	return out
}

func (t *Tracker) ClearError(op string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.slots[op]; ok {
		s.state.Error = ""
	}
}

func (t *Tracker) ClearErrors() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range t.slots {
		s.state.Error = ""
	}
}

func (t *Tracker) Ops() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Sorted(maps.Keys(t.slots))
}
