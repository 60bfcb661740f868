// Package ledger is the generic create/update/delete store shared by every
// record collection. A Ledger is an immutable value: each mutation returns a
// new Ledger and never touches slices handed out earlier.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"tableflip.dev/worklog/pkg/entry"
)

// Record is implemented by the entry types. WithMeta returns a copy of the
// record carrying m.
type Record[T any] interface {
	Identity() string
	Stamps() entry.Meta
	WithMeta(m entry.Meta) T
}

// Option customises a Ledger.
type Option func(*settings)

type settings struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides the clock used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDs overrides identity generation.
func WithIDs(newID func() string) Option {
	return func(s *settings) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func defaults() *settings {
	return &settings{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Ledger holds one collection of records in insertion order.
type Ledger[T Record[T]] struct {
	items []T
	index map[string]int
	cfg   *settings
}

// New seeds a ledger with existing records, e.g. from a loaded snapshot.
// Records without an identity are given one.
func New[T Record[T]](items []T, opts ...Option) Ledger[T] {
	cfg := defaults()
	for _, opt := range opts {
		opt(cfg)
	}
	l := Ledger[T]{cfg: cfg}
	l.items = make([]T, 0, len(items))
	for _, item := range items {
		if item.Identity() == "" {
			meta := item.Stamps()
			meta.ID = cfg.newID()
			item = item.WithMeta(meta)
		}
		l.items = append(l.items, item)
	}
	l.reindex()
	return l
}

func (l *Ledger[T]) reindex() {
	l.index = make(map[string]int, len(l.items))
	for i, item := range l.items {
		l.index[item.Identity()] = i
	}
}

func (l Ledger[T]) settings() *settings {
	if l.cfg == nil {
		return defaults()
	}
	return l.cfg
}

// Len returns the number of records.
func (l Ledger[T]) Len() int {
	return len(l.items)
}

// All returns a copy of the records in insertion order.
func (l Ledger[T]) All() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Get looks a record up by identity.
func (l Ledger[T]) Get(id string) (T, bool) {
	i, ok := l.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// Create stores fields as a new record with a fresh identity and
// createdAt == updatedAt == now. Any identity or stamps on fields are ignored.
func (l Ledger[T]) Create(fields T) (Ledger[T], T) {
	cfg := l.settings()
	now := entry.Stamp(cfg.now())
	created := fields.WithMeta(entry.Meta{ID: l.uniqueID(cfg), CreatedAt: now, UpdatedAt: now})

	next := Ledger[T]{cfg: cfg, items: make([]T, len(l.items), len(l.items)+1)}
	copy(next.items, l.items)
	next.items = append(next.items, created)
	next.reindex()
	return next, created
}

func (l Ledger[T]) uniqueID(cfg *settings) string {
	for {
		id := cfg.newID()
		if _, taken := l.index[id]; !taken && id != "" {
			return id
		}
	}
}

// Update applies patch to a copy of the record and refreshes updatedAt. The
// identity and createdAt are preserved whatever patch does. When id is not
// present the receiver is returned unchanged with ok == false.
func (l Ledger[T]) Update(id string, patch func(*T)) (next Ledger[T], updated T, ok bool) {
	i, found := l.index[id]
	if !found {
		var zero T
		return l, zero, false
	}
	cfg := l.settings()
	prev := l.items[i]
	meta := prev.Stamps()

	candidate := prev
	if patch != nil {
		patch(&candidate)
	}
	meta.UpdatedAt = entry.Stamp(advance(meta.UpdatedAt.Time, cfg.now()))
	updated = candidate.WithMeta(meta)

	next = Ledger[T]{cfg: cfg, items: make([]T, len(l.items)), index: l.index}
	copy(next.items, l.items)
	next.items[i] = updated
	return next, updated, true
}

// Delete removes a record. Deleting an absent id returns the receiver with
// ok == false.
func (l Ledger[T]) Delete(id string) (Ledger[T], bool) {
	i, found := l.index[id]
	if !found {
		return l, false
	}
	next := Ledger[T]{cfg: l.cfg, items: make([]T, 0, len(l.items)-1)}
	next.items = append(next.items, l.items[:i]...)
	next.items = append(next.items, l.items[i+1:]...)
	next.reindex()
	return next, true
}

// advance keeps updatedAt strictly increasing when the clock stalls or steps
// backwards.
func advance(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}
