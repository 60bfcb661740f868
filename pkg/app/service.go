// Package app is the single writer of the worklog snapshot. It owns one
// ledger per record collection, validates mutations and publishes every new
// snapshot to its subscribers; the CLI subscribes the persistence saver.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/ledger"
	"tableflip.dev/worklog/pkg/store"
	"tableflip.dev/worklog/pkg/timeutil"
)

var (
	ErrInvalid  = errors.New("app: invalid record")
	ErrNotFound = errors.New("app: record not found")
)

// Service provides the operations shared by the CLI and the MCP server.
type Service struct {
	mu sync.Mutex

	tasks     ledger.Ledger[entry.Task]
	events    ledger.Ledger[entry.Event]
	presets   ledger.Ledger[entry.Preset]
	notes     ledger.Ledger[entry.Note]
	bookmarks ledger.Ledger[entry.Bookmark]

	observers map[int]func(store.Snapshot)
	nextObs   int

	ledgerOpts []ledger.Option
	today      func() timeutil.Day
	log        *zap.SugaredLogger
}

// Option customises a Service.
type Option func(*Service)

// WithLedgerOptions passes clock and identity overrides to every ledger.
func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(s *Service) { s.ledgerOpts = append(s.ledgerOpts, opts...) }
}

// WithToday overrides the current day used for defaults.
func WithToday(today func() timeutil.Day) Option {
	return func(s *Service) {
		if today != nil {
			s.today = today
		}
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New builds a Service holding snap.
func New(snap store.Snapshot, opts ...Option) *Service {
	s := &Service{
		observers: make(map[int]func(store.Snapshot)),
		today:     timeutil.Today,
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.replace(snap)
	return s
}

// Open loads the snapshot from gw and builds a Service on it.
func Open(ctx context.Context, gw store.Gateway, opts ...Option) (*Service, error) {
	snap, err := gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: load snapshot: %w", err)
	}
	return New(snap, opts...), nil
}

// Reload replaces the held snapshot with the one stored in gw without
// notifying subscribers. Used when another process changed the store.
func (s *Service) Reload(ctx context.Context, gw store.Gateway) error {
	snap, err := gw.Load(ctx)
	if err != nil {
		return fmt.Errorf("app: reload snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(snap)
	return nil
}

func (s *Service) replace(snap store.Snapshot) {
	s.tasks = ledger.New(snap.Tasks, s.ledgerOpts...)
	s.events = ledger.New(snap.Events, s.ledgerOpts...)
	s.presets = ledger.New(snap.Presets, s.ledgerOpts...)
	s.notes = ledger.New(snap.Notes, s.ledgerOpts...)
	s.bookmarks = ledger.New(snap.Bookmarks, s.ledgerOpts...)
}

// Subscribe registers fn to receive every snapshot produced by a successful
// mutation, in mutation order. Observers run on the mutating goroutine and
// must not call back into the Service. The returned func unsubscribes.
func (s *Service) Subscribe(fn func(store.Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Snapshot returns the current value of every collection.
func (s *Service) Snapshot() store.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Service) snapshot() store.Snapshot {
	return store.Snapshot{
		Tasks:     s.tasks.All(),
		Presets:   s.presets.All(),
		Notes:     s.notes.All(),
		Bookmarks: s.bookmarks.All(),
		Events:    s.events.All(),
	}
}

// publish must be called with s.mu held.
func (s *Service) publish() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.snapshot()
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			fn(snap.Clone())
		}
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}
