package store

import (
	"context"
	"sync"
)

// Memory is an in-process Gateway. Saves round-trip through the JSON
// encoding so callers observe exactly what Disk would persist.
type Memory struct {
	mu     sync.Mutex
	stored []byte
	saves  int

	// SaveErr, when set, is returned by every Save.
	SaveErr error
}

var _ Gateway = (*Memory)(nil)

// NewMemory returns a gateway holding s, or nothing when s is nil.
func NewMemory(s *Snapshot) (*Memory, error) {
	m := &Memory{}
	if s != nil {
		val, err := encode(*s)
		if err != nil {
			return nil, err
		}
		m.stored = val
	}
	return m, nil
}

func (m *Memory) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	m.mu.Lock()
	stored := m.stored
	m.mu.Unlock()
	if stored == nil {
		return Seed()
	}
	s, err := decode(stored)
	if err != nil {
		return Snapshot{}, err
	}
	return withSeedBookmarks(s)
}

func (m *Memory) Save(ctx context.Context, s Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	val, err := encode(s)
	if err != nil {
		return err
	}
	m.stored = val
	m.saves++
	return nil
}

// Saves counts successful saves.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
