package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType describes a change notification.
type EventType int

const (
	// EventSnapshotChanged indicates the snapshot file was written.
	EventSnapshotChanged EventType = iota

	// EventRefresh signals the watcher could not classify a change and
	// callers should reload.
	EventRefresh
)

// Event is emitted by Disk.Watch when the stored snapshot changes.
type Event struct {
	Type EventType
}

// Watch streams change events until ctx is cancelled. Bursts of writes are
// coalesced. The channel is closed once ctx is done or the watcher stops.
func (p *Disk) Watch(ctx context.Context, log *zap.SugaredLogger) (<-chan Event, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Warnw("store: watcher close", "error", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 8)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer busy; it reloads the whole snapshot anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnw("store: watcher error", "error", err)
				throttle.Enqueue(Event{Type: EventRefresh}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if p.isSnapshot(evt.Name) {
					throttle.Enqueue(Event{Type: EventSnapshotChanged}, send)
				}
			}
		}
	}()

	return events, nil
}

func (p *Disk) isSnapshot(path string) bool {
	if filepath.Base(path) != snapshotKey {
		return false
	}
	return filepath.Clean(filepath.Dir(path)) == filepath.Clean(p.basePath)
}

// eventThrottle coalesces rapid notifications so a watcher redraws once per
// burst of filesystem activity.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	// A refresh subsumes a snapshot change.
	if _, ok := pending[EventRefresh]; ok {
		send(Event{Type: EventRefresh})
		return
	}
	if len(pending) > 0 {
		send(Event{Type: EventSnapshotChanged})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}

