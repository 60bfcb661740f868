package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/worklog/pkg/entry"
)

func TestDiskWatchEmitsSnapshotChanges(t *testing.T) {
	d := openTemp(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := d.Watch(ctx, nil)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	s := Snapshot{Tasks: []entry.Task{{Meta: entry.Meta{ID: "t1"}, Title: "hello world"}}}
	if err := d.Save(context.Background(), s); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	select {
	case evt := <-ch:
		if evt.Type != EventSnapshotChanged && evt.Type != EventRefresh {
			t.Fatalf("unexpected event %v", evt.Type)
		}
	case <-deadline:
		t.Fatal("timed out waiting for snapshot change event")
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 4)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventSnapshotChanged}, send)
	}

	select {
	case ev := <-got:
		if ev.Type != EventSnapshotChanged {
			t.Fatalf("unexpected event %v", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single coalesced event, got extra %v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
