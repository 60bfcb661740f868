package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/worklog/pkg/bookmark"
	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/ledger"
	"tableflip.dev/worklog/pkg/store"
	"tableflip.dev/worklog/pkg/timeutil"
)

var fixedNow = time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

func day(s string) timeutil.Day { return timeutil.MustParseDay(s) }

func newService(t *testing.T, snap store.Snapshot) *Service {
	t.Helper()
	counter := 0
	return New(snap,
		WithToday(func() timeutil.Day { return day("2024-06-05") }),
		WithLedgerOptions(
			ledger.WithClock(func() time.Time { return fixedNow }),
			ledger.WithIDs(func() string {
				counter++
				return fmt.Sprintf("id-%d", counter)
			}),
		),
	)
}

func TestAddTaskAnchorDefaults(t *testing.T) {
	s := newService(t, store.Snapshot{})
	cases := []struct {
		name string
		in   TaskInput
		want string
	}{
		{"explicit anchor", TaskInput{Title: "a", Anchor: day("2024-06-01"), StartDate: day("2024-06-03").Ptr(), Reference: day("2024-06-04")}, "2024-06-01"},
		{"start date", TaskInput{Title: "b", StartDate: day("2024-06-03").Ptr(), Reference: day("2024-06-04")}, "2024-06-03"},
		{"reference day", TaskInput{Title: "c", Reference: day("2024-06-04")}, "2024-06-04"},
		{"today", TaskInput{Title: "d"}, "2024-06-05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.AddTask(tc.in)
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if got.Anchor.String() != tc.want {
				t.Fatalf("anchor = %s, want %s", got.Anchor, tc.want)
			}
			if got.Category != entry.CategoryGeneral {
				t.Fatalf("category = %q, want General", got.Category)
			}
		})
	}
}

func TestAddTaskValidation(t *testing.T) {
	s := newService(t, store.Snapshot{})
	if _, err := s.AddTask(TaskInput{Title: "   "}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for blank title, got %v", err)
	}
	if _, err := s.AddTask(TaskInput{Title: "x", Category: "Chores"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown category, got %v", err)
	}
	got, err := s.AddTask(TaskInput{Title: "x", Category: "management"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got.Category != entry.CategoryManagement {
		t.Fatalf("category not normalized: %q", got.Category)
	}
	if len(s.Tasks()) != 1 {
		t.Fatalf("rejected tasks must not be stored, have %d", len(s.Tasks()))
	}
}

func TestUpdateTask(t *testing.T) {
	s := newService(t, store.Snapshot{})
	created, err := s.AddTask(TaskInput{
		Title:     "Draft",
		StartDate: day("2024-06-03").Ptr(),
		Deadline:  day("2024-06-07").Ptr(),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	title := "Final"
	updated, err := s.UpdateTask(created.ID, TaskPatch{Title: &title, ClearDeadline: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Final" || updated.Deadline != nil {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if !timeutil.EqualPtr(updated.StartDate, created.StartDate) {
		t.Fatalf("start date should be kept: %v", updated.StartDate)
	}
	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt.Time) {
		t.Fatalf("identity or createdAt changed: %+v", updated.Meta)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt.Time) {
		t.Fatalf("updatedAt did not advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}

	blank := ""
	if _, err := s.UpdateTask(created.ID, TaskPatch{Title: &blank}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := s.UpdateTask("missing", TaskPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newService(t, store.Snapshot{})
	created, _ := s.AddTask(TaskInput{Title: "x"})
	if err := s.DeleteTask(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteTask(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.UpdateTask(created.ID, TaskPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSubscribersSeeEverySuccessfulMutation(t *testing.T) {
	s := newService(t, store.Snapshot{})
	var seen []store.Snapshot
	unsubscribe := s.Subscribe(func(snap store.Snapshot) { seen = append(seen, snap) })

	if _, err := s.AddTask(TaskInput{Title: "one"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddTask(TaskInput{}); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := s.AddEvent(EventInput{Date: day("2024-06-05"), Title: "Review"}); err != nil {
		t.Fatalf("add event: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("expected 2 published snapshots, got %d", len(seen))
	}
	if len(seen[0].Tasks) != 1 || len(seen[0].Events) != 0 {
		t.Fatalf("first snapshot wrong: %+v", seen[0])
	}
	if len(seen[1].Events) != 1 {
		t.Fatalf("second snapshot should carry the event: %+v", seen[1])
	}

	unsubscribe()
	_, _ = s.AddTask(TaskInput{Title: "two"})
	if len(seen) != 2 {
		t.Fatalf("unsubscribed observer still called")
	}
}

func TestSaveFailureIsLoggedNotRaised(t *testing.T) {
	gw, _ := store.NewMemory(nil)
	gw.SaveErr = errors.New("disk full")
	core, logs := observer.New(zap.ErrorLevel)

	s := newService(t, store.Snapshot{})
	s.Subscribe(store.Saver(gw, zap.New(core).Sugar()))

	if _, err := s.AddTask(TaskInput{Title: "kept in memory"}); err != nil {
		t.Fatalf("mutation should succeed despite save failure: %v", err)
	}
	if len(s.Tasks()) != 1 {
		t.Fatal("in-memory state lost")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one logged save failure, got %d", logs.Len())
	}
}

func TestOpenAndPersist(t *testing.T) {
	gw, _ := store.NewMemory(nil)
	ctx := context.Background()
	s, err := Open(ctx, gw)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(s.Bookmarks().Children("")) == 0 {
		t.Fatal("fresh store should be seeded with bookmarks")
	}
	s.Subscribe(store.Saver(gw, nil))
	if _, err := s.AddNote(NoteInput{Title: "1:1", Content: "agenda"}); err != nil {
		t.Fatalf("add note: %v", err)
	}

	again, err := Open(ctx, gw)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	notes := again.Notes()
	if len(notes) != 1 || notes[0].Title != "1:1" {
		t.Fatalf("note not persisted: %+v", notes)
	}
}

func TestReloadDoesNotPublish(t *testing.T) {
	gw, _ := store.NewMemory(&store.Snapshot{Tasks: []entry.Task{{Meta: entry.Meta{ID: "t1"}, Title: "x", Anchor: day("2024-06-05")}}})
	s := newService(t, store.Snapshot{})
	published := 0
	s.Subscribe(func(store.Snapshot) { published++ })
	if err := s.Reload(context.Background(), gw); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(s.Tasks()) != 1 || published != 0 {
		t.Fatalf("tasks=%d published=%d", len(s.Tasks()), published)
	}
}

func TestApplyPreset(t *testing.T) {
	s := newService(t, store.Snapshot{})
	p, err := s.AddPreset(PresetInput{Name: "Standup", DefaultProgress: "notes"})
	if err != nil {
		t.Fatalf("add preset: %v", err)
	}
	task, err := s.ApplyPreset(p.ID, day("2024-06-10"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if task.Title != "Standup" || !task.IsRoutine || task.Category != entry.CategoryRoutine {
		t.Fatalf("preset not applied: %+v", task)
	}
	if task.Progress != "notes" || task.Anchor.String() != "2024-06-10" {
		t.Fatalf("preset defaults missing: %+v", task)
	}
	if _, err := s.ApplyPreset("missing", day("2024-06-10")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.AddPreset(PresetInput{}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestEventsAndNotes(t *testing.T) {
	s := newService(t, store.Snapshot{})
	if _, err := s.AddEvent(EventInput{Title: "no date"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	e, err := s.AddEvent(EventInput{Date: day("2024-06-07"), Title: "Release", IsDeadline: true})
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if got := s.EventsForDay(day("2024-06-07")); len(got) != 1 || got[0].ID != e.ID {
		t.Fatalf("events for day: %+v", got)
	}
	if got := s.EventsForDay(day("2024-06-08")); len(got) != 0 {
		t.Fatalf("event leaked to next day: %+v", got)
	}

	n, err := s.AddNote(NoteInput{Title: "Retro"})
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if n.Date.String() != "2024-06-05" {
		t.Fatalf("note date should default to today, got %s", n.Date)
	}
	n, err = s.UpdateNote(n.ID, NoteInput{Title: "Retro", Content: "went well"})
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if n.Content != "went well" || n.Date.String() != "2024-06-05" {
		t.Fatalf("note update wrong: %+v", n)
	}
}

func TestAddBookmarkValidation(t *testing.T) {
	s := newService(t, store.Snapshot{})
	folder, err := s.AddBookmark(BookmarkInput{Name: "Work", IsFolder: true})
	if err != nil {
		t.Fatalf("add folder: %v", err)
	}
	link, err := s.AddBookmark(BookmarkInput{Name: "Wiki", URL: "https://wiki.example.com", ParentID: folder.ID})
	if err != nil {
		t.Fatalf("add link: %v", err)
	}

	cases := []struct {
		name string
		in   BookmarkInput
		ok   bool
	}{
		{"unc path", BookmarkInput{Name: "share", URL: `\\fileserver\shared`}, true},
		{"slash network path", BookmarkInput{Name: "share", URL: "//fileserver/shared"}, true},
		{"mailto", BookmarkInput{Name: "mail", URL: "mailto:team@example.com"}, true},
		{"relative", BookmarkInput{Name: "rel", URL: "example.com/page"}, false},
		{"http without host", BookmarkInput{Name: "bad", URL: "https://"}, false},
		{"empty url", BookmarkInput{Name: "none"}, false},
		{"empty name", BookmarkInput{URL: "https://x.test"}, false},
		{"folder without url", BookmarkInput{Name: "Folder", IsFolder: true}, true},
		{"parent is link", BookmarkInput{Name: "child", URL: "https://x.test", ParentID: link.ID}, false},
		{"parent missing", BookmarkInput{Name: "child", URL: "https://x.test", ParentID: "nope"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddBookmark(tc.in)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestMoveBookmark(t *testing.T) {
	s := newService(t, store.Snapshot{Bookmarks: []entry.Bookmark{
		{Meta: entry.Meta{ID: "folderA"}, Name: "A", IsFolder: true},
		{Meta: entry.Meta{ID: "folderB"}, Name: "B", IsFolder: true, ParentID: "folderA"},
		{Meta: entry.Meta{ID: "link"}, Name: "L", URL: "https://x.test"},
	}})
	published := 0
	s.Subscribe(func(store.Snapshot) { published++ })

	d, err := s.MoveBookmark("folderA", "folderB")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if d.Permitted || d.Reason != bookmark.ReasonDescendant {
		t.Fatalf("expected descendant rejection, got %s", d)
	}
	if published != 0 {
		t.Fatal("rejected move must not publish")
	}

	d, err = s.MoveBookmark("link", "folderB")
	if err != nil || !d.Permitted {
		t.Fatalf("expected permitted move, got %s (%v)", d, err)
	}
	if got := s.Bookmarks().Children("folderB"); len(got) != 1 || got[0].ID != "link" {
		t.Fatalf("link not moved: %+v", got)
	}
	if published != 1 {
		t.Fatalf("expected 1 publish, got %d", published)
	}

	if _, err := s.MoveBookmark("ghost", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBookmarkLeavesChildrenAtRoot(t *testing.T) {
	s := newService(t, store.Snapshot{Bookmarks: []entry.Bookmark{
		{Meta: entry.Meta{ID: "f"}, Name: "F", IsFolder: true},
		{Meta: entry.Meta{ID: "c"}, Name: "C", URL: "https://x.test", ParentID: "f"},
	}})
	if err := s.DeleteBookmark("f"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	roots := s.Bookmarks().Children("")
	if len(roots) != 1 || roots[0].ID != "c" {
		t.Fatalf("child should surface at root: %+v", roots)
	}
}

func TestWeekAndMonthViews(t *testing.T) {
	s := newService(t, store.Snapshot{})
	_, _ = s.AddTask(TaskInput{Title: "span", StartDate: day("2024-06-03").Ptr(), Deadline: day("2024-06-05").Ptr()})

	w := s.Week(day("2024-06-04"), false)
	if len(w.Cells) != 5 {
		t.Fatalf("expected Mon-Fri, got %d cells", len(w.Cells))
	}
	counts := ""
	for _, c := range w.Cells {
		counts += fmt.Sprint(len(c.Tasks))
	}
	if counts != "11100" {
		t.Fatalf("task counts per day = %s, want 11100", counts)
	}

	m := s.Month(day("2024-06-15"))
	if len(m.Weeks) != 6 {
		t.Fatalf("expected 6 weeks for June 2024, got %d", len(m.Weeks))
	}
}
