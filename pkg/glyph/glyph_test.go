package glyph

import (
	"testing"

	"tableflip.dev/worklog/pkg/entry"
)

func TestForTask(t *testing.T) {
	tests := map[string]struct {
		task entry.Task
		want Mark
	}{
		"general":           {task: entry.Task{Category: entry.CategoryGeneral}, want: Task},
		"management":        {task: entry.Task{Category: entry.CategoryManagement}, want: Management},
		"routine category":  {task: entry.Task{Category: entry.CategoryRoutine}, want: Routine},
		"routine flag wins": {task: entry.Task{Category: entry.CategoryManagement, IsRoutine: true}, want: Routine},
		"empty category":    {task: entry.Task{}, want: Task},
	}
	for name, tc := range tests {
		if got := ForTask(tc.task); got != tc.want {
			t.Fatalf("%s: got %v, want %v", name, got, tc.want)
		}
	}
}

func TestMarks(t *testing.T) {
	if ForEvent(entry.Event{IsDeadline: true}) != Deadline || ForEvent(entry.Event{}) != Event {
		t.Fatalf("unexpected event marks")
	}
	if ForBookmark(entry.Bookmark{IsFolder: true}) != Folder || ForBookmark(entry.Bookmark{}) != Link {
		t.Fatalf("unexpected bookmark marks")
	}
	if Mark(99).String() != "" {
		t.Fatalf("out of range mark should be empty")
	}
	for i, g := range DefaultGlyphs() {
		if g.Symbol == "" || g.Meaning == "" {
			t.Fatalf("glyph %d incomplete: %+v", i, g)
		}
	}
}
