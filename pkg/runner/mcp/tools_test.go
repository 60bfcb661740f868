package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/ledger"
	"tableflip.dev/worklog/pkg/store"
	"tableflip.dev/worklog/pkg/timeutil"
)

func newTestService(t *testing.T, snap store.Snapshot) *app.Service {
	t.Helper()
	counter := 0
	return app.New(snap,
		app.WithToday(func() timeutil.Day { return timeutil.MustParseDay("2024-06-05") }),
		app.WithLedgerOptions(
			ledger.WithClock(func() time.Time { return time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC) }),
			ledger.WithIDs(func() string {
				counter++
				return fmt.Sprintf("id-%d", counter)
			}),
		),
	)
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return res
}

func resultText(res *mcp.CallToolResult) string {
	var b strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

func TestCreateTaskAndTasksForDay(t *testing.T) {
	svc := newTestService(t, store.Snapshot{})

	res := call(t, createTaskHandler(svc), map[string]any{
		"title":      "Ship release",
		"start_date": "2024-06-03",
		"deadline":   "2024-06-07",
		"category":   "management",
	})
	if res.IsError {
		t.Fatalf("create_task failed: %s", resultText(res))
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if got := tasks[0].Anchor.String(); got != "2024-06-03" {
		t.Fatalf("anchor = %s, want start date", got)
	}
	if tasks[0].Category != entry.CategoryManagement {
		t.Fatalf("category = %q", tasks[0].Category)
	}

	res = call(t, tasksForDayHandler(svc), map[string]any{"date": "2024-06-06"})
	if res.IsError {
		t.Fatalf("tasks_for_day failed: %s", resultText(res))
	}
	if !strings.Contains(resultText(res), "Ship release") {
		t.Fatalf("expected task inside its range, got %s", resultText(res))
	}

	res = call(t, tasksForDayHandler(svc), map[string]any{"date": "2024-06-08"})
	if strings.Contains(resultText(res), "Ship release") {
		t.Fatalf("task leaked past its deadline: %s", resultText(res))
	}
}

func TestCreateTaskRejectsBadInput(t *testing.T) {
	svc := newTestService(t, store.Snapshot{})

	cases := map[string]map[string]any{
		"missing title": {"title": "  "},
		"bad date":      {"title": "x", "deadline": "06/07/2024"},
	}
	for name, args := range cases {
		res := call(t, createTaskHandler(svc), args)
		if !res.IsError {
			t.Fatalf("%s: expected error result", name)
		}
	}
	if n := len(svc.Tasks()); n != 0 {
		t.Fatalf("expected no tasks, got %d", n)
	}
}

func TestUpdateTaskClearsDeadline(t *testing.T) {
	svc := newTestService(t, store.Snapshot{})
	task, err := svc.AddTask(app.TaskInput{
		Title:    "Draft",
		Deadline: timeutil.MustParseDay("2024-06-10").Ptr(),
	})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	res := call(t, updateTaskHandler(svc), map[string]any{
		"id":       task.ID,
		"progress": "halfway",
		"deadline": "",
	})
	if res.IsError {
		t.Fatalf("update_task failed: %s", resultText(res))
	}
	got, _ := svc.Task(task.ID)
	if got.Deadline != nil {
		t.Fatalf("deadline should be cleared, got %v", got.Deadline)
	}
	if got.Progress != "halfway" || got.Title != "Draft" {
		t.Fatalf("unexpected task after update: %+v", got)
	}

	res = call(t, updateTaskHandler(svc), map[string]any{"id": "missing", "title": "x"})
	if !res.IsError {
		t.Fatalf("expected error for unknown id")
	}
}

func TestDeleteTaskAndEvent(t *testing.T) {
	svc := newTestService(t, store.Snapshot{})

	res := call(t, createEventHandler(svc), map[string]any{
		"title":    "Quarter close",
		"date":     "2024-06-28",
		"deadline": true,
	})
	if res.IsError {
		t.Fatalf("create_event failed: %s", resultText(res))
	}
	events := svc.Events()
	if len(events) != 1 || !events[0].IsDeadline {
		t.Fatalf("unexpected events: %+v", events)
	}

	task, _ := svc.AddTask(app.TaskInput{Title: "Temp"})
	res = call(t, deleteTaskHandler(svc), map[string]any{"id": task.ID})
	if res.IsError {
		t.Fatalf("delete_task failed: %s", resultText(res))
	}
	if len(svc.Tasks()) != 0 {
		t.Fatalf("task not deleted")
	}
}

func TestApplyPresetDefaultsToToday(t *testing.T) {
	svc := newTestService(t, store.Snapshot{})
	p, err := svc.AddPreset(app.PresetInput{Name: "Standup", DefaultTitle: "Daily standup"})
	if err != nil {
		t.Fatalf("AddPreset: %v", err)
	}

	res := call(t, applyPresetHandler(svc), map[string]any{"id": p.ID})
	if res.IsError {
		t.Fatalf("apply_preset failed: %s", resultText(res))
	}
	tasks := svc.TasksForDay(timeutil.MustParseDay("2024-06-05"))
	if len(tasks) != 1 || !tasks[0].IsRoutine || tasks[0].Title != "Daily standup" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestMoveBookmarkRejectsCycle(t *testing.T) {
	svc := newTestService(t, store.Snapshot{
		Bookmarks: []entry.Bookmark{
			{Meta: entry.Meta{ID: "a"}, Name: "A", IsFolder: true},
			{Meta: entry.Meta{ID: "b"}, Name: "B", IsFolder: true, ParentID: "a"},
		},
	})

	res := call(t, moveBookmarkHandler(svc), map[string]any{"id": "a", "parent_id": "b"})
	if !res.IsError {
		t.Fatalf("expected cycle rejection")
	}
	if !strings.Contains(resultText(res), "descendant-cycle") {
		t.Fatalf("unexpected message: %s", resultText(res))
	}

	res = call(t, moveBookmarkHandler(svc), map[string]any{"id": "b"})
	if res.IsError {
		t.Fatalf("move to root failed: %s", resultText(res))
	}
	if b, _ := svc.Bookmarks().Get("b"); b.ParentID != "" {
		t.Fatalf("b should be at the root, parent %q", b.ParentID)
	}
}

func TestExportTasksText(t *testing.T) {
	svc := newTestService(t, store.Snapshot{})
	if _, err := svc.AddTask(app.TaskInput{Title: "Report", Anchor: timeutil.MustParseDay("2024-06-04")}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, err := svc.AddTask(app.TaskInput{Title: "Standup", IsRoutine: true, Anchor: timeutil.MustParseDay("2024-06-04")}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	res := call(t, exportTasksHandler(svc), map[string]any{
		"from":            "2024-06-01",
		"exclude_routine": true,
		"titles_only":     true,
	})
	if res.IsError {
		t.Fatalf("export_tasks failed: %s", resultText(res))
	}
	text := resultText(res)
	if !strings.Contains(text, "Report") || strings.Contains(text, "Standup") {
		t.Fatalf("unexpected export: %q", text)
	}
}

func TestTemplateArg(t *testing.T) {
	args := map[string]any{"a": "2024-06-05", "b": []string{"2024-06-06"}, "c": 7}
	if got := templateArg(args, "a"); got != "2024-06-05" {
		t.Fatalf("string form: %q", got)
	}
	if got := templateArg(args, "b"); got != "2024-06-06" {
		t.Fatalf("list form: %q", got)
	}
	if got := templateArg(args, "c"); got != "" {
		t.Fatalf("other types should be empty, got %q", got)
	}
}
