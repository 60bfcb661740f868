// Package mcp exposes the worklog service over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/calendar"
	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/timeutil"
)

func registerTools(srv *server.MCPServer, svc *app.Service) {
	srv.AddTool(tasksForDayTool(), tasksForDayHandler(svc))
	srv.AddTool(createTaskTool(), createTaskHandler(svc))
	srv.AddTool(updateTaskTool(), updateTaskHandler(svc))
	srv.AddTool(deleteTaskTool(), deleteTaskHandler(svc))
	srv.AddTool(createEventTool(), createEventHandler(svc))
	srv.AddTool(applyPresetTool(), applyPresetHandler(svc))
	srv.AddTool(listBookmarksTool(), listBookmarksHandler(svc))
	srv.AddTool(moveBookmarkTool(), moveBookmarkHandler(svc))
	srv.AddTool(exportTasksTool(), exportTasksHandler(svc))
}

// DayView is the payload of tasks_for_day.
type DayView struct {
	Date    timeutil.Day  `json:"date"`
	Holiday string        `json:"holiday,omitempty"`
	Tasks   []entry.Task  `json:"tasks"`
	Events  []entry.Event `json:"events"`
}

func tasksForDayTool() mcp.Tool {
	return mcp.NewTool(
		"tasks_for_day",
		mcp.WithDescription("List the tasks and events that apply to a day. A task applies on its own date and on every day its start/deadline range covers."),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD. Defaults to today."),
		),
	)
}

func tasksForDayHandler(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := dayArg(request, "date", svc.Today())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(DayView{
			Date:    day,
			Holiday: calendar.HolidayName(day),
			Tasks:   svc.TasksForDay(day),
			Events:  svc.EventsForDay(day),
		})
	}
}

func createTaskTool() mcp.Tool {
	return mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a task record."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title."),
		),
		mcp.WithString("date",
			mcp.Description("Day the task is filed under (YYYY-MM-DD). Defaults to start_date, then today."),
		),
		mcp.WithString("start_date",
			mcp.Description("Optional first day of the task's range."),
		),
		mcp.WithString("deadline",
			mcp.Description("Optional last day of the task's range."),
		),
		mcp.WithString("progress",
			mcp.Description("Progress notes."),
		),
		mcp.WithString("reflection",
			mcp.Description("Reflection notes."),
		),
		mcp.WithString("category",
			mcp.Description("Task category."),
			mcp.Enum("General", "Routine", "Management"),
		),
		mcp.WithBoolean("routine",
			mcp.Description("Mark the task as routine work."),
		),
	)
}

func createTaskHandler(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title      string `json:"title"`
			Date       string `json:"date"`
			StartDate  string `json:"start_date"`
			Deadline   string `json:"deadline"`
			Progress   string `json:"progress"`
			Reflection string `json:"reflection"`
			Category   string `json:"category"`
			Routine    bool   `json:"routine"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		in := app.TaskInput{
			Title:      args.Title,
			Progress:   args.Progress,
			Reflection: args.Reflection,
			Category:   entry.Category(args.Category),
			IsRoutine:  args.Routine,
		}
		var err error
		if in.Anchor, err = parseDay("date", args.Date); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		start, err := parseDay("start_date", args.StartDate)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		deadline, err := parseDay("deadline", args.Deadline)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in.StartDate, in.Deadline = start.Ptr(), deadline.Ptr()

		t, err := svc.AddTask(in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	}
}

func updateTaskTool() mcp.Tool {
	return mcp.NewTool(
		"update_task",
		mcp.WithDescription("Change fields of a task. Omitted fields are kept; pass an empty start_date or deadline to clear it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("date", mcp.Description("New filing day (YYYY-MM-DD).")),
		mcp.WithString("start_date", mcp.Description("New start day, or empty to clear.")),
		mcp.WithString("deadline", mcp.Description("New deadline, or empty to clear.")),
		mcp.WithString("progress", mcp.Description("New progress notes.")),
		mcp.WithString("reflection", mcp.Description("New reflection notes.")),
	)
}

func updateTaskHandler(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		args := request.GetArguments()
		var p app.TaskPatch
		if v, ok := stringArg(args, "title"); ok {
			p.Title = &v
		}
		if v, ok := stringArg(args, "progress"); ok {
			p.Progress = &v
		}
		if v, ok := stringArg(args, "reflection"); ok {
			p.Reflection = &v
		}
		if v, ok := stringArg(args, "date"); ok {
			d, err := parseDay("date", v)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p.Anchor = &d
		}
		if v, ok := stringArg(args, "start_date"); ok {
			d, err := parseDay("start_date", v)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p.StartDate, p.ClearStartDate = d.Ptr(), d.IsZero()
		}
		if v, ok := stringArg(args, "deadline"); ok {
			d, err := parseDay("deadline", v)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p.Deadline, p.ClearDeadline = d.Ptr(), d.IsZero()
		}

		t, err := svc.UpdateTask(id, p)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	}
}

func deleteTaskTool() mcp.Tool {
	return mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)
}

func deleteTaskHandler(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteTask(id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("deleted task %s", id)), nil
	}
}

func createEventTool() mcp.Tool {
	return mcp.NewTool(
		"create_event",
		mcp.WithDescription("Create a calendar event on a day."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Day as YYYY-MM-DD."),
		),
		mcp.WithBoolean("deadline",
			mcp.Description("Mark the event as a deadline."),
		),
	)
}

func createEventHandler(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := parseDay("date", raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		e, err := svc.AddEvent(app.EventInput{
			Date:       day,
			Title:      title,
			IsDeadline: request.GetBool("deadline", false),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(e)
	}
}

func applyPresetTool() mcp.Tool {
	return mcp.NewTool(
		"apply_preset",
		mcp.WithDescription("File a routine task from a preset. Presets are listed by the worklog://presets resource."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Preset identifier."),
		),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD. Defaults to today."),
		),
	)
}

func applyPresetHandler(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := dayArg(request, "date", svc.Today())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.ApplyPreset(id, day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	}
}

func listBookmarksTool() mcp.Tool {
	return mcp.NewTool(
		"list_bookmarks",
		mcp.WithDescription("Return the bookmark tree. Nodes whose parent is missing are listed at the root."),
	)
}

func listBookmarksHandler(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toJSONResult(map[string]any{"bookmarks": svc.Bookmarks().Branches()})
	}
}

func moveBookmarkTool() mcp.Tool {
	return mcp.NewTool(
		"move_bookmark",
		mcp.WithDescription("Move a bookmark under a folder, or to the root when parent_id is empty. Moves that would create a cycle are rejected."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Bookmark identifier."),
		),
		mcp.WithString("parent_id",
			mcp.Description("Target folder identifier; empty for the root."),
		),
	)
}

func moveBookmarkHandler(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		d, err := svc.MoveBookmark(id, strings.TrimSpace(request.GetString("parent_id", "")))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !d.Permitted {
			return mcp.NewToolResultError(d.String()), nil
		}
		return toJSONResult(d)
	}
}

func exportTasksTool() mcp.Tool {
	return mcp.NewTool(
		"export_tasks",
		mcp.WithDescription("Render task records as a plain-text report ordered by day."),
		mcp.WithString("from", mcp.Description("First day to include (YYYY-MM-DD).")),
		mcp.WithString("to", mcp.Description("Last day to include (YYYY-MM-DD).")),
		mcp.WithBoolean("exclude_routine", mcp.Description("Leave routine tasks out.")),
		mcp.WithBoolean("titles_only", mcp.Description("Only print dated titles.")),
	)
}

func exportTasksHandler(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		from, err := parseDay("from", request.GetString("from", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		until, err := parseDay("to", request.GetString("to", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts := app.ExportOptions{
			From:           from,
			Until:          until,
			ExcludeRoutine: request.GetBool("exclude_routine", false),
			TitlesOnly:     request.GetBool("titles_only", false),
		}
		return mcp.NewToolResultText(app.ExportText(svc.ExportTasks(opts), opts)), nil
	}
}

func parseDay(field, raw string) (timeutil.Day, error) {
	d, err := timeutil.ParseDay(raw)
	if err != nil {
		return timeutil.Day{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	return d, nil
}

func dayArg(request mcp.CallToolRequest, field string, fallback timeutil.Day) (timeutil.Day, error) {
	d, err := parseDay(field, request.GetString(field, ""))
	if err != nil || !d.IsZero() {
		return d, err
	}
	return fallback, nil
}

func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return strings.TrimSpace(s), ok
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
