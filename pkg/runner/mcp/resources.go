package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/calendar"
	"tableflip.dev/worklog/pkg/timeutil"
)

func registerResources(srv *server.MCPServer, svc *app.Service) {
	registerBookmarksResource(srv, svc)
	registerPresetsResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerBookmarksResource(srv *server.MCPServer, svc *app.Service) {
	resource := mcp.NewResource(
		"worklog://bookmarks",
		"Bookmarks",
		mcp.WithResourceDescription("The bookmark tree with folder depth."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tree := svc.Bookmarks()
		payload := map[string]any{
			"bookmarks": tree.Branches(),
			"count":     tree.Len(),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerPresetsResource(srv *server.MCPServer, svc *app.Service) {
	resource := mcp.NewResource(
		"worklog://presets",
		"Routine Presets",
		mcp.WithResourceDescription("Templates for recurring routine tasks."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		presets := svc.Presets()
		payload := map[string]any{
			"presets": presets,
			"count":   len(presets),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *app.Service) {
	template := mcp.NewResourceTemplate(
		"worklog://days/{date}",
		"Day",
		mcp.WithTemplateDescription("Tasks and events that apply to a day (YYYY-MM-DD)."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw := templateArg(request.Params.Arguments, "date")
		if raw == "" {
			return nil, fmt.Errorf("date is required")
		}
		day, err := timeutil.ParseDay(raw)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, DayView{
			Date:    day,
			Holiday: calendar.HolidayName(day),
			Tasks:   svc.TasksForDay(day),
			Events:  svc.EventsForDay(day),
		})
	})
}

// templateArg reads a matched URI variable. Matches arrive either as a plain
// string or as a single-element list.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
