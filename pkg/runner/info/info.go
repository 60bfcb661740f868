// Package info reports where the worklog keeps its data and how much of it
// there is.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/worklog/pkg/store"
)

type Info struct {
	Config  store.Config
	Gateway store.Gateway
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("WORKLOG_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "WORKLOG_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "WORKLOG_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		if n.Config, err = store.LoadConfig(); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.log.level:", n.Config.LogLevel())
	if f := n.Config.LogFile(); f != "" {
		_, _ = fmt.Fprintln(out, "Config.log.file:", f)
	}

	if n.Gateway == nil {
		return fmt.Errorf("info: no snapshot gateway")
	}
	snap, err := n.Gateway.Load(ctx)
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Collections:", "")
	tbl.AddRow("  tasks", len(snap.Tasks))
	tbl.AddRow("  calendar events", len(snap.Events))
	tbl.AddRow("  routine presets", len(snap.Presets))
	tbl.AddRow("  management notes", len(snap.Notes))
	tbl.AddRow("  bookmarks", len(snap.Bookmarks))
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
