package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/calendar"
	"tableflip.dev/worklog/pkg/commands/options"
	"tableflip.dev/worklog/pkg/printers"
	"tableflip.dev/worklog/pkg/store"
	"tableflip.dev/worklog/pkg/timeutil"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func addDay(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show the agenda for a day",
		Example: `
worklog day
worklog day --on 6/3 -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			day, err := on.GetOnOrToday()
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			tasks, events := s.svc.TasksForDay(day), s.svc.EventsForDay(day)
			if oo.JSON {
				return oo.Print(map[string]any{"date": day, "tasks": tasks, "events": events})
			}
			(&printers.PrettyPrint{ShowID: ido.ShowID}).Day(day, tasks, events)
			return nil
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addWeek(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	ido := &options.IDOptions{}
	var (
		weekends bool
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the Sunday-start week containing a day",
		Example: `
worklog week
worklog week --weekends=false --on 2024-6-5
worklog week --watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ref, err := on.GetOnOrToday()
			if err != nil {
				return oo.HandleError(err)
			}
			ctx := ctxOf(cmd.Context())
			s, err := openSession(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			show := weekends
			if !cmd.Flags().Changed("weekends") {
				show = s.cfg.Weekends()
			}
			pp := &printers.PrettyPrint{ShowID: ido.ShowID, Out: cmd.OutOrStdout()}
			render := func() error {
				w := s.svc.Week(ref, show)
				if oo.JSON {
					return oo.Print(w)
				}
				pp.Title(fmt.Sprintf("Week of %s", w.Start))
				pp.NewLine()
				pp.Week(w)
				return nil
			}
			if err := render(); err != nil {
				return oo.HandleError(err)
			}
			if !watch {
				return nil
			}
			return oo.HandleError(watchWeek(ctx, s, cmd.OutOrStdout(), render))
		},
	}

	cmd.Flags().BoolVar(&weekends, "weekends", true, "Include Saturday and Sunday (defaults to the weekends config key).")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Redraw whenever the data file changes.")
	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

// watchWeek reloads the snapshot and redraws until ctx ends.
func watchWeek(ctx context.Context, s *session, out io.Writer, redraw func() error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, err := s.disk.Watch(ctx, s.log)
	if err != nil {
		return err
	}
	clearScreen := isTerminal(out)
	for ev := range events {
		s.log.Debugw("snapshot changed", "refresh", ev.Type == store.EventRefresh)
		if err := s.svc.Reload(ctx, s.disk); err != nil {
			s.log.Warnw("reload failed", "error", err)
			continue
		}
		if clearScreen {
			_, _ = fmt.Fprint(out, "\033[H\033[2J")
		}
		if err := redraw(); err != nil {
			return err
		}
	}
	return nil
}

func addMonth(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	ido := &options.IDOptions{}
	var list bool

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a month grid with the number of entries per day",
		Example: `
worklog month
worklog month --on 2024-6-1 --list
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ref, err := on.GetOnOrToday()
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			m := s.svc.Month(ref)
			if oo.JSON {
				return oo.Print(m)
			}
			out := cmd.OutOrStdout()
			opts := calendar.DefaultRenderOptions()
			opts.Plain = !isTerminal(out)
			_, _ = fmt.Fprintln(out, calendar.Render(m, opts))
			_, _ = fmt.Fprintln(out)
			if !list {
				return nil
			}
			pp := &printers.PrettyPrint{ShowID: ido.ShowID, Out: out}
			for _, week := range m.Weeks {
				for _, c := range week {
					if c.InMonth && c.HasEntries() {
						pp.Day(c.Day, c.Tasks, c.Events)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "Also list the entries of every busy day.")
	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export task records as text, iCalendar or YAML",
		Example: `
worklog export --last 2w
worklog export --from 2024-6-1 --to 2024-6-30 --no-routine --titles-only
worklog export --format ics > worklog.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			opts, label, err := eo.Resolve(timeutil.Today())
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			s.log.Debugw("export", "window", label, "format", opts.Format)
			return oo.HandleError(s.svc.Export(cmd.OutOrStdout(), opts))
		},
	}

	options.AddExportArgs(cmd, eo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
