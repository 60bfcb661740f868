package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/commands/options"
	"tableflip.dev/worklog/pkg/printers"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events",
	}
	addEventAdd(cmd)
	addEventRemove(cmd)
	addEventList(cmd)
	topLevel.AddCommand(cmd)
}

func eventIDs(s *session) []string {
	events := s.svc.Events()
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID+"\t"+e.Date.String()+" "+e.Title)
	}
	return out
}

func addEventAdd(parent *cobra.Command) {
	on := &options.OnOptions{}
	var (
		title    string
		deadline bool
	)

	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add an event on a day",
		Example: `
worklog event add release --on 2024-6-7 --deadline
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			title = strings.Join(args, " ")
			return nil
		},
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
			e, err := s.svc.AddEvent(app.EventInput{Date: day, Title: title, IsDeadline: deadline})
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(e)
			}
			(&printers.PrettyPrint{ShowID: true}).Events(e)
			return nil
		},
	}

	cmd.Flags().BoolVar(&deadline, "deadline", false, "Mark the event as a deadline.")
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addEventRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "rm ID",
		Short:             "Delete an event",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions(eventIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			return oo.HandleError(s.svc.DeleteEvent(args[0]))
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addEventList(parent *cobra.Command) {
	ido := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			events := s.svc.Events()
			if oo.JSON {
				return oo.Print(events)
			}
			pp := &printers.PrettyPrint{ShowID: ido.ShowID}
			pp.TitleWithCount("Events", len(events))
			pp.Events(events...)
			return nil
		},
	}
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}
