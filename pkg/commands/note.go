package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/commands/options"
	"tableflip.dev/worklog/pkg/printers"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage management notes",
	}
	addNoteAdd(cmd)
	addNoteRemove(cmd)
	addNoteList(cmd)
	topLevel.AddCommand(cmd)
}

func noteIDs(s *session) []string {
	notes := s.svc.Notes()
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID+"\t"+n.Title)
	}
	return out
}

func addNoteAdd(parent *cobra.Command) {
	on := &options.OnOptions{}
	var title, content string
	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a management note",
		Example: `
worklog note add 1:1 with Sam --content "career goals, review schedule"
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
			day, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			n, err := s.svc.AddNote(app.NoteInput{Title: title, Content: content, Date: day})
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(n)
			}
			(&printers.PrettyPrint{ShowID: true}).Notes(n)
			return nil
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Body of the note.")
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addNoteRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "rm ID",
		Short:             "Delete a management note",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions(noteIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			return oo.HandleError(s.svc.DeleteNote(args[0]))
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addNoteList(parent *cobra.Command) {
	ido := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List management notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			notes := s.svc.Notes()
			if oo.JSON {
				return oo.Print(notes)
			}
			(&printers.PrettyPrint{ShowID: ido.ShowID}).Notes(notes...)
			return nil
		},
	}
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}
