package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/commands/options"
	"tableflip.dev/worklog/pkg/printers"
)

func addPreset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage routine presets",
	}
	addPresetAdd(cmd)
	addPresetRemove(cmd)
	addPresetList(cmd)
	addPresetApply(cmd)
	topLevel.AddCommand(cmd)
}

func presetIDs(s *session) []string {
	presets := s.svc.Presets()
	out := make([]string, 0, len(presets))
	for _, p := range presets {
		out = append(out, p.ID+"\t"+p.Name)
	}
	return out
}

func addPresetAdd(parent *cobra.Command) {
	in := app.PresetInput{}
	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a routine preset",
		Example: `
worklog preset add daily standup --title "Daily standup" --progress "yesterday / today"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a name")
			}
			in.Name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			p, err := s.svc.AddPreset(in)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(p)
			}
			(&printers.PrettyPrint{ShowID: true}).Presets(p)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.DefaultTitle, "title", "", "Title of tasks created from the preset.")
	cmd.Flags().StringVar(&in.DefaultProgress, "progress", "", "Default progress notes.")
	cmd.Flags().StringVar(&in.DefaultReflection, "reflection", "", "Default reflection notes.")
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addPresetRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "rm ID",
		Short:             "Delete a routine preset",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions(presetIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			return oo.HandleError(s.svc.DeletePreset(args[0]))
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addPresetList(parent *cobra.Command) {
	ido := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List routine presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			presets := s.svc.Presets()
			if oo.JSON {
				return oo.Print(presets)
			}
			(&printers.PrettyPrint{ShowID: ido.ShowID}).Presets(presets...)
			return nil
		},
	}
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addPresetApply(parent *cobra.Command) {
	on := &options.OnOptions{}
	cmd := &cobra.Command{
		Use:               "apply ID",
		Short:             "File a routine task from a preset",
		Example:           "\nworklog preset apply 7d1c... --on 6/3\n",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions(presetIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			t, err := s.svc.ApplyPreset(args[0], day)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(t)
			}
			(&printers.PrettyPrint{ShowID: true}).Tasks(t)
			return nil
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}
