package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "worklog",
		Short: options.Wrap80("Work log, calendar and bookmarks on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTask(topLevel)
	addEvent(topLevel)
	addPreset(topLevel)
	addNote(topLevel)
	addBookmark(topLevel)
	addDay(topLevel)
	addWeek(topLevel)
	addMonth(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addExport(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
