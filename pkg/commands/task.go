package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/commands/options"
	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/printers"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage task records",
	}
	addTaskAdd(cmd)
	addTaskEdit(cmd)
	addTaskRemove(cmd)
	addTaskList(cmd)
	topLevel.AddCommand(cmd)
}

func taskIDs(s *session) []string {
	tasks := s.svc.Tasks()
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID+"\t"+t.Title)
	}
	return out
}

func addTaskAdd(parent *cobra.Command) {
	to := &options.TaskOptions{}
	on := &options.OnOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a task",
		Example: `
worklog task add write the quarterly report --start 2024-6-3 --deadline 2024-6-7
worklog task add standup --routine -c Routine --on 6/3
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
			anchor, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			start, deadline, err := to.Range()
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			t, err := s.svc.AddTask(app.TaskInput{
				Title:      title,
				StartDate:  start,
				Deadline:   deadline,
				Progress:   to.Progress,
				Reflection: to.Reflection,
				IsRoutine:  to.Routine,
				Category:   entry.Category(to.Category),
				Anchor:     anchor,
			})
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

	options.AddTaskArgs(cmd, to)
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addTaskEdit(parent *cobra.Command) {
	to := &options.TaskOptions{}
	on := &options.OnOptions{}
	var (
		title                     string
		clearStart, clearDeadline bool
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a task",
		Example: `
worklog task edit 3f0a... --progress "first draft done"
worklog task edit 3f0a... --clear-deadline
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions(taskIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			flags := cmd.Flags()
			var p app.TaskPatch
			if flags.Changed("title") {
				p.Title = &title
			}
			start, deadline, err := to.Range()
			if err != nil {
				return oo.HandleError(err)
			}
			p.StartDate, p.ClearStartDate = start, clearStart
			p.Deadline, p.ClearDeadline = deadline, clearDeadline
			if flags.Changed("progress") {
				p.Progress = &to.Progress
			}
			if flags.Changed("reflection") {
				p.Reflection = &to.Reflection
			}
			if flags.Changed("routine") {
				p.IsRoutine = &to.Routine
			}
			if flags.Changed("category") {
				c := entry.Category(to.Category)
				p.Category = &c
			}
			if anchor, err := on.GetOn(); err != nil {
				return oo.HandleError(err)
			} else if !anchor.IsZero() {
				p.Anchor = &anchor
			}

			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			t, err := s.svc.UpdateTask(args[0], p)
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

	cmd.Flags().StringVar(&title, "title", "", "New title.")
	cmd.Flags().BoolVar(&clearStart, "clear-start", false, "Remove the start day.")
	cmd.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "Remove the deadline.")
	options.AddTaskArgs(cmd, to)
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addTaskRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "rm ID",
		Short:             "Delete a task",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions(taskIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(ctxOf(cmd.Context()))
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			return oo.HandleError(s.svc.DeleteTask(args[0]))
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addTaskList(parent *cobra.Command) {
	on := &options.OnOptions{}
	ido := &options.IDOptions{}
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks that apply to a day",
		Example: `
worklog task list
worklog task list --on 2024-6-3
worklog task list --all -k
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

			tasks := s.svc.TasksForDay(day)
			if all {
				tasks = s.svc.Tasks()
			}
			if oo.JSON {
				return oo.Print(tasks)
			}
			pp := &printers.PrettyPrint{ShowID: ido.ShowID}
			if all {
				pp.TitleWithCount("All tasks", len(tasks))
				pp.Tasks(tasks...)
				return nil
			}
			pp.Day(day, tasks, s.svc.EventsForDay(day))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every task regardless of day.")
	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}
