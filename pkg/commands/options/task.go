package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/timeutil"
)

// TaskOptions carries the optional task fields.
type TaskOptions struct {
	Start      string
	Deadline   string
	Progress   string
	Reflection string
	Category   string
	Routine    bool
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		"First day the task spans.")
	cmd.Flags().StringVar(&o.Deadline, "deadline", "",
		"Last day the task spans.")
	cmd.Flags().StringVar(&o.Progress, "progress", "",
		"Progress notes.")
	cmd.Flags().StringVar(&o.Reflection, "reflection", "",
		"Reflection notes.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"One of General, Routine or Management.")
	cmd.Flags().BoolVar(&o.Routine, "routine", false,
		"Mark the task as routine work.")
}

// Range parses --start and --deadline.
func (o *TaskOptions) Range() (start, deadline *timeutil.Day, err error) {
	s, err := ParseDay(o.Start)
	if err != nil {
		return nil, nil, err
	}
	d, err := ParseDay(o.Deadline)
	if err != nil {
		return nil, nil, err
	}
	return s.Ptr(), d.Ptr(), nil
}
