package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/app"
	"tableflip.dev/worklog/pkg/timeutil"
)

// ExportOptions are the flags of the export command.
type ExportOptions struct {
	Last       string
	From       string
	To         string
	NoRoutine  bool
	TitlesOnly bool
	Format     string
	Width      int
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVar(&o.Last, "last", "",
		"Window ending today, for example 3d, 2w or 1w2d.")
	cmd.Flags().StringVar(&o.From, "from", "",
		"First anchor day to include.")
	cmd.Flags().StringVar(&o.To, "to", "",
		"Last anchor day to include.")
	cmd.Flags().BoolVar(&o.NoRoutine, "no-routine", false,
		"Leave routine tasks out.")
	cmd.Flags().BoolVar(&o.TitlesOnly, "titles-only", false,
		"Print only the dated title of each task.")
	cmd.Flags().StringVarP(&o.Format, "format", "f", app.FormatText,
		"One of text, ics or yaml.")
	cmd.Flags().IntVar(&o.Width, "width", 80,
		"Wrap text bodies at this width.")
}

// Resolve turns the flags into app.ExportOptions. --last wins over
// --from/--to and ends on today.
func (o *ExportOptions) Resolve(today timeutil.Day) (app.ExportOptions, string, error) {
	out := app.ExportOptions{
		ExcludeRoutine: o.NoRoutine,
		TitlesOnly:     o.TitlesOnly,
		Format:         o.Format,
		Width:          o.Width,
	}
	if o.Last != "" {
		days, label, err := timeutil.ParseWindow(o.Last)
		if err != nil {
			return out, "", err
		}
		out.From, out.Until = timeutil.Window(today, days)
		return out, "last " + label, nil
	}
	var err error
	if out.From, err = ParseDay(o.From); err != nil {
		return out, "", err
	}
	if out.Until, err = ParseDay(o.To); err != nil {
		return out, "", err
	}
	if !out.From.IsZero() && !out.Until.IsZero() && out.Until.Before(out.From) {
		return out, "", fmt.Errorf("--to %s is before --from %s", out.Until, out.From)
	}
	return out, fmt.Sprintf("%s → %s", orOpen(out.From), orOpen(out.Until)), nil
}

func orOpen(d timeutil.Day) string {
	if d.IsZero() {
		return "…"
	}
	return d.String()
}
