package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/worklog/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects a reference day.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2024-6-3" or --on="6/3". Defaults to today.`)
}

// GetOn returns the selected day, or the zero Day when --on is unset.
func (o *OnOptions) GetOn() (timeutil.Day, error) {
	return ParseDay(o.OnString)
}

// GetOnOrToday is GetOn falling back to today.
func (o *OnOptions) GetOnOrToday() (timeutil.Day, error) {
	d, err := o.GetOn()
	if err != nil || !d.IsZero() {
		return d, err
	}
	return timeutil.Today(), nil
}

// ParseDay accepts "2024-06-03", "2024-6-3" or "6/3"; the short form uses
// the current year. Empty input yields the zero Day.
func ParseDay(raw string) (timeutil.Day, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return timeutil.Day{}, nil
	}
	if t, err := time.Parse(layoutISO, raw); err == nil {
		return timeutil.DayOf(t), nil
	}
	t, err := time.Parse(layoutISOShort, raw)
	if err != nil {
		return timeutil.Day{}, fmt.Errorf("invalid day %q, expected YYYY-M-D or M/D", raw)
	}
	return timeutil.NewDay(time.Now().Year(), t.Month(), t.Day()), nil
}
