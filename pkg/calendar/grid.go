package calendar

import (
	"time"

	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/timeutil"
)

// Cell is one rendered day.
type Cell struct {
	Day       timeutil.Day
	Tasks     []entry.Task
	Events    []entry.Event
	InMonth   bool
	IsToday   bool
	IsWeekend bool
	IsHoliday bool
}

// HasEntries reports whether anything is scheduled on the cell.
func (c Cell) HasEntries() bool {
	return len(c.Tasks) > 0 || len(c.Events) > 0
}

// Options controls which days a week view includes.
type Options struct {
	// Weekends keeps Sunday and Saturday in week views.
	Weekends bool
	// Today marks the current day; zero means timeutil.Today().
	Today timeutil.Day
}

func (o Options) today() timeutil.Day {
	if o.Today.IsZero() {
		return timeutil.Today()
	}
	return o.Today
}

// Week is the grid for the Sunday-start week containing a reference day.
type Week struct {
	Start timeutil.Day
	End   timeutil.Day
	Cells []Cell
}

// Month is the grid of Sunday-start weeks intersecting a month.
type Month struct {
	Month timeutil.Day // first day of the month
	Weeks [][]Cell
}

// BuildWeek aggregates the week containing ref. With Weekends off only
// Monday through Friday are returned.
func BuildWeek(ref timeutil.Day, tasks []entry.Task, events []entry.Event, opts Options) Week {
	today := opts.today()
	days := timeutil.WeekDays(ref)
	w := Week{Start: days[0], End: days[len(days)-1]}
	for _, d := range days {
		if !opts.Weekends && timeutil.IsWeekend(d) {
			continue
		}
		c := cell(d, tasks, events, today)
		c.InMonth = d.SameMonth(ref)
		w.Cells = append(w.Cells, c)
	}
	return w
}

// BuildMonth aggregates every week that intersects ref's month. Weeks are
// always complete; cells outside the month have InMonth unset.
func BuildMonth(ref timeutil.Day, tasks []entry.Task, events []entry.Event, opts Options) Month {
	today := opts.today()
	m := Month{Month: timeutil.MonthStart(ref)}
	for _, week := range timeutil.MonthWeeks(ref) {
		row := make([]Cell, 0, len(week))
		for _, d := range week {
			c := cell(d, tasks, events, today)
			c.InMonth = d.SameMonth(ref)
			row = append(row, c)
		}
		m.Weeks = append(m.Weeks, row)
	}
	return m
}

func cell(d timeutil.Day, tasks []entry.Task, events []entry.Event, today timeutil.Day) Cell {
	return Cell{
		Day:       d,
		Tasks:     TasksForDay(d, tasks),
		Events:    EventsForDay(d, events),
		IsToday:   d.Equal(today),
		IsWeekend: timeutil.IsWeekend(d),
		IsHoliday: IsHoliday(d),
	}
}

type monthDay struct {
	month time.Month
	day   int
}

// Fixed-date public holidays.
var holidays = map[monthDay]string{
	{time.January, 1}:   "New Year's Day",
	{time.March, 1}:     "Independence Movement Day",
	{time.May, 5}:       "Children's Day",
	{time.June, 6}:      "Memorial Day",
	{time.August, 15}:   "Liberation Day",
	{time.October, 3}:   "National Foundation Day",
	{time.October, 9}:   "Hangul Day",
	{time.December, 25}: "Christmas Day",
}

// IsHoliday reports whether d is one of the fixed-date public holidays.
func IsHoliday(d timeutil.Day) bool {
	_, ok := holidays[monthDay{d.Month(), d.DayOfMonth()}]
	return ok
}

// HolidayName returns the holiday on d, if any.
func HolidayName(d timeutil.Day) string {
	return holidays[monthDay{d.Month(), d.DayOfMonth()}]
}
