// Package calendar groups task records and events onto calendar days for the
// day, week and month views.
package calendar

import (
	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/timeutil"
)

// TasksForDay returns the tasks that apply to day, in input order. A task
// always shows on its anchor day; on any other day it shows only when the
// start/deadline pair covers day.
func TasksForDay(day timeutil.Day, tasks []entry.Task) []entry.Task {
	out := make([]entry.Task, 0)
	for _, t := range tasks {
		if Applies(day, t) {
			out = append(out, t)
		}
	}
	return out
}

// Applies reports whether task t belongs on day.
func Applies(day timeutil.Day, t entry.Task) bool {
	if t.Anchor.Equal(day) {
		return true
	}
	return timeutil.InRange(day, t.StartDate, t.Deadline)
}

// EventsForDay returns the events dated exactly on day.
func EventsForDay(day timeutil.Day, events []entry.Event) []entry.Event {
	out := make([]entry.Event, 0)
	for _, e := range events {
		if e.Date.Equal(day) {
			out = append(out, e)
		}
	}
	return out
}
