package app

import (
	"tableflip.dev/worklog/pkg/calendar"
	"tableflip.dev/worklog/pkg/timeutil"
)

// Week aggregates the Sunday-start week containing ref.
func (s *Service) Week(ref timeutil.Day, weekends bool) calendar.Week {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calendar.BuildWeek(ref, s.tasks.All(), s.events.All(), calendar.Options{
		Weekends: weekends,
		Today:    s.today(),
	})
}

// Month aggregates every week intersecting the month containing ref.
func (s *Service) Month(ref timeutil.Day) calendar.Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calendar.BuildMonth(ref, s.tasks.All(), s.events.All(), calendar.Options{
		Weekends: true,
		Today:    s.today(),
	})
}

// Today returns the day the service treats as current.
func (s *Service) Today() timeutil.Day {
	return s.today()
}
