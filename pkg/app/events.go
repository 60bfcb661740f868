package app

import (
	"strings"

	"tableflip.dev/worklog/pkg/calendar"
	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/timeutil"
)

// EventInput describes a calendar event.
type EventInput struct {
	Date       timeutil.Day
	Title      string
	IsDeadline bool
}

func (in EventInput) event() (entry.Event, error) {
	e := entry.Event{Date: in.Date, Title: strings.TrimSpace(in.Title), IsDeadline: in.IsDeadline}
	if e.Title == "" {
		return entry.Event{}, invalid("event title is required")
	}
	if e.Date.IsZero() {
		return entry.Event{}, invalid("event date is required")
	}
	return e, nil
}

func (s *Service) Events() []entry.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.All()
}

func (s *Service) AddEvent(in EventInput) (entry.Event, error) {
	e, err := in.event()
	if err != nil {
		return entry.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var created entry.Event
	s.events, created = s.events.Create(e)
	s.publish()
	return created, nil
}

func (s *Service) UpdateEvent(id string, in EventInput) (entry.Event, error) {
	next, err := in.event()
	if err != nil {
		return entry.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		updated entry.Event
		ok      bool
	)
	s.events, updated, ok = s.events.Update(id, func(e *entry.Event) { *e = next })
	if !ok {
		return entry.Event{}, notFound("event", id)
	}
	s.publish()
	return updated, nil
}

func (s *Service) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.events, ok = s.events.Delete(id); !ok {
		return notFound("event", id)
	}
	s.publish()
	return nil
}

// EventsForDay returns the events dated day.
func (s *Service) EventsForDay(day timeutil.Day) []entry.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calendar.EventsForDay(day, s.events.All())
}
