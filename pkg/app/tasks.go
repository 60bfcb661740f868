package app

import (
	"strings"

	"tableflip.dev/worklog/pkg/calendar"
	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/timeutil"
)

// TaskInput describes a new task record.
type TaskInput struct {
	Title      string
	StartDate  *timeutil.Day
	Deadline   *timeutil.Day
	Progress   string
	Reflection string
	IsRoutine  bool
	Category   entry.Category

	// Anchor files the task under a day. When zero it defaults to StartDate,
	// then Reference, then today.
	Anchor timeutil.Day
	// Reference is the day the caller is looking at, e.g. the selected day
	// of a week view.
	Reference timeutil.Day
}

// TaskPatch changes selected fields of a task. Nil fields are left alone;
// the Clear flags remove an optional date.
type TaskPatch struct {
	Title          *string
	StartDate      *timeutil.Day
	ClearStartDate bool
	Deadline       *timeutil.Day
	ClearDeadline  bool
	Progress       *string
	Reflection     *string
	IsRoutine      *bool
	Category       *entry.Category
	Anchor         *timeutil.Day
}

// Tasks returns every task record in insertion order.
func (s *Service) Tasks() []entry.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.All()
}

// Task looks a task up by id.
func (s *Service) Task(id string) (entry.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks.Get(id)
	if !ok {
		return entry.Task{}, notFound("task", id)
	}
	return t, nil
}

// AddTask validates in and stores it as a new task.
func (s *Service) AddTask(in TaskInput) (entry.Task, error) {
	t := entry.Task{
		Title:      strings.TrimSpace(in.Title),
		StartDate:  present(in.StartDate),
		Deadline:   present(in.Deadline),
		Progress:   in.Progress,
		Reflection: in.Reflection,
		IsRoutine:  in.IsRoutine,
		Category:   in.Category,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t.Anchor = s.anchorFor(in)
	if err := validateTask(&t); err != nil {
		return entry.Task{}, err
	}
	var created entry.Task
	s.tasks, created = s.tasks.Create(t)
	s.log.Debugw("task added", "id", created.ID, "date", created.Anchor)
	s.publish()
	return created, nil
}

// anchorFor must be called with s.mu held.
func (s *Service) anchorFor(in TaskInput) timeutil.Day {
	switch {
	case !in.Anchor.IsZero():
		return in.Anchor
	case present(in.StartDate) != nil:
		return *in.StartDate
	case !in.Reference.IsZero():
		return in.Reference
	default:
		return s.today()
	}
}

// UpdateTask applies p to the task id.
func (s *Service) UpdateTask(id string, p TaskPatch) (entry.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.tasks.Get(id)
	if !ok {
		return entry.Task{}, notFound("task", id)
	}
	candidate := prev
	p.apply(&candidate)
	if err := validateTask(&candidate); err != nil {
		return entry.Task{}, err
	}
	var updated entry.Task
	s.tasks, updated, _ = s.tasks.Update(id, func(t *entry.Task) { *t = candidate })
	s.publish()
	return updated, nil
}

func (p TaskPatch) apply(t *entry.Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.ClearStartDate {
		t.StartDate = nil
	} else if p.StartDate != nil {
		t.StartDate = present(p.StartDate)
	}
	if p.ClearDeadline {
		t.Deadline = nil
	} else if p.Deadline != nil {
		t.Deadline = present(p.Deadline)
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.Reflection != nil {
		t.Reflection = *p.Reflection
	}
	if p.IsRoutine != nil {
		t.IsRoutine = *p.IsRoutine
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Anchor != nil && !p.Anchor.IsZero() {
		t.Anchor = *p.Anchor
	}
}

// DeleteTask removes the task id.
func (s *Service) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.tasks, ok = s.tasks.Delete(id); !ok {
		return notFound("task", id)
	}
	s.publish()
	return nil
}

// TasksForDay returns the tasks that apply to day.
func (s *Service) TasksForDay(day timeutil.Day) []entry.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calendar.TasksForDay(day, s.tasks.All())
}

// validateTask checks t and normalizes its category; empty selects General.
func validateTask(t *entry.Task) error {
	if t.Title == "" {
		return invalid("task title is required")
	}
	if t.Anchor.IsZero() {
		return invalid("task date is required")
	}
	c, err := entry.ParseCategory(string(t.Category))
	if err != nil {
		return invalid("unknown category %q", t.Category)
	}
	t.Category = c
	return nil
}

// present copies an optional day, treating the zero Day as absent.
func present(d *timeutil.Day) *timeutil.Day {
	if d == nil || d.IsZero() {
		return nil
	}
	c := *d
	return &c
}
