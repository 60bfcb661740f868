package app

import (
	"strings"

	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/timeutil"
)

// NoteInput describes a management note. A zero Date means today.
type NoteInput struct {
	Title   string
	Content string
	Date    timeutil.Day
}

func (s *Service) Notes() []entry.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.All()
}

func (s *Service) AddNote(in NoteInput) (entry.Note, error) {
	n := entry.Note{Title: strings.TrimSpace(in.Title), Content: in.Content, Date: in.Date}
	if n.Title == "" {
		return entry.Note{}, invalid("note title is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.Date.IsZero() {
		n.Date = s.today()
	}
	var created entry.Note
	s.notes, created = s.notes.Create(n)
	s.publish()
	return created, nil
}

// UpdateNote replaces the note's fields; a zero Date keeps the stored one.
func (s *Service) UpdateNote(id string, in NoteInput) (entry.Note, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return entry.Note{}, invalid("note title is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		updated entry.Note
		ok      bool
	)
	s.notes, updated, ok = s.notes.Update(id, func(n *entry.Note) {
		n.Title, n.Content = title, in.Content
		if !in.Date.IsZero() {
			n.Date = in.Date
		}
	})
	if !ok {
		return entry.Note{}, notFound("note", id)
	}
	s.publish()
	return updated, nil
}

func (s *Service) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.notes, ok = s.notes.Delete(id); !ok {
		return notFound("note", id)
	}
	s.publish()
	return nil
}
