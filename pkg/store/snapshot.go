// Package store loads and saves the worklog snapshot.
package store

import (
	"context"

	"tableflip.dev/worklog/pkg/entry"
)

// Snapshot is the complete value of every record collection at one instant.
// Its JSON form is the persisted document.
type Snapshot struct {
	Tasks     []entry.Task     `json:"tasks"`
	Presets   []entry.Preset   `json:"routinePresets"`
	Notes     []entry.Note     `json:"managementBlocks"`
	Bookmarks []entry.Bookmark `json:"bookmarks"`
	Events    []entry.Event    `json:"calendarEvents"`
}

// Clone returns a copy whose slices do not alias s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Tasks:     append([]entry.Task(nil), s.Tasks...),
		Presets:   append([]entry.Preset(nil), s.Presets...),
		Notes:     append([]entry.Note(nil), s.Notes...),
		Bookmarks: append([]entry.Bookmark(nil), s.Bookmarks...),
		Events:    append([]entry.Event(nil), s.Events...),
	}
}

// normalize replaces nil collections with empty ones so the document always
// lists all five keys.
func (s *Snapshot) normalize() {
	if s.Tasks == nil {
		s.Tasks = []entry.Task{}
	}
	if s.Presets == nil {
		s.Presets = []entry.Preset{}
	}
	if s.Notes == nil {
		s.Notes = []entry.Note{}
	}
	if s.Bookmarks == nil {
		s.Bookmarks = []entry.Bookmark{}
	}
	if s.Events == nil {
		s.Events = []entry.Event{}
	}
}

// Gateway loads and saves whole snapshots.
type Gateway interface {
	// Load returns the stored snapshot, or the seed data when nothing is
	// stored yet. An empty bookmark collection is refilled from the seed.
	Load(ctx context.Context) (Snapshot, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, s Snapshot) error
}
