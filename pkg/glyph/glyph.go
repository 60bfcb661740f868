// Package glyph holds the marks printed in front of worklog entries.
package glyph

import "tableflip.dev/worklog/pkg/entry"

type Glyph struct {
	Symbol  string
	Meaning string
	// Structural glyphs mark bookmark nodes rather than dated entries.
	Structural bool
}

func (g Glyph) String() string {
	return g.Symbol
}

type Mark int

const (
	Task Mark = iota
	Routine
	Management
	Event
	Deadline
	Ranged
	Folder
	Link
)

var glyphs = []Glyph{
	Task:       {Symbol: "•", Meaning: "task"},
	Routine:    {Symbol: "↻", Meaning: "routine task"},
	Management: {Symbol: "◆", Meaning: "management task"},
	Event:      {Symbol: "○", Meaning: "event"},
	Deadline:   {Symbol: "!", Meaning: "deadline event"},
	Ranged:     {Symbol: "→", Meaning: "task spanning a date range"},
	Folder:     {Symbol: "▸", Meaning: "bookmark folder", Structural: true},
	Link:       {Symbol: "-", Meaning: "bookmark link", Structural: true},
}

// DefaultGlyphs returns every mark in display order.
func DefaultGlyphs() []Glyph {
	out := make([]Glyph, len(glyphs))
	copy(out, glyphs)
	return out
}

func (m Mark) Glyph() Glyph {
	if m < 0 || int(m) >= len(glyphs) {
		return Glyph{}
	}
	return glyphs[m]
}

func (m Mark) String() string {
	return m.Glyph().String()
}

// ForTask picks the mark for t. Routine wins over the category so presets
// applied under another category still read as routine work.
func ForTask(t entry.Task) Mark {
	switch {
	case t.IsRoutine || t.Category == entry.CategoryRoutine:
		return Routine
	case t.Category == entry.CategoryManagement:
		return Management
	default:
		return Task
	}
}

func ForEvent(e entry.Event) Mark {
	if e.IsDeadline {
		return Deadline
	}
	return Event
}

func ForBookmark(b entry.Bookmark) Mark {
	if b.IsFolder {
		return Folder
	}
	return Link
}
