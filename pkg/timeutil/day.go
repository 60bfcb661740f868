// Package timeutil holds calendar-day values and the date helpers shared by
// the calendar views.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// LayoutISO is the textual form of a Day.
const LayoutISO = "2006-01-02"

var timeNow = time.Now

// Day is a wall-clock calendar day. The time of day is discarded, so two
// instants compare equal iff they fall on the same local day. The zero Day
// means "no date".
type Day struct {
	t time.Time
}

// NewDay builds a Day, normalizing overflowing months and days like time.Date.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	if t.IsZero() {
		return Day{}
	}
	return NewDay(t.Year(), t.Month(), t.Day())
}

// Today returns the current local calendar day.
func Today() Day {
	return DayOf(timeNow())
}

// ParseDay parses "2006-01-02". Surrounding whitespace is ignored and an
// empty string yields the zero Day.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, nil
	}
	t, err := time.Parse(LayoutISO, s)
	if err != nil {
		return Day{}, fmt.Errorf("timeutil: invalid day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// MustParseDay is ParseDay for literals in tests and seed data.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Ptr returns a pointer to a copy of d, or nil for the zero Day.
func (d Day) Ptr() *Day {
	if d.IsZero() {
		return nil
	}
	return &d
}

func (d Day) IsZero() bool          { return d.t.IsZero() }
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) DayOfMonth() int       { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) Equal(o Day) bool      { return d.t.Equal(o.t) }
func (d Day) Before(o Day) bool     { return d.t.Before(o.t) }
func (d Day) After(o Day) bool      { return d.t.After(o.t) }
func (d Day) AddDays(n int) Day     { return Day{t: d.t.AddDate(0, 0, n)} }

// SameMonth reports whether d and o fall in the same calendar month.
func (d Day) SameMonth(o Day) bool {
	return d.Year() == o.Year() && d.Month() == o.Month()
}

// In returns midnight of d in loc.
func (d Day) In(loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.DayOfMonth(), 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1.
func (d Day) Compare(o Day) int {
	switch {
	case d.Before(o):
		return -1
	case d.After(o):
		return 1
	default:
		return 0
	}
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(LayoutISO)
}

// MarshalText implements encoding.TextMarshaler; JSON and YAML both use it.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// EqualPtr reports whether two optional days are both absent or the same day.
func EqualPtr(a, b *Day) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
