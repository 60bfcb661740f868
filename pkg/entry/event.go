package entry

import "tableflip.dev/worklog/pkg/timeutil"

// Event is a dated calendar marker. Events never span a range.
type Event struct {
	Meta       `yaml:",inline"`
	Date       timeutil.Day `json:"date" yaml:"date"`
	Title      string       `json:"title" yaml:"title"`
	IsDeadline bool         `json:"isDeadline" yaml:"isDeadline"`
}

func (e Event) Identity() string { return e.ID }
func (e Event) Stamps() Meta     { return e.Meta }

func (e Event) WithMeta(m Meta) Event {
	e.Meta = m
	return e
}
