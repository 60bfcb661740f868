// Package entry defines the records kept by worklog: task records, calendar
// events, routine presets, management notes and bookmarks.
package entry

// Meta carries the identity and lifecycle stamps every record shares.
type Meta struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt Timestamp `json:"createdAt" yaml:"-"`
	UpdatedAt Timestamp `json:"updatedAt" yaml:"-"`
}
