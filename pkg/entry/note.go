package entry

import "tableflip.dev/worklog/pkg/timeutil"

// Note is a dated management remark.
type Note struct {
	Meta    `yaml:",inline"`
	Title   string       `json:"title" yaml:"title"`
	Content string       `json:"content" yaml:"content"`
	Date    timeutil.Day `json:"date" yaml:"date"`
}

func (n Note) Identity() string { return n.ID }
func (n Note) Stamps() Meta     { return n.Meta }

func (n Note) WithMeta(m Meta) Note {
	n.Meta = m
	return n
}
