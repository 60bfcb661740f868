package entry

// Bookmark is a folder or a link in the bookmark tree. An empty ParentID
// places the node at the root.
type Bookmark struct {
	Meta     `yaml:",inline"`
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	ParentID string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	IsFolder bool   `json:"isFolder" yaml:"isFolder"`
}

func (b Bookmark) Identity() string { return b.ID }
func (b Bookmark) Stamps() Meta     { return b.Meta }

func (b Bookmark) WithMeta(m Meta) Bookmark {
	b.Meta = m
	return b
}
