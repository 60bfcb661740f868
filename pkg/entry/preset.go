package entry

// Preset pre-fills a routine task record.
type Preset struct {
	Meta              `yaml:",inline"`
	Name              string `json:"name" yaml:"name"`
	DefaultTitle      string `json:"defaultTitle" yaml:"defaultTitle"`
	DefaultProgress   string `json:"defaultProgress,omitempty" yaml:"defaultProgress,omitempty"`
	DefaultReflection string `json:"defaultReflection,omitempty" yaml:"defaultReflection,omitempty"`
}

func (p Preset) Identity() string { return p.ID }
func (p Preset) Stamps() Meta     { return p.Meta }

func (p Preset) WithMeta(m Meta) Preset {
	p.Meta = m
	return p
}
