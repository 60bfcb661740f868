package store

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/worklog/pkg/entry"
)

//go:embed seed.yaml
var seedYAML []byte

var timeNow = func() time.Time { return time.Now().UTC() }

type seedDoc struct {
	Bookmarks []entry.Bookmark `yaml:"bookmarks"`
	Presets   []entry.Preset   `yaml:"presets"`
}

// Seed returns the default snapshot used when nothing has been stored yet:
// a small bookmark tree and two routine presets.
func Seed() (Snapshot, error) {
	var doc seedDoc
	if err := yaml.Unmarshal(seedYAML, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("store: parse seed: %w", err)
	}
	now := entry.Stamp(timeNow())
	for i := range doc.Bookmarks {
		doc.Bookmarks[i].CreatedAt, doc.Bookmarks[i].UpdatedAt = now, now
	}
	for i := range doc.Presets {
		doc.Presets[i].CreatedAt, doc.Presets[i].UpdatedAt = now, now
	}
	s := Snapshot{Bookmarks: doc.Bookmarks, Presets: doc.Presets}
	s.normalize()
	return s, nil
}

// withSeedBookmarks fills an empty bookmark collection from the seed and
// leaves every other collection as stored.
func withSeedBookmarks(s Snapshot) (Snapshot, error) {
	if len(s.Bookmarks) > 0 {
		return s, nil
	}
	seed, err := Seed()
	if err != nil {
		return s, err
	}
	s.Bookmarks = seed.Bookmarks
	return s, nil
}
