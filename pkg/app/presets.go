package app

import (
	"strings"

	"tableflip.dev/worklog/pkg/entry"
	"tableflip.dev/worklog/pkg/timeutil"
)

// PresetInput describes a routine preset. Updates replace every field.
type PresetInput struct {
	Name              string
	DefaultTitle      string
	DefaultProgress   string
	DefaultReflection string
}

func (in PresetInput) preset() entry.Preset {
	return entry.Preset{
		Name:              strings.TrimSpace(in.Name),
		DefaultTitle:      strings.TrimSpace(in.DefaultTitle),
		DefaultProgress:   in.DefaultProgress,
		DefaultReflection: in.DefaultReflection,
	}
}

func validatePreset(p entry.Preset) error {
	if p.Name == "" {
		return invalid("preset name is required")
	}
	return nil
}

func (s *Service) Presets() []entry.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presets.All()
}

func (s *Service) AddPreset(in PresetInput) (entry.Preset, error) {
	p := in.preset()
	if err := validatePreset(p); err != nil {
		return entry.Preset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var created entry.Preset
	s.presets, created = s.presets.Create(p)
	s.publish()
	return created, nil
}

func (s *Service) UpdatePreset(id string, in PresetInput) (entry.Preset, error) {
	next := in.preset()
	if err := validatePreset(next); err != nil {
		return entry.Preset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		updated entry.Preset
		ok      bool
	)
	s.presets, updated, ok = s.presets.Update(id, func(p *entry.Preset) { *p = next })
	if !ok {
		return entry.Preset{}, notFound("preset", id)
	}
	s.publish()
	return updated, nil
}

func (s *Service) DeletePreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.presets, ok = s.presets.Delete(id); !ok {
		return notFound("preset", id)
	}
	s.publish()
	return nil
}

// ApplyPreset files a routine task on day pre-filled from the preset. A
// preset without a default title lends its name.
func (s *Service) ApplyPreset(presetID string, day timeutil.Day) (entry.Task, error) {
	s.mu.Lock()
	p, ok := s.presets.Get(presetID)
	s.mu.Unlock()
	if !ok {
		return entry.Task{}, notFound("preset", presetID)
	}
	title := p.DefaultTitle
	if title == "" {
		title = p.Name
	}
	return s.AddTask(TaskInput{
		Title:      title,
		Progress:   p.DefaultProgress,
		Reflection: p.DefaultReflection,
		IsRoutine:  true,
		Category:   entry.CategoryRoutine,
		Anchor:     day,
	})
}
