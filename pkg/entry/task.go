package entry

import (
	"fmt"
	"strings"

	"tableflip.dev/worklog/pkg/timeutil"
)

// Category classifies a task record.
type Category string

const (
	CategoryGeneral    Category = "General"
	CategoryRoutine    Category = "Routine"
	CategoryManagement Category = "Management"
)

// AllCategories returns the supported categories in display order.
func AllCategories() []Category {
	return []Category{CategoryGeneral, CategoryRoutine, CategoryManagement}
}

// ParseCategory matches raw case-insensitively; empty selects General.
func ParseCategory(raw string) (Category, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CategoryGeneral, nil
	}
	for _, c := range AllCategories() {
		if strings.EqualFold(string(c), raw) {
			return c, nil
		}
	}
	return CategoryGeneral, fmt.Errorf("entry: unknown category %q", raw)
}

// Task is a work item filed under an anchor day, optionally spanning a
// start/deadline range.
type Task struct {
	Meta       `yaml:",inline"`
	Title      string        `json:"title" yaml:"title"`
	StartDate  *timeutil.Day `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	Deadline   *timeutil.Day `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Progress   string        `json:"progress,omitempty" yaml:"progress,omitempty"`
	Reflection string        `json:"reflection,omitempty" yaml:"reflection,omitempty"`
	IsRoutine  bool          `json:"isRoutine" yaml:"isRoutine"`
	Category   Category      `json:"category" yaml:"category"`
	Anchor     timeutil.Day  `json:"date" yaml:"date"`
}

func (t Task) Identity() string { return t.ID }
func (t Task) Stamps() Meta     { return t.Meta }

func (t Task) WithMeta(m Meta) Task {
	t.Meta = m
	return t
}
