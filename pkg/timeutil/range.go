package timeutil

// InRange decides whether day falls in the optional [start, end] range.
//
// Both bounds set: inclusive range. Only one bound set: the range is a single
// day marker on that bound, never open-ended. No bounds: never in range;
// callers match a record's own anchor day before falling back to this.
func InRange(day Day, start, end *Day) bool {
	start, end = present(start), present(end)
	switch {
	case start != nil && end != nil:
		return !day.Before(*start) && !day.After(*end)
	case start != nil:
		return day.Equal(*start)
	case end != nil:
		return day.Equal(*end)
	default:
		return false
	}
}

func present(d *Day) *Day {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}
