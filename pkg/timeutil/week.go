package timeutil

import "time"

// WeekStart returns the Sunday on or before d.
func WeekStart(d Day) Day {
	return d.AddDays(-int(d.Weekday()))
}

// WeekDays returns the seven days Sunday through Saturday containing d.
func WeekDays(d Day) []Day {
	start := WeekStart(d)
	days := make([]Day, 7)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// MonthStart returns the first day of d's month.
func MonthStart(d Day) Day {
	return NewDay(d.Year(), d.Month(), 1)
}

// MonthEnd returns the last day of d's month.
func MonthEnd(d Day) Day {
	return NewDay(d.Year(), d.Month()+1, 0)
}

// DaysIn returns the number of days in d's month.
func DaysIn(d Day) int {
	return MonthEnd(d).DayOfMonth()
}

// MonthWeeks returns the Sunday-start weeks that intersect d's month. Every
// returned week holds at least one day of the month.
func MonthWeeks(d Day) [][]Day {
	end := MonthEnd(d)
	var weeks [][]Day
	for start := WeekStart(MonthStart(d)); !start.After(end); start = start.AddDays(7) {
		weeks = append(weeks, WeekDays(start))
	}
	return weeks
}

// IsWeekend reports Saturday and Sunday.
func IsWeekend(d Day) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
