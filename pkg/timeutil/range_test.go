package timeutil

import "testing"

func TestInRange(t *testing.T) {
	d := MustParseDay
	tests := []struct {
		name  string
		day   string
		start string
		end   string
		want  bool
	}{
		{name: "inside range", day: "2024-06-11", start: "2024-06-10", end: "2024-06-12", want: true},
		{name: "on start", day: "2024-06-10", start: "2024-06-10", end: "2024-06-12", want: true},
		{name: "on end", day: "2024-06-12", start: "2024-06-10", end: "2024-06-12", want: true},
		{name: "before range", day: "2024-06-09", start: "2024-06-10", end: "2024-06-12", want: false},
		{name: "after range", day: "2024-06-13", start: "2024-06-10", end: "2024-06-12", want: false},
		{name: "single day range", day: "2024-06-10", start: "2024-06-10", end: "2024-06-10", want: true},
		{name: "start only matches start", day: "2024-06-05", start: "2024-06-05", want: true},
		{name: "start only is not open ended", day: "2024-06-06", start: "2024-06-05", want: false},
		{name: "end only matches end", day: "2024-06-20", end: "2024-06-20", want: true},
		{name: "end only excludes earlier days", day: "2024-06-19", end: "2024-06-20", want: false},
		{name: "no bounds", day: "2024-06-19", want: false},
		{name: "inverted range", day: "2024-06-11", start: "2024-06-12", end: "2024-06-10", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InRange(d(tt.day), d(tt.start).Ptr(), d(tt.end).Ptr())
			if got != tt.want {
				t.Fatalf("InRange(%s, %q, %q) = %v, want %v", tt.day, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestInRangeTreatsZeroPointerAsAbsent(t *testing.T) {
	zero := Day{}
	day := MustParseDay("2024-06-05")
	if !InRange(day, day.Ptr(), &zero) {
		t.Fatal("expected zero end to behave like an absent end")
	}
}
