package timeutil

import "testing"

func TestParseWindowDefault(t *testing.T) {
	days, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 7 {
		t.Fatalf("expected 7 days, got %d", days)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	days, label, err := ParseWindow("1w 2d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 9 {
		t.Fatalf("expected 9 days, got %d", days)
	}
	if label != "1w2d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3h", "0d"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestWindowIsInclusive(t *testing.T) {
	from, until := Window(MustParseDay("2024-06-10"), 7)
	if from.String() != "2024-06-04" || until.String() != "2024-06-10" {
		t.Fatalf("unexpected window %s..%s", from, until)
	}
}
