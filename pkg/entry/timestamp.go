package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseTime parses an RFC3339 timestamp with optional fractional seconds.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp is an instant that round-trips through JSON without losing the
// sub-second ordering between createdAt and updatedAt.
type Timestamp struct {
	time.Time
}

// Stamp wraps t.
func Stamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	// Older snapshots stored epoch milliseconds.
	var millis int64
	if err := json.Unmarshal(b, &millis); err == nil {
		t.Time = time.UnixMilli(millis).UTC()
		return nil
	}
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTime renders v in UTC with nanosecond precision.
func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
