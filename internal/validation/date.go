package validation

import (
	"fmt"
	"strings"
	"time"
)

// Date accepts both "2006-01-02" and RFC 3339 timestamps in request bodies.
type Date struct {
	time.Time
}

// DateError is returned when a date string matches none of the accepted
// layouts. Handlers detect it to report the offending field instead of a
// generic malformed-body response.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Value)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = t
			return nil
		}
	}
	return &DateError{Value: s}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}
