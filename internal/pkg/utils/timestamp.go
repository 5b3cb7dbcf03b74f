package utils

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/validator"
)

// Timestamp is a backend timestamp that keeps the raw text when it cannot be parsed.
// Backend values come either as RFC 3339 or as "2006-01-02 15:04:05" in server local time.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// ParseTimestamp never fails; an unparseable value yields a zero Time and keeps Raw.
func ParseTimestamp(s string) Timestamp {
	t, _ := validator.IsValidDateTime(s, time.Local)
	return Timestamp{Time: t, Raw: s}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseTimestamp(s)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw == "" && t.Time.IsZero() {
		return []byte("null"), nil
	}
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Valid reports whether the raw value parsed into a time.
func (t Timestamp) Valid() bool {
	return !t.Time.IsZero()
}

// IsSameDay reports whether a and b fall on the same calendar day in loc.
func IsSameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
