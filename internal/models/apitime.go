package models

import (
	"strings"
	"time"
)

// APITime wraps time.Time to tolerate the timestamp shapes the remote API
// emits: zoneless ISO local date-times alongside RFC3339.
type APITime struct {
	time.Time
}

const apiTimeLayout = "2006-01-02T15:04:05"

var apiTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func NewAPITime(t time.Time) APITime {
	return APITime{Time: t}
}

// ParseAPITime parses a timestamp string with the same tolerance as the JSON
// decoder.
func ParseAPITime(s string) (APITime, error) {
	var t APITime
	if err := t.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		return APITime{}, err
	}
	return t, nil
}

func (t *APITime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}

	var lastErr error
	for _, format := range apiTimeFormats {
		parsed, err := time.ParseInLocation(format, s, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Format(apiTimeLayout) + `"`), nil
}
