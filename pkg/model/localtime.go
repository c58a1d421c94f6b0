package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LocalTimeLayout is the wire format of post timestamps: a wall clock time without zone suffix.
const LocalTimeLayout = "2006-01-02T15:04:05"

// layouts accepted by ParseLocal, most specific first
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	LocalTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseLocal parses a timestamp as sent by the app. Values carrying a zone offset keep it, values
// without one are interpreted as wall clock time in loc.
func ParseLocal(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatLocal renders t as wall clock time in its own location without zone suffix.
func FormatLocal(t time.Time) string {
	return t.Format(LocalTimeLayout)
}

// LocalTime is a timestamp serialized without zone information. It is stored as a SQL timestamp.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{t}
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(FormatLocal(t.Time))
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("timestamp must be a string: %v", err)
	}
	if value == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, ok := ParseLocal(value, time.Local)
	if !ok {
		return fmt.Errorf("invalid timestamp %q, want layout %s", value, LocalTimeLayout)
	}
	t.Time = parsed
	return nil
}

func (t LocalTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time, nil
}

func (t *LocalTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		// timestamp columns carry no zone, keep the wall clock
		t.Time = time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), time.Local)
	case string:
		parsed, ok := ParseLocal(v, time.Local)
		if !ok {
			return fmt.Errorf("failed to scan timestamp %q", v)
		}
		t.Time = parsed
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("failed to scan timestamp of type %T", src)
	}
	return nil
}

func (LocalTime) GormDataType() string {
	return "timestamp"
}
