package cnv

import (
	"strings"
	"time"
)

const (
	// TimestampLayout is the layout of the "NMEA UTC (Time)" header value.
	TimestampLayout = "Jan 2 2006 15:04:05"

	// CanonicalLayout is the textual rendering of a Timestamp.
	CanonicalLayout = "2006-01-02 15:04:05"
)

// Timestamp is a UTC calendar instant with second precision.
type Timestamp struct {
	t time.Time
}

// NewTimestamp truncates t to the second and converts it to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(time.Second)}
}

// ParseTimestamp parses a value such as "Nov 27 2015 17:55:23".
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.Join(strings.Fields(s), " ")
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return Timestamp{}, err
	}
	return NewTimestamp(t), nil
}

// Time returns the instant as a time.Time in UTC.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// String renders the timestamp as YYYY-MM-DD HH:MM:SS.
func (ts Timestamp) String() string {
	return ts.t.Format(CanonicalLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for the canonical form.
func (ts *Timestamp) UnmarshalText(text []byte) error {
	t, err := time.ParseInLocation(CanonicalLayout, string(text), time.UTC)
	if err != nil {
		return err
	}
	*ts = NewTimestamp(t)
	return nil
}
