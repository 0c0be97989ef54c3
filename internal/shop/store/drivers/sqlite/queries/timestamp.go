package queries

import (
	"fmt"
	"time"
)

// TimeLayout is fixed width so stored timestamps sort and compare as text.
const TimeLayout = "2006-01-02 15:04:05.000000000"

func ts(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// timestamp scans either a driver-parsed time or the raw TimeLayout text.
type timestamp time.Time

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = timestamp(v.UTC())
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("queries: cannot scan %T into timestamp", src)
	}
}

func (t *timestamp) parse(s string) error {
	parsed, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("queries: parse timestamp %q: %w", s, err)
	}
	*t = timestamp(parsed)
	return nil
}
