package docstore

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// TimestampLayout is the canonical text form of stored timestamps. It is fixed
// width in UTC, so lexical order equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

var fallbackLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05.999999",
}

// FormatTimestamp serializes t in the canonical layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// RehydrateTime turns a stored timestamp back into a time.Time. Values that are
// already structured pass through, so rehydrating twice is harmless.
func RehydrateTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case *time.Time:
		if t == nil {
			return time.Time{}, fmt.Errorf("docstore: nil timestamp")
		}
		return t.UTC(), nil
	case string:
		return parseTimestamp(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return time.Unix(n, 0).UTC(), nil
		}
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("docstore: timestamp %q: %w", t, err)
		}
		return unixFloat(f), nil
	case float64:
		return unixFloat(t), nil
	case int64:
		return time.Unix(t, 0).UTC(), nil
	case int:
		return time.Unix(int64(t), 0).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("docstore: unsupported timestamp type %T", v)
	}
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("docstore: unparseable timestamp %q", s)
}

func unixFloat(f float64) time.Time {
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC().Truncate(time.Microsecond)
}
