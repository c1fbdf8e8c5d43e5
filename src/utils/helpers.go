package utils

import (
	"fmt"
	"hms/src/config"
	"time"
)

// ParseDate accepts any of config.DATE_PARSE_FORMATS.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range config.DATE_PARSE_FORMATS {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart time.Time, aEnd time.Time, bStart time.Time, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// StringPtr returns nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
