package utils

import (
	"errors"
	"strings"
	"time"
)

const (
	DayLayout      = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04:05"
	isoDayLayout   = "2006-01-02"
)

var ErrInvalidDate = errors.New("invalid date, use DD/MM/YYYY or YYYY-MM-DD")

// ParseDay parses a calendar day in loc. Both the display layout (DD/MM/YYYY)
// and ISO dates are accepted.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{DayLayout, isoDayLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// DayOf truncates t to midnight of its calendar day in loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
