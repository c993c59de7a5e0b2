// Package localtime renders appointment times in the ward's timezone.
package localtime

import (
	"fmt"
	"time"
)

// DisplayLayout matches the month/day/year, 12-hour clock format people read in SMS.
const DisplayLayout = "1/2/2006, 3:04:05 PM"

// Formatter converts absolute times into a fixed IANA timezone.
type Formatter struct {
	location *time.Location
}

// NewFormatter creates a Formatter for the given IANA timezone string,
// e.g. "America/Denver". An empty string means UTC.
func NewFormatter(timezone string) (*Formatter, error) {
	if timezone == "" {
		return &Formatter{location: time.UTC}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Formatter{location: loc}, nil
}

// MustFormatter is like NewFormatter but falls back to UTC on a bad timezone.
func MustFormatter(timezone string) *Formatter {
	f, err := NewFormatter(timezone)
	if err != nil {
		return &Formatter{location: time.UTC}
	}
	return f
}

// Location returns the configured timezone.
func (f *Formatter) Location() *time.Location {
	return f.location
}

// Format renders t using DisplayLayout in the configured timezone.
func (f *Formatter) Format(t time.Time) string {
	return t.In(f.location).Format(DisplayLayout)
}

// In converts t to the configured timezone.
func (f *Formatter) In(t time.Time) time.Time {
	return t.In(f.location)
}

// DaysAhead returns the same wall-clock time n calendar days after now,
// in the configured timezone.
func (f *Formatter) DaysAhead(now time.Time, n int) time.Time {
	return now.In(f.location).AddDate(0, 0, n)
}
