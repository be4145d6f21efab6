// Package photodate resolves the capture date of a photo from its EXIF
// timestamp or, failing that, from well-known filename conventions.
package photodate

import (
	"fmt"
	"time"
)

// Clock is an optional time of day attached to a Date.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// Date is a calendar date with an optional time of day.
// The zero value means the date is unknown.
type Date struct {
	Year  int
	Month int
	Day   int
	Clock *Clock
}

// unknownStr is the string representation for unknown values.
const unknownStr = "unknown"

// IsZero reports whether the date is unknown.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Valid reports whether the date names a real calendar day
// (and, when a clock is present, a real time of day).
func (d Date) Valid() bool {
	if d.Year < minYear || d.Year > maxYear {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	if d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return false
	}
	if c := d.Clock; c != nil {
		if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
			return false
		}
	}
	return true
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return unknownStr
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time converts the date to a time.Time in UTC.
// EXIF timestamps carry no zone, so UTC keeps results reproducible.
func (d Date) Time() time.Time {
	if d.Clock == nil {
		return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Clock.Hour, d.Clock.Minute, d.Clock.Second, 0, time.UTC)
}

// Of returns the date of t, including its time of day.
func Of(t time.Time) Date {
	return Date{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
		Clock: &Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()},
	}
}

// Plausible year range for photographs.
const (
	minYear = 1900
	maxYear = 2199
)

func daysIn(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Source records where a capture date came from.
type Source int

const (
	SourceUnknown Source = iota
	SourceMetadata
	SourceFilename
)

func (s Source) String() string {
	switch s {
	case SourceMetadata:
		return "metadata"
	case SourceFilename:
		return "filename"
	default:
		return unknownStr
	}
}

// Pattern identifies the filename convention a date was read from.
type Pattern int

const (
	PatternNone Pattern = iota
	PatternISODate
	PatternCompact
	PatternMessaging
	PatternCamera
)

func (p Pattern) String() string {
	switch p {
	case PatternISODate:
		return "YYYY-MM-DD"
	case PatternCompact:
		return "YYYYMMDD_HHMMSS"
	case PatternMessaging:
		return "IMG-YYYYMMDD"
	case PatternCamera:
		return "IMG_YYYYMMDD_HHMMSS"
	default:
		return "none"
	}
}
