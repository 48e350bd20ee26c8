package engine

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical string form of a Day (ISO date).
const DayLayout = "2006-01-02"

// Day is one local calendar day. Two Days are equal iff they name the same date,
// so a Day can be compared with == and used as a map key.
type Day struct {
	year  int
	month time.Month
	day   int
}

// NewDay builds a Day, normalizing out-of-range values the way time.Date does.
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// Today returns the local calendar day for now.
func Today(now time.Time) Day {
	return DayOf(now.Local())
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, &ValidationError{Field: "day", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return DayOf(t), nil
}

// MustParseDay is ParseDay for constants and tests.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Day) Year() int         { return d.year }
func (d Day) Month() time.Month { return d.month }
func (d Day) Day() int          { return d.day }

// IsZero reports whether d is the zero Day (not a real date).
func (d Day) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Time returns midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	d.mustBeValid()
	// Noon UTC keeps the arithmetic clear of DST transitions.
	t := time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.UTC)
	return DayOf(t.AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1.
func (d Day) Compare(o Day) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

func (d Day) Before(o Day) bool { return d.Compare(o) < 0 }
func (d Day) After(o Day) bool  { return d.Compare(o) > 0 }

// Weekday returns the day of the week of d.
func (d Day) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	// Accept full timestamps too: older exports stored startDate as an ISO datetime.
	s := string(b)
	if len(s) > len(DayLayout) {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			*d = DayOf(t)
			return nil
		}
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Day) mustBeValid() {
	if d.IsZero() {
		panic(&ValidationError{Field: "day", Reason: "zero day"})
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
