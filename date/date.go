// Package date provides a calendar date with day granularity and the
// range arithmetic used by budgets and spending reports. A Date has no
// time component and no location; comparisons are purely calendrical.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the canonical string representation of a Date.
const Format = "2006-01-02"

// Date represents a calendar day.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
// Out-of-range values are carried over, per time.Date semantics.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Parse parses a strict YYYY-MM-DD date. Calendar-invalid dates such as
// 2024-02-30 or 2024-13-01 are rejected rather than rolled over.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected format YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return Date{y: y, m: m, d: d}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// literals known to be valid.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime truncates an instant to its calendar day in the instant's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y: y, m: m, d: d}
}

// Today returns the current date in the local time zone.
func Today() Date {
	return FromTime(time.Now())
}

// time returns midnight UTC of the day, the canonical instant used for
// comparisons and day arithmetic.
func (d Date) time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns the first instant of the day in UTC.
func (d Date) StartOfDay() time.Time {
	return d.time()
}

// EndOfDay returns the last representable instant of the day in UTC.
func (d Date) EndOfDay() time.Time {
	return time.Date(d.y, d.m, d.d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// Before reports whether d falls before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d falls after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Equal reports whether d and x are the same calendar day.
func (d Date) Equal(x Date) bool { return d == x }

// AddDays returns the date n days after d (or before, for negative n).
func (d Date) AddDays(n int) Date {
	return FromTime(d.time().AddDate(0, 0, n))
}

// AddDate returns the date shifted by the given calendar amounts, with
// time.AddDate semantics.
func (d Date) AddDate(years, months, days int) Date {
	return FromTime(d.time().AddDate(years, months, days))
}

// DaysUntil returns the number of whole days from d to x. Negative when
// x is before d.
func (d Date) DaysUntil(x Date) int {
	return int(x.time().Sub(d.time()) / (24 * time.Hour))
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string { return d.time().Format(Format) }

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string, rejecting invalid dates.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)

// Range is an inclusive calendar interval.
type Range struct {
	From, To Date
}

// Contains reports whether day falls inside the range, boundaries included.
func (r Range) Contains(day Date) bool {
	return !day.Before(r.From) && !day.After(r.To)
}

// ContainsTime reports whether the instant falls inside the range when
// truncated to its calendar day.
func (r Range) ContainsTime(t time.Time) bool {
	return !t.Before(r.From.StartOfDay()) && !t.After(r.To.EndOfDay())
}

// Overlaps reports whether two inclusive ranges share at least one day.
// Touching boundaries count as overlap.
func (r Range) Overlaps(o Range) bool {
	return !r.From.After(o.To) && !r.To.Before(o.From)
}

// Days returns the inclusive number of days covered by the range.
func (r Range) Days() int {
	return r.From.DaysUntil(r.To) + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%s to %s", r.From, r.To)
}
