/*
Package calendar provides timezone-naive calendar dates and the
business-day arithmetic used by the judicial-term tools.

PURPOSE:
  Judicial terms in Colombia run in business days (días hábiles):
  weekends and national holidays do not count. This package owns the
  Date type, the holiday table, and the advancer that walks a term
  forward to its due date.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: a plain calendar date with no time-of-day and no location.
    Serializing and re-parsing a Date can never shift it across a day
    boundary, which removes the whole class of timezone bugs that
    wall-clock date handling invites.

SEE ALSO:
  - holidays.go: The Colombian holiday table
  - advance.go: Business-day advancement
*/
package calendar

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Timezone-naive calendar date
// =============================================================================

// Date is a calendar date with day granularity. The zero value is not a
// valid date; construct with NewDate or ParseDate.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date. Out-of-range components are normalized the way
// time.Date normalizes them (e.g. February 30 becomes March 1 or 2).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// MustParseDate is ParseDate for static tables; panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Today returns the current date in the process-local clock.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Comparison
func (d Date) Equal(other Date) bool  { return d == other }
func (d Date) Before(other Date) bool { return d.time().Before(other.time()) }
func (d Date) After(other Date) bool  { return d.time().After(other.time()) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date {
	t := d.time().AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Properties
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string { return d.time().Format("2006-01-02") }

// =============================================================================
// DATE UTILITIES
// =============================================================================

// DaysBetween returns the signed number of calendar days from `from` to `to`.
func DaysBetween(from, to Date) int {
	return int(to.time().Sub(from.time()).Hours() / 24)
}

// DaysBetweenInclusive counts both endpoints: a period that starts and ends
// on the same day is 1 day long. This is the convention Colombian labor
// settlements use for service-time day counts.
func DaysBetweenInclusive(from, to Date) int {
	return DaysBetween(from, to) + 1
}
