/*
advance.go - Business-day advancement for judicial terms

PURPOSE:
  Walks a date forward a given number of business days (días hábiles).
  The notification date itself never counts: a 3-day term notified on
  Monday runs Tuesday, Wednesday, Thursday and is due that Thursday.

COUNTING RULE:
  Step one calendar day at a time. Each stepped-to day that is neither
  a weekend day nor a holiday counts as one elapsed business day. Stop
  when the requested count is reached and return that day. The result
  is therefore always a business day.

SEE ALSO:
  - holidays.go: HolidayCalendar and the Colombian table
*/
package calendar

import "errors"

// ErrNegativeBusinessDays is returned when a term length is negative.
// Terms are rejected rather than clamped so a sign bug upstream surfaces
// instead of silently producing "due today".
var ErrNegativeBusinessDays = errors.New("business days must not be negative")

// =============================================================================
// ADVANCER
// =============================================================================

// Advancer advances dates over a holiday calendar. The zero value uses
// no holidays; production callers pass calendar.Colombia().
type Advancer struct {
	Holidays HolidayCalendar
}

// NewAdvancer creates an Advancer over the given calendar.
func NewAdvancer(cal HolidayCalendar) Advancer {
	return Advancer{Holidays: cal}
}

// IsBusinessDay reports whether d counts toward a term.
func (a Advancer) IsBusinessDay(d Date) bool {
	if d.IsWeekend() {
		return false
	}
	if a.Holidays != nil && a.Holidays.IsHoliday(d) {
		return false
	}
	return true
}

// Advance returns the date reached after businessDays business days
// following start. Advance(d, 0) is d unchanged, even when d itself is
// a weekend or holiday.
func (a Advancer) Advance(start Date, businessDays int) (Date, error) {
	if businessDays < 0 {
		return Date{}, ErrNegativeBusinessDays
	}

	current := start
	for count := 0; count < businessDays; {
		current = current.AddDays(1)
		if a.IsBusinessDay(current) {
			count++
		}
	}
	return current, nil
}
