/*
holidays.go - Colombian national holiday table

PURPOSE:
  Holds the closed list of Colombian holidays the term calculator knows
  about. Colombia moves many feasts to the following Monday (Ley Emiliani),
  so the table stores resolved observed dates rather than computing them.

CLOSED-LIST CONTRACT:
  The table covers 2024 and 2025 only. Dates in years outside the table
  are implicitly business days even when they are real holidays. This is
  a deliberate boundary of the tool, not a defect: extending coverage
  means appending a year to the table, never adding a movable-feast
  algorithm here.

SEE ALSO:
  - advance.go: Consumes HolidayCalendar
  - factory/fiscal.go: Builds tables from fiscal configuration JSON
*/
package calendar

import "sort"

// =============================================================================
// HOLIDAY CALENDAR - Lookup interface
// =============================================================================

// HolidayCalendar answers whether a date is a holiday. Implementations
// must be safe for concurrent readers.
type HolidayCalendar interface {
	// IsHoliday reports whether the date is a holiday. Weekends are not
	// the calendar's concern; callers check those separately.
	IsHoliday(d Date) bool

	// Holidays returns the known holidays for a year, ascending.
	// Years outside the table return nil.
	Holidays(year int) []Date
}

// NoHolidays is a calendar with no holidays at all.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(Date) bool     { return false }
func (NoHolidays) Holidays(int) []Date     { return nil }

// =============================================================================
// HOLIDAY TABLE - Static closed-list implementation
// =============================================================================

// HolidayTable is a HolidayCalendar backed by a fixed set of dates.
type HolidayTable struct {
	dates map[Date]struct{}
}

// NewHolidayTable builds a table from explicit dates. Duplicates collapse.
func NewHolidayTable(dates []Date) *HolidayTable {
	set := make(map[Date]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return &HolidayTable{dates: set}
}

func (t *HolidayTable) IsHoliday(d Date) bool {
	_, ok := t.dates[d]
	return ok
}

func (t *HolidayTable) Holidays(year int) []Date {
	var out []Date
	for d := range t.dates {
		if d.Year == year {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Years returns the years the table covers, ascending.
func (t *HolidayTable) Years() []int {
	seen := make(map[int]struct{})
	for d := range t.dates {
		seen[d.Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// =============================================================================
// COLOMBIA 2024-2025 - Observed national holidays
// =============================================================================

// colombianHolidays lists the observed dates (Emiliani shifts applied).
var colombianHolidays = []string{
	// 2024
	"2024-01-01", "2024-01-08", "2024-03-25", "2024-03-28", "2024-03-29",
	"2024-05-01", "2024-05-13", "2024-06-03", "2024-06-10", "2024-07-01",
	"2024-07-20", "2024-08-07", "2024-08-19", "2024-10-14", "2024-11-04",
	"2024-11-11", "2024-12-08", "2024-12-25",
	// 2025
	"2025-01-01", "2025-01-06", "2025-03-24", "2025-04-17", "2025-04-18",
	"2025-05-01", "2025-06-02", "2025-06-23", "2025-06-30", "2025-07-20",
	"2025-08-07", "2025-08-18", "2025-10-13", "2025-11-03", "2025-11-17",
	"2025-12-08", "2025-12-25",
}

// Colombia returns the built-in Colombian holiday table (2024-2025).
func Colombia() *HolidayTable {
	dates := make([]Date, len(colombianHolidays))
	for i, s := range colombianHolidays {
		dates[i] = MustParseDate(s)
	}
	return NewHolidayTable(dates)
}
