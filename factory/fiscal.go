/*
Package factory provides JSON to Go fiscal-configuration conversion.

PURPOSE:
  Converts JSON fiscal definitions into settlement.Params and a
  calendar.HolidayTable. Transport subsidy values and holiday dates
  change every fiscal year by decree - keeping them in JSON means the
  firm updates a config file, not the formulas.

JSON SCHEMA:
  {
    "transport_subsidy": "162000",
    "years": [
      {"year": 2024, "holidays": ["2024-01-01", "2024-01-08", ...]},
      {"year": 2025, "holidays": ["2025-01-01", ...]}
    ]
  }

KEY FEATURES:
  - Validates structure and date formats
  - Decimal subsidy parsed exactly (string in JSON, never a float)
  - Defaults() mirrors the built-in 2024-2025 values

SEE ALSO:
  - settlement/settlement.go: Params consumer
  - calendar/holidays.go: HolidayTable consumer
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/toga/practice-engine/calendar"
	"github.com/toga/practice-engine/settlement"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// FiscalJSON is the JSON representation of the fiscal configuration.
type FiscalJSON struct {
	TransportSubsidy string     `json:"transport_subsidy"`
	Years            []YearJSON `json:"years"`
}

// YearJSON lists the observed holidays of one year.
type YearJSON struct {
	Year     int      `json:"year"`
	Holidays []string `json:"holidays"`
}

// FiscalConfig is the parsed, typed configuration.
type FiscalConfig struct {
	Params   settlement.Params
	Holidays *calendar.HolidayTable
}

// =============================================================================
// PARSING
// =============================================================================

// ParseFiscalConfig decodes and validates a fiscal configuration document.
func ParseFiscalConfig(data []byte) (*FiscalConfig, error) {
	var raw FiscalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid fiscal config JSON: %w", err)
	}

	if raw.TransportSubsidy == "" {
		return nil, fmt.Errorf("fiscal config missing transport_subsidy")
	}
	subsidy, err := decimal.NewFromString(raw.TransportSubsidy)
	if err != nil {
		return nil, fmt.Errorf("invalid transport_subsidy %q: %w", raw.TransportSubsidy, err)
	}
	if subsidy.IsNegative() {
		return nil, fmt.Errorf("transport_subsidy must not be negative")
	}

	var dates []calendar.Date
	for _, y := range raw.Years {
		for _, s := range y.Holidays {
			d, err := calendar.ParseDate(s)
			if err != nil {
				return nil, fmt.Errorf("year %d: %w", y.Year, err)
			}
			if d.Year != y.Year {
				return nil, fmt.Errorf("holiday %s listed under year %d", d, y.Year)
			}
			dates = append(dates, d)
		}
	}

	return &FiscalConfig{
		Params:   settlement.Params{TransportSubsidy: subsidy},
		Holidays: calendar.NewHolidayTable(dates),
	}, nil
}

// Defaults returns the built-in configuration: 2024 subsidy value and
// the Colombian 2024-2025 holiday table.
func Defaults() *FiscalConfig {
	return &FiscalConfig{
		Params:   settlement.DefaultParams(),
		Holidays: calendar.Colombia(),
	}
}
