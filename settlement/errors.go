/*
errors.go - Validation errors for the settlement calculators

PURPOSE:
  Centralized sentinel errors, matched with errors.Is(). The
  calculators fail fast and synchronously; there is no I/O here and
  therefore nothing to retry.
*/
package settlement

import "errors"

var (
	// ErrMissingDates is returned when Start or End is the zero Date.
	ErrMissingDates = errors.New("start and end dates are required")

	// ErrInvalidPeriod is returned when End precedes Start.
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrNegativeSalary is returned when the monthly salary is negative.
	ErrNegativeSalary = errors.New("monthly salary must not be negative")

	// ErrInvalidIndex is returned when an IPC reading is zero or negative.
	// Guarding here is what keeps a bad reading from turning into a silent
	// division blow-up.
	ErrInvalidIndex = errors.New("ipc index must be positive")
)
