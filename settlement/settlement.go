/*
Package settlement computes Colombian labor-settlement figures
(liquidación de prestaciones sociales) and IPC monetary indexation.

PURPOSE:
  Turns an employment period and salary into the four statutory
  accruals — cesantías, intereses sobre cesantías, prima de servicios
  and vacaciones — using the simplified single-period model the firm's
  calculators expose. All money is decimal.Decimal; nothing here ever
  touches floating point.

MODELING SIMPLIFICATIONS (intentional, do not "fix"):
  - Severance interest applies the 12% annual rate over the full
    period's day count, not per-calendar-year sub-periods.
  - Prima uses the same base*days/360 formula as cesantías instead of
    the semi-annual split.

DAY COUNT:
  Inclusive: start and end both count, so same-day start/end is 1 day.
  This convention changes the numbers and is preserved exactly.

SEE ALSO:
  - indexation.go: IPC indexation
  - factory/fiscal.go: Per-year fiscal parameters (transport subsidy)
*/
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/toga/practice-engine/calendar"
)

// =============================================================================
// FISCAL PARAMETERS
// =============================================================================

// Params carries the policy inputs the formulas depend on. They change
// per fiscal year by decree, so they are passed in rather than baked
// into the arithmetic.
type Params struct {
	// TransportSubsidy is the monthly auxilio de transporte in COP.
	TransportSubsidy decimal.Decimal
}

// DefaultParams returns the 2024 fiscal values.
func DefaultParams() Params {
	return Params{TransportSubsidy: decimal.NewFromInt(162000)}
}

// =============================================================================
// INPUT / RESULT
// =============================================================================

// Input describes one employment period to settle.
type Input struct {
	MonthlySalary    decimal.Decimal
	TransportSubsidy bool // whether auxilio de transporte applies
	Start            calendar.Date
	End              calendar.Date
}

// Validate checks the Input invariants: End >= Start, salary >= 0.
func (in Input) Validate() error {
	if in.Start.IsZero() || in.End.IsZero() {
		return ErrMissingDates
	}
	if in.End.Before(in.Start) {
		return ErrInvalidPeriod
	}
	if in.MonthlySalary.IsNegative() {
		return ErrNegativeSalary
	}
	return nil
}

// Result holds the computed accruals. Immutable once returned;
// Total is always the sum of the other four.
type Result struct {
	Days             int
	Severance        decimal.Decimal // cesantías
	SeveranceInterest decimal.Decimal // intereses sobre cesantías
	ServiceBonus     decimal.Decimal // prima de servicios
	VacationPay      decimal.Decimal // vacaciones
	Total            decimal.Decimal
}

// =============================================================================
// COMPUTATION
// =============================================================================

var (
	threeSixty    = decimal.NewFromInt(360)
	sevenTwenty   = decimal.NewFromInt(720)
	interestRate  = decimal.NewFromFloat(0.12) // 12% annual, nominal
)

// Compute settles the period described by in under the fiscal params p.
//
//	base       = salary + transport subsidy (when it applies)
//	cesantías  = base * days / 360
//	intereses  = cesantías * days * 0.12 / 360
//	prima      = base * days / 360
//	vacaciones = salary * days / 720   (gross salary: the subsidy never
//	                                    enters vacation accrual)
func Compute(p Params, in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	days := decimal.NewFromInt(int64(calendar.DaysBetweenInclusive(in.Start, in.End)))

	base := in.MonthlySalary
	if in.TransportSubsidy {
		base = base.Add(p.TransportSubsidy)
	}

	severance := base.Mul(days).Div(threeSixty)
	interest := severance.Mul(days).Mul(interestRate).Div(threeSixty)
	bonus := base.Mul(days).Div(threeSixty)
	vacation := in.MonthlySalary.Mul(days).Div(sevenTwenty)

	return Result{
		Days:              int(days.IntPart()),
		Severance:         severance,
		SeveranceInterest: interest,
		ServiceBonus:      bonus,
		VacationPay:       vacation,
		Total:             severance.Add(interest).Add(bonus).Add(vacation),
	}, nil
}
