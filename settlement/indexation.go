/*
indexation.go - IPC monetary indexation

PURPOSE:
  Brings a historical amount to present value using two readings of the
  consumer price index (IPC, published by DANE):

      VP = VH * (IPC final / IPC inicial)

  The raw decimal result is exact; display rounding belongs to callers.
*/
package settlement

import "github.com/shopspring/decimal"

// IndexationInput holds the principal and the two IPC readings.
type IndexationInput struct {
	Principal    decimal.Decimal
	IndexInitial decimal.Decimal
	IndexFinal   decimal.Decimal
}

// ComputeIndexedValue rescales the principal by the ratio of the two
// index readings. Both readings must be positive: a zero or negative
// initial index is rejected with ErrInvalidIndex instead of being fed
// into the division.
func ComputeIndexedValue(in IndexationInput) (decimal.Decimal, error) {
	if !in.IndexInitial.IsPositive() {
		return decimal.Zero, ErrInvalidIndex
	}
	if !in.IndexFinal.IsPositive() {
		return decimal.Zero, ErrInvalidIndex
	}
	return in.Principal.Mul(in.IndexFinal).Div(in.IndexInitial), nil
}
