package settlement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toga/practice-engine/settlement"
)

func TestComputeIndexedValue_IdentityWhenIndicesEqual(t *testing.T) {
	got, err := settlement.ComputeIndexedValue(settlement.IndexationInput{
		Principal:    cop(100),
		IndexInitial: cop(100),
		IndexFinal:   cop(100),
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(cop(100)), "got %s", got)
}

func TestComputeIndexedValue_ScalesByIndexRatio(t *testing.T) {
	// 10,000,000 brought from IPC 100 to IPC 145.2.
	got, err := settlement.ComputeIndexedValue(settlement.IndexationInput{
		Principal:    cop(10_000_000),
		IndexInitial: cop(100),
		IndexFinal:   decimal.NewFromFloat(145.2),
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(14_520_000)), "got %s", got)
}

func TestComputeIndexedValue_RejectsNonPositiveIndices(t *testing.T) {
	cases := []struct {
		name    string
		initial decimal.Decimal
		final   decimal.Decimal
	}{
		{"zero initial", decimal.Zero, cop(120)},
		{"negative initial", cop(-5), cop(120)},
		{"zero final", cop(100), decimal.Zero},
		{"negative final", cop(100), cop(-120)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := settlement.ComputeIndexedValue(settlement.IndexationInput{
				Principal:    cop(100),
				IndexInitial: tc.initial,
				IndexFinal:   tc.final,
			})
			assert.ErrorIs(t, err, settlement.ErrInvalidIndex)
		})
	}
}
