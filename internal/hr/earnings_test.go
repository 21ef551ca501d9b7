package hr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateEarnings(t *testing.T) {
	works := []CompletedWork{
		{OperationName: "kol takma", StandardMinutes: 4, Quantity: 50},  // 200 dk
		{OperationName: "yaka takma", StandardMinutes: 6, Quantity: 48}, // 288 dk
		{OperationName: "etek baskı", StandardMinutes: 2.5, Quantity: 40}, // 100 dk
	}

	result := CalculateEarnings(works, 0.75)

	require.Equal(t, 3, result.OperationCount)
	require.InDelta(t, 588.0, result.TotalMinutes, 0.001)
	require.InDelta(t, 441.0, result.TotalEarnings, 0.001)
}

func TestCalculateEarningsEmpty(t *testing.T) {
	result := CalculateEarnings(nil, 0.75)

	require.Equal(t, 0, result.OperationCount)
	require.Equal(t, 0.0, result.TotalMinutes)
	require.Equal(t, 0.0, result.TotalEarnings)
}

func TestCalculateEarningsZeroRate(t *testing.T) {
	works := []CompletedWork{
		{OperationName: "kol takma", StandardMinutes: 4, Quantity: 50},
	}

	result := CalculateEarnings(works, 0)

	require.Equal(t, 200.0, result.TotalMinutes)
	require.Equal(t, 0.0, result.TotalEarnings)
}
