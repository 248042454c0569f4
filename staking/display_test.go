package staking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screwyprof/stakeview/staking"
)

func TestDisplay(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		coin     staking.Coin
		expected staking.DisplayAmount
	}{
		{
			name:     "whole luna",
			coin:     coin("uluna", "1000000"),
			expected: staking.DisplayAmount{Value: "1.000000", Unit: "Luna"},
		},
		{
			name:     "sub-unit reward",
			coin:     coin("uluna", "500"),
			expected: staking.DisplayAmount{Value: "0.000500", Unit: "Luna"},
		},
		{
			name:     "fractional micro amount is truncated",
			coin:     coin("uluna", "1234567.9"),
			expected: staking.DisplayAmount{Value: "1.234567", Unit: "Luna"},
		},
		{
			name:     "terra usd",
			coin:     coin("uusd", "2500000"),
			expected: staking.DisplayAmount{Value: "2.500000", Unit: "UST"},
		},
		{
			name:     "terra krw",
			coin:     coin("ukrw", "0"),
			expected: staking.DisplayAmount{Value: "0.000000", Unit: "KRT"},
		},
		{
			name:     "unknown amount",
			coin:     coin("uluna", staking.NaN),
			expected: staking.DisplayAmount{Value: staking.NaN, Unit: "Luna"},
		},
		{
			name:     "ibc denom passes through",
			coin:     coin("ibc/27394FB092D2ECCD", "12.5"),
			expected: staking.DisplayAmount{Value: "12.5", Unit: "ibc/27394FB092D2ECCD"},
		},
		{
			name:     "extreme negative exponent is unknown",
			coin:     coin("uluna", "1e-2147483647"),
			expected: staking.DisplayAmount{Value: staking.NaN, Unit: "Luna"},
		},
		{
			name:     "extreme positive exponent is unknown",
			coin:     coin("uluna", "1e2000000000"),
			expected: staking.DisplayAmount{Value: staking.NaN, Unit: "Luna"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Act
			result := staking.Display(tc.coin)

			// Assert
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestUnitLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		denom    string
		expected string
	}{
		{denom: "uluna", expected: "Luna"},
		{denom: "uusd", expected: "UST"},
		{denom: "ueur", expected: "EUT"},
		{denom: "usdr", expected: "SDT"},
		{denom: "uatom", expected: "ATOM"},
		{denom: "aevmos", expected: "aevmos"},
		{denom: "u", expected: "u"},
	}

	for _, tc := range testCases {
		t.Run(tc.denom, func(t *testing.T) {
			t.Parallel()

			// Act & Assert
			assert.Equal(t, tc.expected, staking.UnitLabel(tc.denom))
		})
	}
}
