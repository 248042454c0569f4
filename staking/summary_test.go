package staking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/stakeview/staking"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("it summarises a delegator with a priced native reward", func(t *testing.T) {
		t.Parallel()

		// Arrange
		in := staking.Input{
			Delegations: []staking.Delegation{delegation("v1", "1000000")},
			Rewards:     []staking.ValidatorRewards{validatorRewards("v1", coin("uluna", "500"))},
			Currency:    "uusd",
			NativeDenom: "uluna",
			Prices:      fixedPrices(map[string]string{"uluna": "1"}),
		}

		// Act
		summary := staking.Summarize(in)

		// Assert
		assert.Equal(t, "1000000", summary.DelegationTotal)
		assert.Equal(t, staking.Zero, summary.UnbondingTotal)
		assert.Equal(t, "500", summary.NativeReward)
		assert.Equal(t, "500", summary.Rewards.Sum)
		assert.True(t, summary.WithdrawEligible)
		assert.True(t, summary.HasActivity)
		assert.False(t, summary.ValueUnavailable)
		assert.Equal(t, staking.StateSummary, summary.State)
		assert.Equal(t, staking.WithdrawRequest{
			Amounts:    []staking.Coin{coin("uluna", "500")},
			Validators: []string{"v1"},
		}, summary.Withdraw)
	})

	t.Run("it shows the empty state when nothing is staked", func(t *testing.T) {
		t.Parallel()

		// Arrange
		in := staking.Input{Currency: "uusd", NativeDenom: "uluna"}

		// Act
		summary := staking.Summarize(in)

		// Assert
		assert.Equal(t, staking.Zero, summary.DelegationTotal)
		assert.Equal(t, staking.Zero, summary.UnbondingTotal)
		assert.Equal(t, staking.Zero, summary.Rewards.Sum)
		assert.False(t, summary.HasActivity)
		assert.False(t, summary.WithdrawEligible)
		assert.Equal(t, staking.StateNotStaked, summary.State)
	})

	t.Run("it disables withdrawal when the reward value is unknown", func(t *testing.T) {
		t.Parallel()

		// Arrange
		in := staking.Input{
			Rewards:     []staking.ValidatorRewards{validatorRewards("v1", coin("uluna", "500"))},
			Currency:    "uusd",
			NativeDenom: "uluna",
		}

		// Act
		summary := staking.Summarize(in)

		// Assert
		assert.Equal(t, []staking.Coin{coin("uluna", "500")}, summary.Rewards.List)
		assert.Equal(t, staking.NaN, summary.Rewards.Sum)
		assert.False(t, summary.WithdrawEligible)
		assert.True(t, summary.ValueUnavailable)
		assert.True(t, summary.HasActivity, "the native reward itself is still known")
	})

	t.Run("it hides the unbonding line when the unbonding total is unknown", func(t *testing.T) {
		t.Parallel()

		// Arrange
		in := staking.Input{
			Unbondings:  []staking.Unbonding{{ValidatorAddress: "v1", Amount: "oops"}},
			Currency:    "uusd",
			NativeDenom: "uluna",
		}

		// Act
		summary := staking.Summarize(in)

		// Assert
		assert.Equal(t, staking.NaN, summary.UnbondingTotal)
		assert.False(t, summary.ShowUnbonding)
		assert.False(t, summary.HasActivity)
		assert.Equal(t, staking.StateNotStaked, summary.State)
	})

	t.Run("it is referentially transparent", func(t *testing.T) {
		t.Parallel()

		// Arrange
		in := staking.Input{
			Delegations: []staking.Delegation{delegation("v1", "10"), delegation("v2", "20")},
			Unbondings:  []staking.Unbonding{{ValidatorAddress: "v1", Amount: "5"}},
			Rewards: []staking.ValidatorRewards{
				validatorRewards("v1", coin("uluna", "1"), coin("ukrw", "7")),
			},
			Currency:    "uusd",
			NativeDenom: "uluna",
			Prices:      fixedPrices(map[string]string{"uluna": "2", "ukrw": "0.1"}),
		}

		// Act
		first := staking.Summarize(in)
		second := staking.Summarize(in)

		// Assert
		assert.Equal(t, first, second)
		assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	})
}

func TestSummary_Fingerprint(t *testing.T) {
	t.Parallel()

	base := staking.Input{
		Delegations: []staking.Delegation{delegation("v1", "1000000")},
		Rewards:     []staking.ValidatorRewards{validatorRewards("v1", coin("uluna", "500"))},
		Currency:    "uusd",
		NativeDenom: "uluna",
		Prices:      fixedPrices(map[string]string{"uluna": "1"}),
	}

	t.Run("it changes when a reward changes", func(t *testing.T) {
		t.Parallel()

		// Arrange
		changed := base
		changed.Rewards = []staking.ValidatorRewards{validatorRewards("v1", coin("uluna", "501"))}

		// Act & Assert
		assert.NotEqual(t, staking.Summarize(base).Fingerprint(), staking.Summarize(changed).Fingerprint())
	})

	t.Run("it changes when a delegation moves to another validator", func(t *testing.T) {
		t.Parallel()

		// Arrange
		changed := base
		changed.Delegations = []staking.Delegation{delegation("v2", "1000000")}

		// Act & Assert
		assert.NotEqual(t, staking.Summarize(base).Fingerprint(), staking.Summarize(changed).Fingerprint())
	})

	t.Run("it is a hex sha256 digest", func(t *testing.T) {
		t.Parallel()

		// Act
		fp := staking.Summarize(base).Fingerprint()

		// Assert
		assert.Len(t, fp, 64)
	})
}

func TestPlanWithdraw(t *testing.T) {
	t.Parallel()

	t.Run("it returns the request when eligible", func(t *testing.T) {
		t.Parallel()

		// Arrange
		summary := staking.Summarize(staking.Input{
			Delegations: []staking.Delegation{delegation("v1", "1"), delegation("v2", "1"), delegation("v1", "2")},
			Rewards: []staking.ValidatorRewards{
				validatorRewards("v1", coin("uluna", "3"), coin("ukrw", "0")),
			},
			Currency:    "uluna",
			NativeDenom: "uluna",
		})

		// Act
		req, err := staking.PlanWithdraw(summary)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []staking.Coin{coin("uluna", "3")}, req.Amounts, "zero amounts are dropped")
		assert.Equal(t, []string{"v1", "v2"}, req.Validators, "validators are de-duplicated in order")
	})

	t.Run("it refuses when the reward value is zero or unknown", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name  string
			input staking.Input
		}{
			{
				name:  "zero",
				input: staking.Input{Currency: "uusd", NativeDenom: "uluna"},
			},
			{
				name: "unknown",
				input: staking.Input{
					Rewards:     []staking.ValidatorRewards{validatorRewards("v1", coin("uluna", "5"))},
					Currency:    "uusd",
					NativeDenom: "uluna",
				},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				// Act
				req, err := staking.PlanWithdraw(staking.Summarize(tc.input))

				// Assert
				assert.ErrorIs(t, err, staking.ErrWithdrawNotEligible)
				assert.Equal(t, staking.WithdrawRequest{}, req)
			})
		}
	})
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "summary", staking.StateSummary.String())
	assert.Equal(t, "not_staked", staking.StateNotStaked.String())
}
