package summary

import (
	"github.com/screwyprof/stakeview/pkg/lcd"
	"github.com/screwyprof/stakeview/staking"
)

// toDelegations converts LCD delegations to staking records
func toDelegations(in []lcd.Delegation) []staking.Delegation {
	out := make([]staking.Delegation, len(in))
	for i, d := range in {
		out[i] = staking.Delegation{
			ValidatorAddress: d.Delegation.ValidatorAddress,
			Amount:           d.Balance.Amount,
		}
	}
	return out
}

// toUnbondings flattens unbonding entries, one record per entry
func toUnbondings(in []lcd.UnbondingDelegation) []staking.Unbonding {
	var out []staking.Unbonding
	for _, u := range in {
		for _, e := range u.Entries {
			out = append(out, staking.Unbonding{
				ValidatorAddress: u.ValidatorAddress,
				Amount:           e.Balance,
				ReleaseTime:      e.CompletionTime,
			})
		}
	}
	return out
}

func toRewards(in []lcd.DelegatorReward) []staking.ValidatorRewards {
	out := make([]staking.ValidatorRewards, len(in))
	for i, r := range in {
		out[i] = staking.ValidatorRewards{
			ValidatorAddress: r.ValidatorAddress,
			Reward:           toCoins(r.Reward),
		}
	}
	return out
}

func toCoins(in []lcd.DecCoin) []staking.Coin {
	out := make([]staking.Coin, len(in))
	for i, c := range in {
		out[i] = staking.Coin{Denom: c.Denom, Amount: c.Amount}
	}
	return out
}
