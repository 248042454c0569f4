package dbrow

import (
	"time"

	"github.com/screwyprof/stakeview/staking"
	"github.com/screwyprof/stakeview/web/history"
)

// Snapshot represents a staking snapshot as queried from the database
type Snapshot struct {
	ID               int64          `db:"id"`
	Address          string         `db:"address"`
	DelegationTotal  string         `db:"delegation_total"`
	UnbondingTotal   string         `db:"unbonding_total"`
	NativeReward     string         `db:"native_reward"`
	RewardSum        string         `db:"reward_sum"`
	Rewards          []staking.Coin `db:"rewards"`
	WithdrawEligible bool           `db:"withdraw_eligible"`
	State            string         `db:"state"`
	Currency         string         `db:"currency"`
	RecordedAt       time.Time      `db:"recorded_at"`
}

// ToHistory converts the row to the history domain model
func (r Snapshot) ToHistory() history.Snapshot {
	rewards := r.Rewards
	if rewards == nil {
		rewards = []staking.Coin{}
	}

	return history.Snapshot{
		ID:               r.ID,
		Address:          r.Address,
		DelegationTotal:  r.DelegationTotal,
		UnbondingTotal:   r.UnbondingTotal,
		NativeReward:     r.NativeReward,
		Rewards:          staking.Total{Sum: r.RewardSum, List: rewards},
		WithdrawEligible: r.WithdrawEligible,
		State:            r.State,
		Currency:         r.Currency,
		RecordedAt:       r.RecordedAt,
	}
}
