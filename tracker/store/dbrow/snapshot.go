package dbrow

import (
	"time"

	"github.com/screwyprof/stakeview/tracker"
)

// Coin is one element of the rewards JSONB column
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// Snapshot represents a staking snapshot as stored in the database
type Snapshot struct {
	Address          string    `db:"address"`
	DelegationTotal  string    `db:"delegation_total"`
	UnbondingTotal   string    `db:"unbonding_total"`
	NativeReward     string    `db:"native_reward"`
	RewardSum        string    `db:"reward_sum"`
	Rewards          []Coin    `db:"rewards"`
	WithdrawEligible bool      `db:"withdraw_eligible"`
	State            string    `db:"state"`
	Currency         string    `db:"currency"`
	Fingerprint      string    `db:"fingerprint"`
	RecordedAt       time.Time `db:"recorded_at"`
	// id and created_at are assigned by the database
}

// Columns lists the inserted columns in the order of Args
var Columns = []string{
	"address",
	"delegation_total",
	"unbonding_total",
	"native_reward",
	"reward_sum",
	"rewards",
	"withdraw_eligible",
	"state",
	"currency",
	"fingerprint",
	"recorded_at",
}

// FromSnapshot converts a tracker snapshot to its database row
func FromSnapshot(s tracker.Snapshot) Snapshot {
	rewards := make([]Coin, len(s.Summary.Rewards.List))
	for i, c := range s.Summary.Rewards.List {
		rewards[i] = Coin{Denom: c.Denom, Amount: c.Amount}
	}

	return Snapshot{
		Address:          s.Address,
		DelegationTotal:  s.Summary.DelegationTotal,
		UnbondingTotal:   s.Summary.UnbondingTotal,
		NativeReward:     s.Summary.NativeReward,
		RewardSum:        s.Summary.Rewards.Sum,
		Rewards:          rewards,
		WithdrawEligible: s.Summary.WithdrawEligible,
		State:            s.Summary.State.String(),
		Currency:         s.Currency,
		Fingerprint:      s.Fingerprint,
		RecordedAt:       s.RecordedAt.UTC(),
	}
}

// Args returns the row values in Columns order
func (r Snapshot) Args() []any {
	return []any{
		r.Address,
		r.DelegationTotal,
		r.UnbondingTotal,
		r.NativeReward,
		r.RewardSum,
		r.Rewards,
		r.WithdrawEligible,
		r.State,
		r.Currency,
		r.Fingerprint,
		r.RecordedAt,
	}
}
