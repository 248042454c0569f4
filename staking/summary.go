package staking

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// State selects what the staking panel shows
type State int

const (
	// StateNotStaked shows the onboarding empty state
	StateNotStaked State = iota
	// StateSummary shows the totals and the withdraw action
	StateSummary
)

func (s State) String() string {
	switch s {
	case StateSummary:
		return "summary"
	default:
		return "not_staked"
	}
}

// Input is one snapshot of everything the summary depends on
type Input struct {
	Delegations []Delegation
	Unbondings  []Unbonding
	Rewards     []ValidatorRewards
	Currency    string // display currency denom, e.g. uusd
	NativeDenom string // staking token denom, e.g. uluna
	Prices      PriceLookup
}

// Summary is the personal staking summary derived from an Input
type Summary struct {
	DelegationTotal  string
	UnbondingTotal   string
	NativeReward     string
	Rewards          Total
	WithdrawEligible bool
	HasActivity      bool
	ValueUnavailable bool // reward value could not be computed
	ShowUnbonding    bool
	State            State
	Withdraw         WithdrawRequest
}

// Summarize recomputes the summary from scratch. It is pure: the same
// input always yields the same summary.
func Summarize(in Input) Summary {
	delegationTotal := DelegationsTotal(in.Delegations)
	unbondingTotal := UnbondingsTotal(in.Unbondings)
	rewards := RewardsTotal(in.Rewards, in.Currency, in.Prices)
	nativeReward := NativeRewardAmount(rewards, in.NativeDenom)
	hasActivity := HasStakingActivity(delegationTotal, nativeReward, unbondingTotal)

	state := StateNotStaked
	if hasActivity {
		state = StateSummary
	}

	return Summary{
		DelegationTotal:  delegationTotal,
		UnbondingTotal:   unbondingTotal,
		NativeReward:     nativeReward,
		Rewards:          rewards,
		WithdrawEligible: IsWithdrawEligible(rewards),
		HasActivity:      hasActivity,
		ValueUnavailable: rewards.Sum == NaN,
		ShowUnbonding:    unbondingTotal != NaN,
		State:            state,
		Withdraw:         NewWithdrawRequest(rewards, in.Delegations),
	}
}

// Fingerprint is a stable digest of the computed values. Two summaries with
// equal fingerprints render identically.
func (s Summary) Fingerprint() string {
	h := sha256.New()
	write := func(v string) {
		_, _ = io.WriteString(h, v)
		_, _ = h.Write([]byte{0})
	}

	write(s.DelegationTotal)
	write(s.UnbondingTotal)
	write(s.Rewards.Sum)
	for _, c := range s.Rewards.List {
		write(c.Denom)
		write(c.Amount)
	}
	for _, v := range s.Withdraw.Validators {
		write(v)
	}

	return hex.EncodeToString(h.Sum(nil))
}
