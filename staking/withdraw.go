package staking

import "errors"

// ErrWithdrawNotEligible is returned when there is no known positive reward to withdraw
var ErrWithdrawNotEligible = errors.New("rewards are not eligible for withdrawal")

// WithdrawRequest is what the withdraw executor needs to claim all rewards
type WithdrawRequest struct {
	Amounts    []Coin   `json:"amounts"`
	Validators []string `json:"validators"`
}

// NewWithdrawRequest sizes a withdrawal from the reward total. Zero and
// unknown amounts are left out; validators keep delegation order without repeats.
func NewWithdrawRequest(total Total, delegations []Delegation) WithdrawRequest {
	amounts := make([]Coin, 0, len(total.List))
	for _, c := range total.List {
		if parseAmount(c.Amount).isNonZero() {
			amounts = append(amounts, c)
		}
	}

	seen := make(map[string]struct{}, len(delegations))
	validators := make([]string, 0, len(delegations))
	for _, d := range delegations {
		if _, ok := seen[d.ValidatorAddress]; ok {
			continue
		}
		seen[d.ValidatorAddress] = struct{}{}
		validators = append(validators, d.ValidatorAddress)
	}

	return WithdrawRequest{
		Amounts:    amounts,
		Validators: validators,
	}
}

// PlanWithdraw returns the withdraw request of a summary, or
// ErrWithdrawNotEligible when the withdraw action must stay disabled.
func PlanWithdraw(s Summary) (WithdrawRequest, error) {
	if !s.WithdrawEligible {
		return WithdrawRequest{}, ErrWithdrawNotEligible
	}
	return s.Withdraw, nil
}
