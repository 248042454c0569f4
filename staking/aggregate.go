package staking

// DelegationsTotal sums the delegated amounts. An empty input yields "0",
// an unparsable amount turns the whole total into "NaN".
func DelegationsTotal(delegations []Delegation) string {
	total := zeroAmount
	for _, d := range delegations {
		total = total.add(parseAmount(d.Amount))
	}
	return total.String()
}

// UnbondingsTotal sums the amounts still in their release period
func UnbondingsTotal(unbondings []Unbonding) string {
	total := zeroAmount
	for _, u := range unbondings {
		total = total.add(parseAmount(u.Amount))
	}
	return total.String()
}

// RewardsTotal sums rewards per denomination across all validators and values
// them in currency. A denomination with a non-zero sum and no resolvable
// price makes Sum "NaN"; List is populated either way.
func RewardsTotal(rewards []ValidatorRewards, currency string, prices PriceLookup) Total {
	sums := make(map[string]amount)
	var order []string

	for _, vr := range rewards {
		for _, c := range vr.Reward {
			sum, seen := sums[c.Denom]
			if !seen {
				order = append(order, c.Denom)
				sum = zeroAmount
			}
			sums[c.Denom] = sum.add(parseAmount(c.Amount))
		}
	}

	list := make([]Coin, 0, len(order))
	value := zeroAmount
	for _, denom := range order {
		native := sums[denom]
		list = append(list, Coin{Denom: denom, Amount: native.String()})
		value = value.add(valueIn(native, denom, currency, prices))
	}

	return Total{Sum: value.String(), List: list}
}

// valueIn converts a native amount of denom into currency
func valueIn(a amount, denom, currency string, prices PriceLookup) amount {
	if !a.known || a.value.IsZero() {
		return a
	}
	if denom == currency {
		return a
	}
	if prices == nil {
		return amount{}
	}

	price, ok := prices.Price(denom)
	if !ok {
		return amount{}
	}
	return amount{value: a.value.Mul(price), known: true}
}

// NativeRewardAmount returns the summed reward of nativeDenom, or "0" when
// the total holds no such entry.
func NativeRewardAmount(total Total, nativeDenom string) string {
	for _, c := range total.List {
		if c.Denom == nativeDenom {
			return c.Amount
		}
	}
	return Zero
}

// IsWithdrawEligible reports whether the reward value is known and positive
func IsWithdrawEligible(total Total) bool {
	sum := parseAmount(total.Sum)
	return sum.known && sum.value.IsPositive()
}

// HasStakingActivity reports whether there is anything to summarise.
// "NaN" counts as absent for every argument.
func HasStakingActivity(delegationTotal, nativeReward, unbondingTotal string) bool {
	return parseAmount(delegationTotal).isNonZero() ||
		parseAmount(nativeReward).isNonZero() ||
		parseAmount(unbondingTotal).isNonZero()
}
