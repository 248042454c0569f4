// Package staking derives the personal staking summary of a delegator:
// delegated, unbonding and claimable totals, and whether rewards can be withdrawn.
//
// All amounts are decimal strings. The literal "0" means computed and zero,
// the literal "NaN" means the value could not be computed and must be treated
// as unknown. Nothing in this package returns an error or panics on bad input.
package staking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel amount values
const (
	Zero = "0"
	NaN  = "NaN"
)

// Delegation is stake actively bonded to a validator
type Delegation struct {
	ValidatorAddress string
	Amount           string
}

// Unbonding is stake in its release period after an undelegation
type Unbonding struct {
	ValidatorAddress string
	Amount           string
	ReleaseTime      time.Time
}

// Coin is an amount of a single token denomination
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// ValidatorRewards is the reward set accrued from one validator, unique per denom
type ValidatorRewards struct {
	ValidatorAddress string
	Reward           []Coin
}

// Total is the reduction of rewards across all validators and denominations.
// Sum is expressed in the display currency, List holds native summed amounts
// in first-encounter order.
type Total struct {
	Sum  string `json:"sum"`
	List []Coin `json:"list"`
}

// PriceLookup resolves the price of one unit of denom in the display currency
type PriceLookup interface {
	Price(denom string) (decimal.Decimal, bool)
}

// PriceFunc adapts an ordinary function to PriceLookup
type PriceFunc func(denom string) (decimal.Decimal, bool)

// Price calls f(denom)
func (f PriceFunc) Price(denom string) (decimal.Decimal, bool) {
	return f(denom)
}

// amount is a decimal that remembers whether it could be computed at all
type amount struct {
	value decimal.Decimal
	known bool
}

var zeroAmount = amount{value: decimal.Zero, known: true}

// maxExponent bounds the decimal exponent of a parsed amount. Chain amounts
// carry at most 18 fractional digits; larger exponents make arithmetic
// allocate digits proportional to the exponent.
const maxExponent = 64

func parseAmount(s string) amount {
	d, ok := parseDecimal(s)
	if !ok {
		return amount{}
	}
	return amount{value: d, known: true}
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Decimal{}, false
	}
	return d, true
}

func (a amount) add(b amount) amount {
	if !a.known || !b.known {
		return amount{}
	}
	return amount{value: a.value.Add(b.value), known: true}
}

func (a amount) isNonZero() bool {
	return a.known && !a.value.IsZero()
}

func (a amount) String() string {
	if !a.known {
		return NaN
	}
	return a.value.String()
}
