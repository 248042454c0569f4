package staking

import "github.com/shopspring/decimal"

// divisionPrecision is the number of decimal places kept for cross rates
const divisionPrecision = 18

// exchangeRates prices denominations from oracle rates quoted against the native token
type exchangeRates struct {
	nativeDenom string
	currency    string
	rates       map[string]decimal.Decimal
}

// NewExchangeRatePrices builds a PriceLookup from oracle exchange rates.
// Each rate is the amount of its denom worth one unit of nativeDenom.
// Missing, unparsable or non-positive rates resolve nothing.
func NewExchangeRatePrices(nativeDenom, currency string, rates []Coin) PriceLookup {
	parsed := make(map[string]decimal.Decimal, len(rates))
	for _, r := range rates {
		rate, ok := parseDecimal(r.Amount)
		if !ok || !rate.IsPositive() {
			continue
		}
		parsed[r.Denom] = rate
	}

	return &exchangeRates{
		nativeDenom: nativeDenom,
		currency:    currency,
		rates:       parsed,
	}
}

// Price returns the price of one unit of denom in the display currency
func (e *exchangeRates) Price(denom string) (decimal.Decimal, bool) {
	if denom == e.currency {
		return decimal.NewFromInt(1), true
	}

	quote, ok := e.quote(e.currency)
	if !ok {
		return decimal.Decimal{}, false
	}
	if denom == e.nativeDenom {
		return quote, true
	}

	base, ok := e.rates[denom]
	if !ok {
		return decimal.Decimal{}, false
	}
	return quote.DivRound(base, divisionPrecision), true
}

func (e *exchangeRates) quote(denom string) (decimal.Decimal, bool) {
	if denom == e.nativeDenom {
		return decimal.NewFromInt(1), true
	}
	rate, ok := e.rates[denom]
	return rate, ok
}
