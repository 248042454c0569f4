package staking

import "strings"

// microDecimals is the exponent of micro denominations such as uluna
const microDecimals = 6

// DisplayAmount is a coin prepared for presentation
type DisplayAmount struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// Display converts a coin into a human readable value and unit label.
// Micro denominations are scaled down and truncated to six decimal places,
// other denominations keep their raw amount.
func Display(c Coin) DisplayAmount {
	unit := UnitLabel(c.Denom)

	a := parseAmount(c.Amount)
	if !a.known {
		return DisplayAmount{Value: NaN, Unit: unit}
	}

	if !isMicroDenom(c.Denom) {
		return DisplayAmount{Value: a.value.String(), Unit: unit}
	}

	value := a.value.Shift(-microDecimals).Truncate(microDecimals)
	return DisplayAmount{Value: value.StringFixed(microDecimals), Unit: unit}
}

// UnitLabel returns the display unit of a denomination:
// uluna is Luna, three letter micro fiat denoms map to their stablecoin
// ticker (uusd is UST, ukrw is KRT), anything else is upper-cased.
func UnitLabel(denom string) string {
	if !isMicroDenom(denom) {
		return denom
	}

	unit := denom[1:]
	switch {
	case unit == "luna":
		return "Luna"
	case len(unit) == 3:
		return strings.ToUpper(unit[:2]) + "T"
	default:
		return strings.ToUpper(unit)
	}
}

func isMicroDenom(denom string) bool {
	if len(denom) < 2 || denom[0] != 'u' {
		return false
	}
	for _, r := range denom[1:] {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
