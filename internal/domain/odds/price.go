package odds

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const pricePlaces = 6

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ToDecimal converts American odds to decimal odds. Zero has no price.
func ToDecimal(american int) (float64, bool) {
	if american == 0 {
		return 0, false
	}

	value := decimal.NewFromInt(int64(american))
	var out decimal.Decimal
	if american > 0 {
		out = value.Div(hundred).Add(one)
	} else {
		out = hundred.Div(value.Abs()).Add(one)
	}

	f, _ := out.Round(pricePlaces).Float64()
	return f, true
}

// ToDecimalPtr is ToDecimal for nullable prices.
func ToDecimalPtr(american *int) (float64, bool) {
	if american == nil {
		return 0, false
	}
	return ToDecimal(*american)
}

// ParseAmerican accepts numeric strings such as "+130", " -150 " or "120.0".
func ParseAmerican(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "+")
	if value == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(value); err == nil {
		return n, n != 0
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, false
	}
	n := int(d.IntPart())
	return n, n != 0
}

// DecimalFromString parses then converts; unparseable input has no price.
func DecimalFromString(raw string) (float64, bool) {
	american, ok := ParseAmerican(raw)
	if !ok {
		return 0, false
	}
	return ToDecimal(american)
}

// DecimalToAmerican converts decimal odds back to American odds.
// Values at or below 1 have no American equivalent.
func DecimalToAmerican(price float64) (int, bool) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 1 {
		return 0, false
	}

	d := decimal.NewFromFloat(price)
	profit := d.Sub(one)
	if price >= 2 {
		return int(profit.Mul(hundred).Round(0).IntPart()), true
	}
	return int(hundred.Neg().Div(profit).Round(0).IntPart()), true
}

// ImpliedProbability returns 1/price for a valid decimal price.
func ImpliedProbability(price float64) (float64, bool) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 1 {
		return 0, false
	}
	f, _ := one.Div(decimal.NewFromFloat(price)).Round(pricePlaces).Float64()
	return f, true
}
