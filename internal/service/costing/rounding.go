package costing

import "github.com/shopspring/decimal"

var (
	roundDownLimit = decimal.RequireFromString("0.29")
	hundred        = decimal.NewFromInt(100)
)

// RoundBid rounds to a whole number: down when the fraction is 0.29 or less,
// up otherwise. Used for every displayed weight and money figure.
func RoundBid(v float64) float64 {
	return roundBid(decimal.NewFromFloat(v))
}

// RoundBidProduct multiplies the factors in decimal before rounding, so
// 1652 x 0.0825 is 136.29 and not 136.29000000000002.
func RoundBidProduct(factors ...float64) float64 {
	return roundBid(product(factors...))
}

func roundBid(d decimal.Decimal) float64 {
	whole := d.Floor()

	if d.Sub(whole).LessThanOrEqual(roundDownLimit) {
		return whole.InexactFloat64()
	}
	return whole.Add(decimal.NewFromInt(1)).InexactFloat64()
}

func product(factors ...float64) decimal.Decimal {
	p := decimal.NewFromInt(1)
	for _, f := range factors {
		p = p.Mul(decimal.NewFromFloat(f))
	}
	return p
}

// percentOf is v x pct / 100 in decimal.
func percentOf(v, pct float64) decimal.Decimal {
	return product(v, pct).Div(hundred)
}
