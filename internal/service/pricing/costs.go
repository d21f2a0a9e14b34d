package pricing

import (
	"github.com/shopspring/decimal"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/storage"
)

// OperationRate returns the rate for a named operation from a resolved row and
// the connection weight for connection operations. ok is false for operations
// the pricing store does not price.
func OperationRate(res *Resolved, name string, laborRate float64) (rate, connWeight *float64, ok bool) {
	if res == nil || res.Row == nil {
		return nil, nil, false
	}
	row := res.Row

	switch name {
	case constants.OpCutStraight:
		return row.CutStraight, nil, true
	case constants.OpCutMiter:
		return row.CutMiter, nil, true
	case constants.OpCutBevel:
		return row.CutBevel, nil, true
	case constants.OpCutCope:
		return row.CutCope, nil, true
	case constants.OpCutDoubleCope:
		return row.CutDoubleCope, nil, true
	case constants.OpConnStandardWF, constants.OpConnStandardC:
		return connectionCost(res, row.StandardConnCost, standardHours, laborRate), row.StandardConnWeight, true
	case constants.OpConnMomentWF, constants.OpConnMomentC:
		return connectionCost(res, row.MomentConnCost, momentHours, laborRate), row.MomentConnWeight, true
	}

	return nil, nil, false
}

func standardHours(r *storage.PricingRow) *float64 { return r.StandardConnHours }
func momentHours(r *storage.PricingRow) *float64   { return r.MomentConnHours }

// connectionCost: explicit dollar field, else nothing when the row is flagged
// for a manual takeoff cost, else labor hours x shop rate to the cent.
func connectionCost(res *Resolved, explicit *float64, hours func(*storage.PricingRow) *float64, laborRate float64) *float64 {
	if explicit != nil {
		return explicit
	}
	if res.Row.ProvidesTakeoffCost {
		return nil
	}

	h := hours(res.Row)
	if h == nil && res.Parent != nil {
		h = hours(&res.Parent.PricingRow)
	}
	if h == nil {
		return nil
	}

	cost := decimal.NewFromFloat(*h).Mul(decimal.NewFromFloat(laborRate)).Round(2).InexactFloat64()
	return &cost
}

// LineCost is quantity x rate rounded to the cent; zero while the rate is unset.
func LineCost(quantity float64, rate *float64) float64 {
	if rate == nil {
		return 0
	}
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(*rate)).Round(2).InexactFloat64()
}
