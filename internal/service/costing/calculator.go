package costing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"steel-estimator/internal/service/pricing"
	"steel-estimator/internal/service/stock"
	"steel-estimator/internal/storage"
)

var (
	ErrNestedChildMaterial = errors.New("child materials cannot have children")
	ErrInvalidMaterial     = errors.New("negative pieces or length")
)

// ProjectTotals is the project rollup and the per-item tax breakdown.
type ProjectTotals struct {
	ProjectID      int64                `json:"project_id"`
	MaterialCost   float64              `json:"material_cost"`
	MaterialMarkup float64              `json:"material_markup"`
	FabCost        float64              `json:"fab_cost"`
	FabMarkup      float64              `json:"fab_markup"`
	RecapTotal     float64              `json:"recap_total"`
	Tax            float64              `json:"tax"`
	Adjustments    float64              `json:"adjustments"`
	GrandTotal     float64              `json:"grand_total"`
	TotalWeight    float64              `json:"total_weight"`
	Items          []storage.ItemTotals `json:"items"`
}

// Calculator runs the material, item and project cost cascade.
type Calculator struct {
	weights   map[string]float64
	optimizer *stock.Optimizer
	taxRate   float64
}

func NewCalculator(weights map[string]float64, optimizer *stock.Optimizer, taxRate float64) *Calculator {
	return &Calculator{weights: weights, optimizer: optimizer, taxRate: taxRate}
}

// Estimate fills the computed fields of every material in place and returns the
// totals. Sums are taken over the already rounded line figures.
func (c *Calculator) Estimate(est *storage.Estimate) (*ProjectTotals, error) {
	const op = "costing.Calculator.Estimate"

	t := &ProjectTotals{ProjectID: est.ProjectID}

	for _, it := range est.Items {
		it.ProjectID = est.ProjectID

		itemTotals, err := c.Item(it)
		if err != nil {
			return nil, fmt.Errorf("%s: item %s: %w", op, it.ItemNumber, err)
		}

		t.MaterialCost += itemTotals.MaterialCost
		t.MaterialMarkup += itemTotals.MaterialMarkup
		t.FabCost += itemTotals.FabCost
		t.FabMarkup += itemTotals.FabMarkup
		t.RecapTotal += itemTotals.RecapTotal
		t.Tax += itemTotals.Tax
		t.TotalWeight += itemTotals.TotalWeight
		t.Items = append(t.Items, itemTotals)
	}

	for _, a := range est.Adjustments {
		t.Adjustments += a.Amount
	}

	t.GrandTotal = t.MaterialCost + t.MaterialMarkup + t.FabCost + t.FabMarkup +
		t.RecapTotal + t.Tax + t.Adjustments

	return t, nil
}

// Item computes every material of the item and its totals.
func (c *Calculator) Item(it *storage.Item) (storage.ItemTotals, error) {
	t := storage.ItemTotals{ItemID: it.ID, ItemNumber: it.ItemNumber}

	for _, m := range it.Materials {
		if err := c.Material(m); err != nil {
			return storage.ItemTotals{}, fmt.Errorf("material %s: %w", m.Mark, err)
		}
		t.MaterialCost += m.MaterialCost
		t.FabCost += m.FabCost
		t.TotalWeight += m.FabWeight

		for _, child := range m.Children {
			if len(child.Children) > 0 {
				return storage.ItemTotals{}, fmt.Errorf("material %s: %w", child.Mark, ErrNestedChildMaterial)
			}
			if err := c.Material(child); err != nil {
				return storage.ItemTotals{}, fmt.Errorf("material %s: %w", child.Mark, err)
			}
			t.MaterialCost += child.MaterialCost
			t.FabCost += child.FabCost
			t.TotalWeight += child.FabWeight
		}
	}

	fab := decimal.NewFromFloat(t.FabCost)
	for i := range it.GeneralOps {
		o := &it.GeneralOps[i]
		o.TotalCost = pricing.LineCost(o.Quantity, o.Rate)
		fab = fab.Add(decimal.NewFromFloat(o.TotalCost))
	}
	t.FabCost = roundBid(fab)

	t.MaterialMarkup = roundBid(percentOf(t.MaterialCost, it.MaterialMarkupPercent))
	t.FabMarkup = roundBid(percentOf(t.FabCost, it.FabMarkupPercent))
	t.RecapTotal = roundBid(RecapTotal(it.Recap))

	t.TaxableBase = TaxableBase(it.TaxCategory, t.MaterialCost, t.MaterialMarkup, t.FabCost, t.FabMarkup)
	t.Tax = RoundBidProduct(t.TaxableBase, c.taxRate)

	t.Total = t.MaterialCost + t.MaterialMarkup + t.FabCost + t.FabMarkup + t.RecapTotal + t.Tax

	return t, nil
}

// Material fills weight, stock and cost fields. Children are not visited.
func (c *Calculator) Material(m *storage.Material) error {
	if m.Pieces < 0 || m.Length < 0 {
		return ErrInvalidMaterial
	}

	m.WeightPerFoot, _ = WeightPerFoot(m, c.weights)
	m.TotalLength = float64(m.Pieces) * m.Length

	pieces := float64(m.Pieces)

	connWeight := decimal.Zero
	for _, o := range m.FabOperations {
		if o.ConnectionWeight != nil {
			connWeight = connWeight.Add(product(*o.ConnectionWeight, o.Quantity, pieces))
		}
	}
	m.FabWeight = roundBid(product(pieces, m.Length, m.WeightPerFoot).Add(connWeight))

	c.selectStock(m)
	m.StockWeight = RoundBidProduct(float64(m.StocksRequired), m.StockLength, m.WeightPerFoot)

	switch m.PriceBasis {
	case storage.BasisLength:
		m.MaterialCost = RoundBidProduct(float64(m.StocksRequired), m.StockLength, m.UnitPrice)
	case storage.BasisPiece:
		m.MaterialCost = RoundBidProduct(pieces, m.UnitPrice)
	default:
		m.MaterialCost = RoundBidProduct(m.StockWeight, m.UnitPrice)
	}

	m.FabCost = roundBid(FabCost(m.FabOperations, m.Pieces))

	return nil
}

// selectStock honours a manual stock length while it is still a standard
// length for the category, otherwise runs the optimizer. Custom materials are
// bought as they are, and so are pieces longer than every standard length,
// flagged StockUnavailable.
func (c *Calculator) selectStock(m *storage.Material) {
	m.StockLengthOverridden = false
	m.StockUnavailable = false

	if m.Category == storage.CategoryCustom {
		m.StockLength = m.Length
		m.StocksRequired = m.Pieces
		m.Waste = 0
		m.Efficiency = 0
		if m.Pieces > 0 && m.Length > 0 {
			m.Efficiency = 1
		}
		return
	}

	var res stock.Result
	if m.StockLengthOverride != nil && c.optimizer.Valid(m.Category, *m.StockLengthOverride, m.Length) {
		res = stock.Optimal(m.Pieces, m.Length, []float64{*m.StockLengthOverride})
		m.StockLengthOverridden = true
	} else {
		res = c.optimizer.ForCategory(m.Category, m.Pieces, m.Length)
	}

	if res.StocksRequired == 0 && m.Pieces > 0 && m.Length > 0 {
		res = stock.Result{Length: m.Length, StocksRequired: m.Pieces, Efficiency: 1, PiecesPerStock: 1}
		m.StockUnavailable = true
	}

	m.StockLength = res.Length
	m.StocksRequired = res.StocksRequired
	m.Waste = res.Waste
	m.Efficiency = res.Efficiency
}

// FabCost sums operation costs. Each-unit operations are per piece; weight and
// lot operations already carry their full quantity.
func FabCost(ops []storage.FabOperation, pieces int) decimal.Decimal {
	total := decimal.Zero
	for i := range ops {
		o := &ops[i]
		o.TotalCost = pricing.LineCost(o.Quantity, o.Rate)
		if o.Unit == storage.UnitEach || o.Unit == "" {
			total = total.Add(product(o.TotalCost, float64(pieces)))
		} else {
			total = total.Add(decimal.NewFromFloat(o.TotalCost))
		}
	}
	return total
}

// RecapTotal sums the recap columns with their own markups. A column with hours
// is priced as hours x rate.
func RecapTotal(recap []storage.RecapCost) decimal.Decimal {
	total := decimal.Zero
	for _, r := range recap {
		base := decimal.NewFromFloat(r.Cost)
		if r.Hours > 0 {
			base = product(r.Hours, r.Rate)
		}
		total = total.Add(base).Add(base.Mul(decimal.NewFromFloat(r.MarkupPercent)).Div(hundred))
	}
	return total
}

// TaxableBase selects what a tax category taxes. Recap costs are never taxed.
func TaxableBase(cat storage.TaxCategory, material, materialMarkup, fab, fabMarkup float64) float64 {
	switch cat {
	case storage.TaxNewConstruction:
		return material + materialMarkup
	case storage.TaxFOB:
		return material + materialMarkup + fab + fabMarkup
	}
	return 0
}
