// Package stock picks the mill length to buy for a run of identical pieces.
package stock

import (
	"math"

	"steel-estimator/internal/constants"
)

// eps absorbs float noise in stockLength / pieceLength (e.g. 20 / (20/3)).
const eps = 1e-9

type Result struct {
	Length         float64 `json:"length"`
	StocksRequired int     `json:"stocks_required"`
	Waste          float64 `json:"waste"`
	Efficiency     float64 `json:"efficiency"`
	PiecesPerStock int     `json:"pieces_per_stock"`
}

// Optimal returns the stock length with the least waste for pieces cut at
// pieceLength, ties going to fewer stocks. Non-positive input, or a piece longer
// than every stock length, yields the zero Result.
func Optimal(pieces int, pieceLength float64, lengths []float64) Result {
	if pieces <= 0 || pieceLength <= 0 {
		return Result{}
	}

	var (
		best  Result
		found bool
	)

	for _, l := range lengths {
		if l+eps < pieceLength {
			continue
		}

		perStock := int(math.Floor(l/pieceLength + eps))
		if perStock == 0 {
			continue
		}

		stocks := (pieces + perStock - 1) / perStock
		waste := float64(stocks)*l - float64(pieces)*pieceLength
		if waste < 0 {
			waste = 0
		}

		c := Result{
			Length:         l,
			StocksRequired: stocks,
			Waste:          waste,
			Efficiency:     float64(pieces) * pieceLength / (float64(stocks) * l),
			PiecesPerStock: perStock,
		}

		if !found || c.Waste < best.Waste-eps ||
			(math.Abs(c.Waste-best.Waste) <= eps && c.StocksRequired < best.StocksRequired) {
			best = c
			found = true
		}
	}

	return best
}

// Optimizer binds the optimizer to a stock-length catalog.
type Optimizer struct {
	catalog *constants.StockCatalog
}

func NewOptimizer(catalog *constants.StockCatalog) *Optimizer {
	return &Optimizer{catalog: catalog}
}

func (o *Optimizer) ForCategory(category string, pieces int, pieceLength float64) Result {
	return Optimal(pieces, pieceLength, o.catalog.Lengths(category))
}

// Valid reports whether a manually chosen stock length is a standard length for
// the category and can hold at least one piece.
func (o *Optimizer) Valid(category string, length, pieceLength float64) bool {
	return o.catalog.Contains(category, length) && length+eps >= pieceLength
}
