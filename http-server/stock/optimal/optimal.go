package optimal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"steel-estimator/http-server/api"
	"steel-estimator/internal/service/stock"
)

type StockOptimizer interface {
	ForCategory(category string, pieces int, pieceLength float64) stock.Result
}

// Req carries either a category, whose catalog lengths are tried, or an
// explicit stock_lengths list, which takes precedence.
type Req struct {
	Pieces       int       `json:"pieces"`
	PieceLength  float64   `json:"piece_length"`
	Category     string    `json:"category"`
	StockLengths []float64 `json:"stock_lengths,omitempty"`
}

type Resp struct {
	Found  bool         `json:"found"`
	Result stock.Result `json:"result"`
}

func OptimalStock(log *slog.Logger, optimizer StockOptimizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.stock.OptimalStock"

		var req Req
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Warn("bad stock request", slog.String("op", op), slog.String("error", err.Error()))
			api.Error(w, r, http.StatusBadRequest, "invalid JSON")
			return
		}

		var res stock.Result
		if len(req.StockLengths) > 0 {
			res = stock.Optimal(req.Pieces, req.PieceLength, req.StockLengths)
		} else {
			res = optimizer.ForCategory(req.Category, req.Pieces, req.PieceLength)
		}

		render.JSON(w, r, Resp{Found: res.StocksRequired > 0, Result: res})
	}
}
