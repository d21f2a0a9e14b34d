package update

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"steel-estimator/http-server/api"
	"steel-estimator/internal/storage"
)

type PricingAdmin interface {
	UpsertBeam(ctx context.Context, row *storage.PricingRow) (int64, error)
	SetLaborRate(ctx context.Context, rate float64) error
}

type BeamResp struct {
	ID   int64  `json:"id"`
	Size string `json:"size"`
}

type LaborRateReq struct {
	Rate float64 `json:"rate"`
}

// UpdateBeam upserts the pricing row named by the {size} URL parameter. The
// body's size field is ignored. Sizes holding a slash (HSS4X4X1/4) arrive
// escaped as %2F.
func UpdateBeam(log *slog.Logger, admin PricingAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.UpdateBeam"

		var row storage.PricingRow
		if err := render.DecodeJSON(r.Body, &row); err != nil {
			api.Error(w, r, http.StatusBadRequest, "invalid JSON")
			return
		}
		size, err := url.PathUnescape(chi.URLParam(r, "size"))
		if err != nil {
			api.Error(w, r, http.StatusBadRequest, "invalid size")
			return
		}
		row.Size = size

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := admin.UpsertBeam(ctx, &row)
		if err != nil {
			log.Error("failed to save beam pricing", slog.String("op", op), slog.String("size", row.Size), slog.String("error", err.Error()))
			api.Error(w, r, api.StatusFor(err), api.Message(err))
			return
		}

		render.JSON(w, r, BeamResp{ID: id, Size: row.Size})
	}
}

func UpdateLaborRate(log *slog.Logger, admin PricingAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.UpdateLaborRate"

		var req LaborRateReq
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			api.Error(w, r, http.StatusBadRequest, "invalid JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := admin.SetLaborRate(ctx, req.Rate); err != nil {
			log.Error("failed to set labor rate", slog.String("op", op), slog.String("error", err.Error()))
			api.Error(w, r, api.StatusFor(err), api.Message(err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
