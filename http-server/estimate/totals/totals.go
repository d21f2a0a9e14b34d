package totals

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"steel-estimator/http-server/api"
	"steel-estimator/internal/service/costing"
)

type EstimateTotaler interface {
	Totals(ctx context.Context, projectID int64) (*costing.ProjectTotals, error)
}

func GetTotals(log *slog.Logger, svc EstimateTotaler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.estimate.GetTotals"

		projectID, err := api.ProjectID(r)
		if err != nil {
			api.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		totals, err := svc.Totals(ctx, projectID)
		if err != nil {
			log.Error("failed to compute totals", slog.String("op", op), slog.Int64("project_id", projectID), slog.String("error", err.Error()))
			api.Error(w, r, api.StatusFor(err), api.Message(err))
			return
		}

		render.JSON(w, r, totals)
	}
}
