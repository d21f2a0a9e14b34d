package recalculate

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"steel-estimator/http-server/api"
	"steel-estimator/internal/service/costing"
)

type EstimateRecalculator interface {
	Recalculate(ctx context.Context, projectID int64) (*costing.ProjectTotals, error)
}

// RecalculateEstimate runs the cost cascade for a project and saves every
// computed field before returning the totals.
func RecalculateEstimate(log *slog.Logger, svc EstimateRecalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.estimate.RecalculateEstimate"

		projectID, err := api.ProjectID(r)
		if err != nil {
			api.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		totals, err := svc.Recalculate(ctx, projectID)
		if err != nil {
			log.Error("failed to recalculate estimate",
				slog.String("op", op),
				slog.Int64("project_id", projectID),
				slog.String("error", err.Error()),
			)
			api.Error(w, r, api.StatusFor(err), api.Message(err))
			return
		}

		render.JSON(w, r, totals)
	}
}
