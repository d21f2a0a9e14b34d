package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"steel-estimator/http-server/api"
	"steel-estimator/http-server/takeoff/upload"
	"steel-estimator/internal/service/takeoff"
)

type TakeoffImporter interface {
	Import(ctx context.Context, projectID int64, format string, data []byte) (*takeoff.Result, error)
}

// ImportTakeoff merges an uploaded takeoff into the project's estimate.
func ImportTakeoff(log *slog.Logger, svc TakeoffImporter, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.takeoff.ImportTakeoff"

		log := log.With(slog.String("op", op))

		projectID, err := api.ProjectID(r)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, upload.Failure(err.Error()))
			return
		}

		file, err := upload.Read(r, maxBytes)
		if err != nil {
			log.Warn("bad takeoff upload", slog.Int64("project_id", projectID), slog.String("error", err.Error()))
			render.Status(r, upload.Status(err))
			render.JSON(w, r, upload.Failure(err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		res, err := svc.Import(ctx, projectID, file.Format, file.Data)
		if err != nil {
			status := api.StatusFor(err)
			if status >= http.StatusInternalServerError {
				log.Error("takeoff import failed", slog.Int64("project_id", projectID), slog.String("error", err.Error()))
			} else {
				log.Info("takeoff rejected", slog.Int64("project_id", projectID), slog.String("error", err.Error()))
			}
			render.Status(r, status)
			render.JSON(w, r, upload.Failure(api.Message(err)))
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, upload.Success(res))
	}
}
