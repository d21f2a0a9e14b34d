package preview

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

type TakeoffPreviewer interface {
	Preview(ctx context.Context, format string, data []byte) (*takeoff.Result, error)
}

// PreviewTakeoff parses and prices an uploaded takeoff without saving it.
func PreviewTakeoff(log *slog.Logger, svc TakeoffPreviewer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.takeoff.PreviewTakeoff"

		log := log.With(slog.String("op", op))

		file, err := upload.Read(r, maxBytes)
		if err != nil {
			log.Warn("bad takeoff upload", slog.String("error", err.Error()))
			render.Status(r, upload.Status(err))
			render.JSON(w, r, upload.Failure(err.Error()))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		res, err := svc.Preview(ctx, file.Format, file.Data)
		if err != nil {
			status := api.StatusFor(err)
			if status >= http.StatusInternalServerError {
				log.Error("takeoff preview failed", slog.String("error", err.Error()))
			} else {
				log.Info("takeoff rejected", slog.String("file", file.Name), slog.String("error", err.Error()))
			}
			render.Status(r, status)
			render.JSON(w, r, upload.Failure(api.Message(err)))
			return
		}

		render.JSON(w, r, upload.Success(res))
	}
}
