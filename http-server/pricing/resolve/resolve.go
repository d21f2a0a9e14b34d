package resolve

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"steel-estimator/http-server/api"
	"steel-estimator/internal/service/pricing"
)

type PricingResolver interface {
	Resolve(ctx context.Context, sizes []string) (map[string]*pricing.Resolved, error)
	LaborRate(ctx context.Context) (float64, error)
}

type Resp struct {
	LaborRate float64                      `json:"labor_rate"`
	Pricing   map[string]*pricing.Resolved `json:"pricing"`
}

// ResolvePricing looks up every ?size= value. Sizes may repeat the parameter or
// be comma separated; an unresolved size maps to null.
func ResolvePricing(log *slog.Logger, resolver PricingResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.ResolvePricing"

		var sizes []string
		for _, v := range r.URL.Query()["size"] {
			for _, s := range strings.Split(v, ",") {
				if s = strings.TrimSpace(s); s != "" {
					sizes = append(sizes, s)
				}
			}
		}
		if len(sizes) == 0 {
			api.Error(w, r, http.StatusBadRequest, "size is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		res, err := resolver.Resolve(ctx, sizes)
		if err != nil {
			log.Error("failed to resolve pricing", slog.String("op", op), slog.String("error", err.Error()))
			api.Error(w, r, api.StatusFor(err), api.Message(err))
			return
		}

		rate, err := resolver.LaborRate(ctx)
		if err != nil {
			log.Error("failed to load labor rate", slog.String("op", op), slog.String("error", err.Error()))
			api.Error(w, r, api.StatusFor(err), api.Message(err))
			return
		}

		render.JSON(w, r, Resp{LaborRate: rate, Pricing: res})
	}
}
