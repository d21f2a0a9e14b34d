package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"steel-estimator/http-server/estimate/recalculate"
	"steel-estimator/http-server/estimate/totals"
	"steel-estimator/http-server/pricing/resolve"
	"steel-estimator/http-server/pricing/update"
	"steel-estimator/http-server/stock/optimal"
	"steel-estimator/http-server/takeoff/preview"
	"steel-estimator/http-server/takeoff/save"
	"steel-estimator/internal/config"
	"steel-estimator/internal/middleware/auth"
)

func routes(cfg *config.Config, log *slog.Logger, svc *services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	maxUpload := cfg.MaxUploadMB << 20

	// takeoff import
	router.Post("/api/takeoff/preview", preview.PreviewTakeoff(log, svc.importer, maxUpload))
	router.Post("/api/projects/{projectID}/takeoff", save.ImportTakeoff(log, svc.importer, maxUpload))

	// estimate
	router.Post("/api/projects/{projectID}/recalculate", recalculate.RecalculateEstimate(log, svc.estimates))
	router.Get("/api/projects/{projectID}/totals", totals.GetTotals(log, svc.estimates))

	router.Get("/api/pricing/resolve", resolve.ResolvePricing(log, svc.resolver))
	router.Post("/api/stock/optimal", optimal.OptimalStock(log, svc.optimizer))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Put("/pricing/beams/{size}", update.UpdateBeam(log, svc.admin))
	adminRouter.Put("/pricing/labor-rate", update.UpdateLaborRate(log, svc.admin))

	router.Mount("/api/admin", adminRouter)

	return router
}
