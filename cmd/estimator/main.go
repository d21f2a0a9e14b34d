package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"steel-estimator/internal/config"
	"steel-estimator/internal/constants"
	"steel-estimator/internal/service/costing"
	"steel-estimator/internal/service/importer"
	"steel-estimator/internal/service/pricing"
	"steel-estimator/internal/service/stock"
	"steel-estimator/internal/service/takeoff"
	"steel-estimator/internal/storage/mysql"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type services struct {
	resolver  *pricing.Resolver
	admin     *pricing.Admin
	optimizer *stock.Optimizer
	estimates *costing.EstimateService
	importer  *importer.Service
}

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	storage, err := mysql.New(cfg)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	svc := newServices(log, cfg, storage)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(cfg, log, svc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

func newServices(log *slog.Logger, cfg *config.Config, storage *mysql.Storage) *services {
	translator := takeoff.NewTranslator(constants.DefaultLaborCodes())
	parser := takeoff.NewParser(constants.TakeoffColumns())

	resolver := pricing.NewResolver(log, storage, cfg.DefaultShopLaborRate, cfg.GalvanizingRatePerLb)
	optimizer := stock.NewOptimizer(constants.DefaultStockCatalog())
	calculator := costing.NewCalculator(constants.DefaultShapeWeights(), optimizer, cfg.TaxRate)

	return &services{
		resolver:  resolver,
		admin:     pricing.NewAdmin(log, storage, resolver),
		optimizer: optimizer,
		estimates: costing.NewEstimateService(log, storage, calculator),
		importer:  importer.New(log, parser, translator, resolver, storage),
	}
}

// dualHandler writes every record to stdout and copies errors to errors.log.
type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	if h.coreHandler.Enabled(ctx, r.Level) {
		if err = h.coreHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		// a failed file write must not drop the stdout record
		_ = h.errorHandler.Handle(ctx, r.Clone())
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == envProd {
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case envLocal, envProd:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("cannot open error log file", slog.String("error", err.Error()))
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError})

	return slog.New(&dualHandler{coreHandler: coreHandler, errorHandler: errorHandler})
}
