package costing

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"steel-estimator/internal/storage"
)

type EstimateStorage interface {
	GetProjectName(ctx context.Context, projectID int64) (string, error)
	GetEstimateItems(ctx context.Context, projectID int64) ([]*storage.Item, error)
	GetAdjustments(ctx context.Context, projectID int64) ([]storage.Adjustment, error)
	SaveCalculation(ctx context.Context, projectID int64, items []*storage.Item, totals []storage.ItemTotals) error
}

type EstimateService struct {
	log        *slog.Logger
	storage    EstimateStorage
	calculator *Calculator
}

func NewEstimateService(log *slog.Logger, storage EstimateStorage, calculator *Calculator) *EstimateService {
	return &EstimateService{log: log, storage: storage, calculator: calculator}
}

// Load reads the estimate snapshot of a project.
func (s *EstimateService) Load(ctx context.Context, projectID int64) (*storage.Estimate, error) {
	const op = "costing.EstimateService.Load"

	est := &storage.Estimate{ProjectID: projectID}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		est.Name, err = s.storage.GetProjectName(gCtx, projectID)
		if err != nil {
			return fmt.Errorf("project: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		est.Items, err = s.storage.GetEstimateItems(gCtx, projectID)
		if err != nil {
			return fmt.Errorf("items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		est.Adjustments, err = s.storage.GetAdjustments(gCtx, projectID)
		if err != nil {
			return fmt.Errorf("adjustments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return est, nil
}

// Totals runs the cascade without writing anything back.
func (s *EstimateService) Totals(ctx context.Context, projectID int64) (*ProjectTotals, error) {
	const op = "costing.EstimateService.Totals"

	est, err := s.Load(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	totals, err := s.calculator.Estimate(est)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return totals, nil
}

// Recalculate runs the cascade and persists every computed material and item field.
func (s *EstimateService) Recalculate(ctx context.Context, projectID int64) (*ProjectTotals, error) {
	const op = "costing.EstimateService.Recalculate"

	est, err := s.Load(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	totals, err := s.calculator.Estimate(est)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.SaveCalculation(ctx, projectID, est.Items, totals.Items); err != nil {
		return nil, fmt.Errorf("%s: save: %w", op, err)
	}

	s.log.Info("estimate recalculated",
		slog.String("op", op),
		slog.Int64("project_id", projectID),
		slog.Int("items", len(est.Items)),
		slog.Float64("grand_total", totals.GrandTotal),
	)

	return totals, nil
}
