package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"steel-estimator/internal/service/normalize"
	"steel-estimator/internal/storage"
)

var ErrInvalidPricing = errors.New("invalid pricing")

type AdminStorage interface {
	UpsertBeamPricing(ctx context.Context, row *storage.PricingRow) (int64, error)
	SetShopLaborRate(ctx context.Context, rate float64) error
}

// Admin writes pricing rows and drops the resolver cache after every write.
type Admin struct {
	log      *slog.Logger
	storage  AdminStorage
	resolver *Resolver
}

func NewAdmin(log *slog.Logger, storage AdminStorage, resolver *Resolver) *Admin {
	return &Admin{log: log, storage: storage, resolver: resolver}
}

func (a *Admin) UpsertBeam(ctx context.Context, row *storage.PricingRow) (int64, error) {
	const op = "pricing.Admin.UpsertBeam"

	row.Size = normalize.SizeKey(row.Size)
	if row.Size == "" {
		return 0, fmt.Errorf("%s: empty size: %w", op, ErrInvalidPricing)
	}
	if shapeType, _ := splitSize(row.Size); row.ShapeType == "" {
		row.ShapeType = shapeType
	}

	id, err := a.storage.UpsertBeamPricing(ctx, row)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	a.resolver.Invalidate()
	a.log.Info("beam pricing saved", slog.String("op", op), slog.String("size", row.Size), slog.Int64("id", id))

	return id, nil
}

func (a *Admin) SetLaborRate(ctx context.Context, rate float64) error {
	const op = "pricing.Admin.SetLaborRate"

	if rate <= 0 {
		return fmt.Errorf("%s: rate must be positive: %w", op, ErrInvalidPricing)
	}

	if err := a.storage.SetShopLaborRate(ctx, rate); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.resolver.Invalidate()
	a.log.Info("shop labor rate saved", slog.String("op", op), slog.Float64("rate", rate))

	return nil
}
