package pricing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"steel-estimator/internal/storage"
)

type MockPricingStorage struct {
	mock.Mock
}

func (m *MockPricingStorage) GetBeamPricing(ctx context.Context, sizes []string) (map[string]*storage.PricingRow, error) {
	args := m.Called(ctx, sizes)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	rows, ok := args.Get(0).(map[string]*storage.PricingRow)
	if !ok {
		return nil, fmt.Errorf("expected map[string]*storage.PricingRow, got %T", args.Get(0))
	}

	return rows, args.Error(1)
}

func (m *MockPricingStorage) GetShapeCategories(ctx context.Context) ([]*storage.ShapeCategory, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	cats, ok := args.Get(0).([]*storage.ShapeCategory)
	if !ok {
		return nil, fmt.Errorf("expected []*storage.ShapeCategory, got %T", args.Get(0))
	}

	return cats, args.Error(1)
}

func (m *MockPricingStorage) GetShopLaborRate(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPricingStorage) UpsertBeamPricing(ctx context.Context, row *storage.PricingRow) (int64, error) {
	args := m.Called(ctx, row)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPricingStorage) SetShopLaborRate(ctx context.Context, rate float64) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(v float64) *float64 { return &v }

func int64Ptr(v int64) *int64 { return &v }

// wideFlangeCategories is a W12/W14 category with labor hours and a C/MC
// category priced in flat dollars.
func wideFlangeCategories() []*storage.ShapeCategory {
	return []*storage.ShapeCategory{
		{
			PricingRow: storage.PricingRow{
				ID:                7,
				ShapeType:         "W",
				CutStraight:       ptr(18),
				StandardConnHours: ptr(1.5),
				MomentConnHours:   ptr(4),
			},
			Name:     "W12-W14",
			Prefixes: "W12, W14",
		},
		{
			PricingRow: storage.PricingRow{
				ID:                 8,
				ShapeType:          "MC",
				StandardConnCost:   ptr(45),
				StandardConnWeight: ptr(6.5),
			},
			Name:     "MC",
			Prefixes: "MC",
		},
	}
}
