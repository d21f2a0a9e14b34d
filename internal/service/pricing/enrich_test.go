package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/service/takeoff"
	"steel-estimator/internal/storage"
)

func importedItems() []*takeoff.Item {
	return []*takeoff.Item{{
		ItemNumber: "100",
		Members: []*takeoff.Member{
			{
				Mark:       "B1",
				IsParent:   true,
				Size:       "W12X26",
				Pieces:     3,
				Galvanized: true,
				Operations: []storage.FabOperation{
					{Name: constants.OpCutStraight, Quantity: 1, Unit: storage.UnitEach},
					{Name: constants.OpConnStandardWF, Quantity: 2, Unit: storage.UnitEach},
					{Name: constants.OpWeldFillet, Quantity: 1, Unit: storage.UnitEach},
				},
				Children: []*takeoff.Member{
					{Mark: "B1.1", Size: "PL1/2X6", Pieces: 2, Operations: []storage.FabOperation{
						{Name: constants.OpCutStraight, Quantity: 1, Unit: storage.UnitEach},
					}},
				},
			},
		},
	}}
}

func newEnrichResolver(t *testing.T, galvRate float64) *Resolver {
	t.Helper()

	ms := new(MockPricingStorage)
	beam := &storage.PricingRow{
		Size:               "W12X26",
		ShapeType:          "W",
		CutStraight:        ptr(22),
		StandardConnHours:  ptr(2),
		StandardConnWeight: ptr(15),
	}
	ms.On("GetBeamPricing", mock.Anything, []string{"PL1/2X6", "W12X26"}).
		Return(map[string]*storage.PricingRow{"W12X26": beam}, nil)
	ms.On("GetShapeCategories", mock.Anything).Return(wideFlangeCategories(), nil)
	ms.On("GetShopLaborRate", mock.Anything).Return(65.0, nil)

	return NewResolver(discardLogger(), ms, 65, galvRate)
}

func TestEnrich_PricesOperations(t *testing.T) {
	r := newEnrichResolver(t, 0.35)
	in := importedItems()

	out, warnings, err := r.Enrich(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, 1)

	b1 := out[0].Members[0]
	require.Len(t, b1.Operations, 4)

	cut := b1.Operations[0]
	assert.Equal(t, 22.0, *cut.Rate)
	assert.Equal(t, 22.0, cut.TotalCost)

	conn := b1.Operations[1]
	require.NotNil(t, conn.Rate)
	assert.Equal(t, 130.0, *conn.Rate)
	assert.Equal(t, 260.0, conn.TotalCost)
	assert.Equal(t, 15.0, *conn.ConnectionWeight)

	weld := b1.Operations[2]
	assert.Nil(t, weld.Rate)
	assert.Zero(t, weld.TotalCost)

	// 15 lb x 2 connections x 3 pieces
	galv := b1.Operations[3]
	assert.Equal(t, constants.OpGalvanizingConnections, galv.Name)
	assert.Equal(t, storage.UnitPound, galv.Unit)
	assert.Equal(t, 90.0, galv.Quantity)
	assert.Equal(t, 31.5, galv.TotalCost)

	// plate child has no pricing row
	child := b1.Children[0]
	assert.Nil(t, child.Operations[0].Rate)
	require.Len(t, warnings, 1)
	assert.Equal(t, takeoff.WarnUnresolvedPricing, warnings[0].Kind)
	assert.Equal(t, "B1.1", warnings[0].Mark)

	// input untouched
	assert.Len(t, in[0].Members[0].Operations, 3)
	assert.Nil(t, in[0].Members[0].Operations[0].Rate)
}

func TestEnrich_Idempotent(t *testing.T) {
	r := newEnrichResolver(t, 0)

	once, _, err := r.Enrich(context.Background(), importedItems())
	require.NoError(t, err)

	twice, _, err := r.Enrich(context.Background(), once)
	require.NoError(t, err)

	assert.Equal(t, once[0].Members[0].Operations, twice[0].Members[0].Operations)

	galv := twice[0].Members[0].Operations[3]
	assert.Equal(t, constants.OpGalvanizingConnections, galv.Name)
	assert.Nil(t, galv.Rate)
	assert.Equal(t, 90.0, galv.Quantity)
}
