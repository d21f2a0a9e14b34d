package takeoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/storage"
)

const mergeCSV = "Item #,Description,Mark,Size,Qty,Length,Hole Type,Hole Count,End 1,Dwg,Coating\n" +
	"100,Canopy,A,W12X26,2,20,Drill,4,Straight,S-1,Prime\n" +
	"100,Canopy,A.1,PL1/2X6,3,1,,,Straight,S-2,Prime\n" +
	"200,Lintel,L1,L4X4X3/8,5,6,,,,S-9,Prime\n"

func TestMergeIntoEstimate_SelfMergeDoublesPieces(t *testing.T) {
	tr := newTestTranslator()
	res := aggregateCSV(t, mergeCSV)

	once := tr.MergeIntoEstimate(nil, res.Items)
	require.Len(t, once, 2)

	single := map[string]int{}
	for _, it := range once {
		for _, m := range it.Materials {
			single[m.Mark] = m.Pieces
			for _, c := range m.Children {
				single[c.Mark] = c.Pieces
			}
		}
	}

	again := aggregateCSV(t, mergeCSV)
	twice := tr.MergeIntoEstimate(once, again.Items)
	require.Len(t, twice, 2)

	for _, it := range twice {
		for _, m := range it.Materials {
			assert.Equal(t, 2*single[m.Mark], m.Pieces, m.Mark)
			for _, c := range m.Children {
				assert.Equal(t, 2*single[c.Mark], c.Pieces, c.Mark)
			}
		}
	}

	a := twice[0].Materials[0]
	assert.Equal(t, []string{constants.OpCutStraight, constants.OpDrillHoles}, opNames(a.FabOperations))
	assert.Equal(t, 1.0, a.FabOperations[0].Quantity)
	assert.Equal(t, 8.0, a.FabOperations[1].Quantity)
}

func TestMergeIntoEstimate_AppendOnly(t *testing.T) {
	tr := newTestTranslator()

	existing := []*storage.Item{{
		ID:             9,
		ItemNumber:     "100",
		Name:           "Existing canopy",
		DrawingRef:     "S-5",
		CoatingUniform: "TNEMEC",
		TaxCategory:    storage.TaxFOB,
		Materials: []*storage.Material{
			{ID: 1, Mark: "Z", Shape: "W8X10", Pieces: 1, UnitPrice: 0.9},
		},
	}}

	res := aggregateCSV(t, mergeCSV)
	out := tr.MergeIntoEstimate(existing, res.Items)

	require.Len(t, out, 2)
	item := out[0]
	assert.Equal(t, int64(9), item.ID)
	assert.Equal(t, "Existing canopy", item.Name)
	assert.Equal(t, storage.TaxFOB, item.TaxCategory)
	assert.Equal(t, "S-1, S-2, S-5", item.DrawingRef)
	assert.True(t, item.CoatingMixed)
	assert.Equal(t, []string{"TNEMEC", "Prime"}, item.CoatingValues)
	assert.Equal(t, []string{constants.OpCoatingMixed}, opNames(item.GeneralOps))

	require.Len(t, item.Materials, 2)
	assert.Equal(t, "Z", item.Materials[0].Mark)
	assert.Equal(t, 0.9, item.Materials[0].UnitPrice)
	assert.Equal(t, "A", item.Materials[1].Mark)
	require.Len(t, item.Materials[1].Children, 1)
	assert.Equal(t, "A.1", item.Materials[1].Children[0].Mark)

	assert.Equal(t, "200", out[1].ItemNumber)
	assert.Equal(t, storage.TaxNone, out[1].TaxCategory)
	assert.Equal(t, "Prime", out[1].CoatingUniform)
}

func TestMergeIntoEstimate_MixedCoatingSingleOperation(t *testing.T) {
	tr := newTestTranslator()
	rate := 300.0

	existing := []*storage.Item{{
		ID:             9,
		ItemNumber:     "100",
		CoatingUniform: "Prime Paint",
		GeneralOps: []storage.FabOperation{
			{Name: constants.OpCoatingPrefix + "Prime Paint", Quantity: 1, Unit: storage.UnitLot, Rate: &rate},
		},
	}}

	// 1. A second coating turns the item mixed and keeps the priced lot
	tnemec := aggregateCSV(t, "Item #,Description,Mark,Size,Qty,Length,Coating\n"+
		"100,Canopy,A,W12X26,2,20,TNEMEC\n")
	out := tr.MergeIntoEstimate(existing, tnemec.Items)

	require.Len(t, out, 1)
	item := out[0]
	assert.True(t, item.CoatingMixed)
	assert.Equal(t, []string{"Prime Paint", "TNEMEC"}, item.CoatingValues)
	require.Len(t, item.GeneralOps, 1)
	assert.Equal(t, constants.OpCoatingMixed, item.GeneralOps[0].Name)
	assert.Equal(t, storage.UnitLot, item.GeneralOps[0].Unit)
	require.NotNil(t, item.GeneralOps[0].Rate)
	assert.Equal(t, 300.0, *item.GeneralOps[0].Rate)

	// 2. Merging a known coating again still leaves one lot
	prime := aggregateCSV(t, "Item #,Description,Mark,Size,Qty,Length,Coating\n"+
		"100,Canopy,B,W8X10,1,10,Prime Paint\n")
	out = tr.MergeIntoEstimate(out, prime.Items)

	assert.Equal(t, []string{constants.OpCoatingMixed}, opNames(out[0].GeneralOps))
	assert.Equal(t, 300.0, *out[0].GeneralOps[0].Rate)
}

func TestToMaterial(t *testing.T) {
	m := &Member{
		Mark:   "P1",
		Size:   "PL1/2x6",
		Pieces: 4,
		Length: 1.5,
		Children: []*Member{
			{Mark: "P1.1", Size: "Grating panel", Pieces: 1},
		},
	}

	mat := ToMaterial(m)
	assert.Equal(t, storage.CategoryPlate, mat.Category)
	require.NotNil(t, mat.PlateThickness)
	require.NotNil(t, mat.PlateWidth)
	assert.Equal(t, 0.5, *mat.PlateThickness)
	assert.Equal(t, 6.0, *mat.PlateWidth)
	assert.Equal(t, storage.BasisWeight, mat.PriceBasis)

	require.Len(t, mat.Children, 1)
	assert.Equal(t, storage.CategoryCustom, mat.Children[0].Category)
	assert.Equal(t, storage.BasisPiece, mat.Children[0].PriceBasis)
}
