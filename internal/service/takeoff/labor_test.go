package takeoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/storage"
)

func TestOperations_ColumnOrder(t *testing.T) {
	tr := newTestTranslator()

	ops, dropped := tr.Operations(Row{
		ShapeSize: "W12x26",
		End1:      "Miter",
		End2:      "Straight",
		HoleType:  "Drill",
		HoleCount: 2,
		WeldType:  "Fillet",
		Prep:      "SSPC-SP6",
	})

	assert.Empty(t, dropped)
	require.Len(t, ops, 5)
	assert.Equal(t, []string{
		constants.OpCutMiter, constants.OpCutStraight, constants.OpDrillHoles,
		constants.OpWeldFillet, constants.OpPrepSP6,
	}, opNames(ops))
	assert.Equal(t, 2.0, ops[2].Quantity)
	assert.Equal(t, storage.UnitEach, ops[0].Unit)
	assert.Nil(t, ops[0].Rate)
}

func TestOperations_CompoundEndCut(t *testing.T) {
	ops, dropped := newTestTranslator().Operations(Row{End1: "Cope + Miter", End2: "B+DC"})

	assert.Empty(t, dropped)
	assert.Equal(t, []string{
		constants.OpCutCope, constants.OpCutMiter, constants.OpCutBevel, constants.OpCutDoubleCope,
	}, opNames(ops))
}

func TestOperations_DuplicateCutKeepsFirst(t *testing.T) {
	ops, _ := newTestTranslator().Operations(Row{End1: "Straight", End2: "S"})

	require.Len(t, ops, 1)
	assert.Equal(t, constants.OpCutStraight, ops[0].Name)
	assert.Equal(t, 1.0, ops[0].Quantity)
}

func TestOperations_UnknownCodesDropped(t *testing.T) {
	ops, dropped := newTestTranslator().Operations(Row{
		End1:           "Laser",
		HoleType:       "Plasma",
		WeldType:       "Fillet",
		ConnectionType: "Bolted?",
		Prep:           "SP99",
		Line:           7,
	})

	assert.Equal(t, []string{constants.OpWeldFillet}, opNames(ops))
	assert.Equal(t, []DroppedCode{
		{Column: constants.ColEnd1, Code: "Laser", Line: 7},
		{Column: constants.ColHoleType, Code: "Plasma", Line: 7},
		{Column: constants.ColConnectionType, Code: "Bolted?", Line: 7},
		{Column: constants.ColPrep, Code: "SP99", Line: 7},
	}, dropped)
}

func TestOperations_ConnectionFamily(t *testing.T) {
	tr := newTestTranslator()

	cases := []struct {
		shape, code, want string
	}{
		{"W12x26", "STD", constants.OpConnStandardWF},
		{"W12x26", "Moment", constants.OpConnMomentWF},
		{"C10x15.3", "S", constants.OpConnStandardC},
		{"MC8x8.5", "M", constants.OpConnMomentC},
	}

	for _, tc := range cases {
		ops, _ := tr.Operations(Row{ShapeSize: tc.shape, ConnectionType: tc.code, ConnectionCount: 2})
		require.Len(t, ops, 1)
		assert.Equal(t, tc.want, ops[0].Name)
		assert.Equal(t, 2.0, ops[0].Quantity)
	}
}

func TestOperations_CountDefaultsToOne(t *testing.T) {
	ops, _ := newTestTranslator().Operations(Row{ShapeSize: "W8x10", HoleType: "Punch", ConnectionType: "STD"})

	require.Len(t, ops, 2)
	assert.Equal(t, 1.0, ops[0].Quantity)
	assert.Equal(t, 1.0, ops[1].Quantity)
}

func TestMerge_AccumulateVersusFirstWins(t *testing.T) {
	tr := newTestTranslator()
	rate := 10.0

	existing := []storage.FabOperation{
		{Name: constants.OpDrillHoles, Quantity: 2, Unit: storage.UnitEach, Rate: &rate, TotalCost: 20},
		{Name: constants.OpCutCope, Quantity: 1, Unit: storage.UnitEach},
	}
	incoming := []storage.FabOperation{
		{Name: constants.OpDrillHoles, Quantity: 3, Unit: storage.UnitEach},
		{Name: constants.OpCutCope, Quantity: 1, Unit: storage.UnitEach},
		{Name: constants.OpConnMomentWF, Quantity: 1, Unit: storage.UnitEach},
	}

	merged := tr.Merge(existing, incoming)

	require.Len(t, merged, 3)
	assert.Equal(t, 5.0, merged[0].Quantity)
	assert.Equal(t, 50.0, merged[0].TotalCost)
	assert.Equal(t, 1.0, merged[1].Quantity)
	assert.Equal(t, constants.OpConnMomentWF, merged[2].Name)

	// input untouched
	assert.Equal(t, 2.0, existing[0].Quantity)
}
