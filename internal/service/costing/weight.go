package costing

import (
	"strconv"
	"strings"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/service/normalize"
	"steel-estimator/internal/storage"
)

// Weight-per-foot sources.
const (
	WeightOverride = "override"
	WeightPlate    = "plate"
	WeightTable    = "table"
	WeightNominal  = "nominal"
)

// WeightPerFoot picks lb/ft from the user override, the plate formula, the
// shape table, or the nominal weight in the designation, in that order.
// Zero means unknown.
func WeightPerFoot(m *storage.Material, table map[string]float64) (float64, string) {
	if m.WeightPerFootOverride != nil && *m.WeightPerFootOverride > 0 {
		return *m.WeightPerFootOverride, WeightOverride
	}

	if m.Category == storage.CategoryPlate && m.PlateThickness != nil && m.PlateWidth != nil {
		return *m.PlateThickness * *m.PlateWidth * constants.SteelDensityFactor, WeightPlate
	}

	key := normalize.SizeKey(m.Shape)
	if w, ok := table[key]; ok {
		return w, WeightTable
	}

	if m.Category == storage.CategoryWideFlange || m.Category == storage.CategoryChannel {
		if w, ok := nominalWeight(key); ok {
			return w, WeightNominal
		}
	}

	return 0, ""
}

// nominalWeight reads the trailing "X26" of W12X26, C10X15.3 and the like.
func nominalWeight(key string) (float64, bool) {
	i := strings.LastIndex(key, "X")
	if i < 0 || i == len(key)-1 {
		return 0, false
	}

	w, err := strconv.ParseFloat(key[i+1:], 64)
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}
