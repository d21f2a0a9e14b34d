package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/storage"
)

func fptr(v float64) *float64 { return &v }

func TestWeightPerFoot(t *testing.T) {
	table := constants.DefaultShapeWeights()

	cases := []struct {
		name   string
		m      storage.Material
		want   float64
		source string
	}{
		{"override wins", storage.Material{Category: storage.CategoryWideFlange, Shape: "W12X26", WeightPerFootOverride: fptr(27.5)}, 27.5, WeightOverride},
		{"plate formula", storage.Material{Category: storage.CategoryPlate, Shape: "PL1/2X6", PlateThickness: fptr(0.5), PlateWidth: fptr(6)}, 10.2096, WeightPlate},
		{"table", storage.Material{Category: storage.CategoryAngle, Shape: "L4x4x3/8"}, 9.8, WeightTable},
		{"nominal wide flange", storage.Material{Category: storage.CategoryWideFlange, Shape: "W12x26"}, 26, WeightNominal},
		{"nominal channel", storage.Material{Category: storage.CategoryChannel, Shape: "C10X15.3"}, 15.3, WeightNominal},
		{"unknown angle", storage.Material{Category: storage.CategoryAngle, Shape: "L9X9X1"}, 0, ""},
		{"custom", storage.Material{Category: storage.CategoryCustom, Shape: "Grating"}, 0, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, source := WeightPerFoot(&c.m, table)
			assert.InDelta(t, c.want, got, 1e-9)
			assert.Equal(t, c.source, source)
		})
	}
}
