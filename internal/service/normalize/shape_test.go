package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeSize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "W12X26", want: "W12X26"},
		{name: "times sign", in: "W12×26", want: "W12x26"},
		{name: "cp1252 garble", in: "W12Ã—26", want: "W12x26"},
		{name: "latin1 garble", in: "W12Ã\u009726", want: "W12x26"},
		{name: "double garble", in: "HSS6Ãƒâ€”6Ãƒâ€”1/4", want: "HSS6x6x1/4"},
		{name: "inch marks", in: `PL 1/2" x 6"`, want: "PL 1/2 x 6"},
		{name: "fraction kept", in: "L4X4X3/4", want: "L4X4X3/4"},
		{name: "decimal kept", in: "HSS4X4X.25", want: "HSS4X4X.25"},
		{name: "trim", in: "  C10X15.3 ", want: "C10X15.3"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShapeSize(tc.in))
		})
	}
}

func TestShapeSize_Idempotent(t *testing.T) {
	inputs := []string{
		"W12Ã—26", "HSS6Ãƒâ€”6Ãƒâ€”1/4", `PL 1/2" x 6"`, "Ã", "Â", "W 12 × 26",
		"L3-1/2X3-1/2X1/4", "café", "",
	}

	for _, in := range inputs {
		once := ShapeSize(in)
		assert.Equal(t, once, ShapeSize(once), "input %q", in)
	}
}

func TestCell_RepairsText(t *testing.T) {
	assert.Equal(t, "Café Stair", Cell(" CafÃ© Stair "))
	assert.Equal(t, "Prime Paint", Cell("Prime Paint"))
}

func TestSizeKey(t *testing.T) {
	assert.Equal(t, "W12X26", SizeKey(" w12 × 26 "))
	assert.Equal(t, "MC10X8.4", SizeKey("mc10x8.4"))
}
