package constants

// SteelDensityFactor converts thickness(in) x width(in) to lb/ft:
// 0.2836 lb/in^3 x 12 in/ft.
const SteelDensityFactor = 0.2836 * 12

// DefaultShapeWeights returns lb/ft for standard shapes whose designation does not
// carry the nominal weight (angles, HSS, pipe, bar). W, S, M, HP, C, MC and WT
// designations end in their nominal weight and are parsed instead.
func DefaultShapeWeights() map[string]float64 {
	return map[string]float64{
		"L2X2X1/4":         3.19,
		"L2-1/2X2-1/2X1/4": 4.10,
		"L3X3X1/4":         4.90,
		"L3X3X3/8":         7.20,
		"L3-1/2X3-1/2X1/4": 5.80,
		"L4X4X1/4":         6.60,
		"L4X4X3/8":         9.80,
		"L4X4X1/2":         12.8,
		"L5X5X3/8":         12.3,
		"L6X6X3/8":         14.9,
		"L6X4X3/8":         12.3,
		"HSS3X3X1/4":       8.81,
		"HSS4X4X1/4":       12.2,
		"HSS4X4X3/8":       17.3,
		"HSS5X5X1/4":       15.6,
		"HSS6X6X1/4":       19.0,
		"HSS6X6X3/8":       27.5,
		"HSS6X4X1/4":       15.6,
		"HSS8X8X3/8":       37.7,
		"HSS8X4X1/4":       19.0,
		"PIPE2STD":         3.66,
		"PIPE3STD":         7.58,
		"PIPE4STD":         10.8,
		"PIPE6STD":         19.0,
		"PIPE2XS":          5.03,
		"PIPE3XS":          10.3,
		"FB1/4X2":          1.70,
		"FB3/8X3":          3.83,
		"FB1/2X4":          6.81,
		"RB3/4":            1.50,
		"RB1":              2.67,
	}
}
