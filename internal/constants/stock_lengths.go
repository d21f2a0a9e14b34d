package constants

// StockCatalog lists the standard mill lengths (feet) per material category.
type StockCatalog struct {
	Default    []float64
	ByCategory map[string][]float64
}

func DefaultStockCatalog() *StockCatalog {
	return &StockCatalog{
		Default: []float64{20, 25, 30, 35, 40, 45, 50, 55, 60},
		ByCategory: map[string][]float64{
			"Pipe": {21, 42},
			// 4x8, 4x10, 5x10, 4x12, 5x20 sheets cut lengthwise
			"Plate": {8, 10, 12, 20},
		},
	}
}

// Lengths returns the candidate stock lengths for a category.
func (c *StockCatalog) Lengths(category string) []float64 {
	if l, ok := c.ByCategory[category]; ok {
		return l
	}
	return c.Default
}

// Contains reports whether length is a standard length for the category.
func (c *StockCatalog) Contains(category string, length float64) bool {
	for _, l := range c.Lengths(category) {
		if l == length {
			return true
		}
	}
	return false
}
