package storage

// Material categories.
const (
	CategoryWideFlange = "Wide Flange"
	CategoryChannel    = "Channel"
	CategoryAngle      = "Angle"
	CategoryHSS        = "HSS"
	CategoryPipe       = "Pipe"
	CategoryPlate      = "Plate"
	CategoryBar        = "Bar"
	CategoryCustom     = "Custom"
)

type PriceBasis string

const (
	BasisWeight PriceBasis = "weight"
	BasisLength PriceBasis = "length"
	BasisPiece  PriceBasis = "piece"
)

type TaxCategory string

const (
	TaxNone            TaxCategory = "none"
	TaxResaleExempt    TaxCategory = "resale"
	TaxNewConstruction TaxCategory = "new_construction"
	TaxFOB             TaxCategory = "fob"
)

const (
	UnitEach  = "EA"
	UnitPound = "LB"
	UnitFoot  = "LF"
	UnitLot   = "LOT"
)

// FabOperation is one fabrication operation on a member, material or item.
// Rate stays nil until it is priced.
type FabOperation struct {
	Name             string   `json:"name"`
	Quantity         float64  `json:"quantity"`
	Unit             string   `json:"unit"`
	Rate             *float64 `json:"rate"`
	TotalCost        float64  `json:"total_cost"`
	ConnectionWeight *float64 `json:"connection_weight,omitempty"`
}

type Material struct {
	ID       int64  `json:"id"`
	Mark     string `json:"mark"`
	Category string `json:"category"`
	Shape    string `json:"shape"`

	PlateThickness *float64 `json:"plate_thickness,omitempty"`
	PlateWidth     *float64 `json:"plate_width,omitempty"`

	WeightPerFootOverride *float64 `json:"weight_per_foot_override,omitempty"`
	StockLengthOverride   *float64 `json:"stock_length_override,omitempty"`

	Pieces     int        `json:"pieces"`
	Length     float64    `json:"length"`
	Galvanized bool       `json:"galvanized"`
	PriceBasis PriceBasis `json:"price_basis"`
	UnitPrice  float64    `json:"unit_price"`

	FabOperations []FabOperation `json:"fab_operations"`
	Children      []*Material    `json:"children,omitempty"`

	// computed
	WeightPerFoot         float64 `json:"weight_per_foot"`
	TotalLength           float64 `json:"total_length"`
	FabWeight             float64 `json:"fab_weight"`
	StockLength           float64 `json:"stock_length"`
	StockLengthOverridden bool    `json:"stock_length_overridden"`
	StockUnavailable      bool    `json:"stock_unavailable"` // no standard length fits, bought at piece length
	StocksRequired        int     `json:"stocks_required"`
	Waste                 float64 `json:"waste"`
	Efficiency            float64 `json:"efficiency"`
	StockWeight           float64 `json:"stock_weight"`
	MaterialCost          float64 `json:"material_cost"`
	FabCost               float64 `json:"fab_cost"`
}

// RecapCost is a flat cost column added after markup and never taxed.
type RecapCost struct {
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	Hours         float64 `json:"hours,omitempty"`
	Rate          float64 `json:"rate,omitempty"`
	MarkupPercent float64 `json:"markup_percent"`
}

type Item struct {
	ID         int64  `json:"id"`
	ProjectID  int64  `json:"project_id"`
	ItemNumber string `json:"item_number"`
	Name       string `json:"name"`
	DrawingRef string `json:"drawing_ref"`

	CoatingUniform string   `json:"coating_uniform,omitempty"`
	CoatingMixed   bool     `json:"coating_mixed"`
	CoatingValues  []string `json:"coating_values,omitempty"`

	Materials             []*Material    `json:"materials"`
	GeneralOps            []FabOperation `json:"general_ops"`
	Recap                 []RecapCost    `json:"recap"`
	MaterialMarkupPercent float64        `json:"material_markup_percent"`
	FabMarkupPercent      float64        `json:"fab_markup_percent"`
	TaxCategory           TaxCategory    `json:"tax_category"`
}

type Adjustment struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Estimate is the relational snapshot handed to the costing engine.
type Estimate struct {
	ProjectID   int64        `json:"project_id"`
	Name        string       `json:"name"`
	Items       []*Item      `json:"items"`
	Adjustments []Adjustment `json:"adjustments"`
}

// ItemTotals are the persisted per-item rollup fields.
type ItemTotals struct {
	ItemID         int64   `json:"item_id"`
	ItemNumber     string  `json:"item_number"`
	MaterialCost   float64 `json:"material_cost"`
	MaterialMarkup float64 `json:"material_markup"`
	FabCost        float64 `json:"fab_cost"`
	FabMarkup      float64 `json:"fab_markup"`
	RecapTotal     float64 `json:"recap_total"`
	TaxableBase    float64 `json:"taxable_base"`
	Tax            float64 `json:"tax"`
	Total          float64 `json:"total"`
	TotalWeight    float64 `json:"total_weight"`
}
