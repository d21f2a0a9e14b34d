package storage

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflicting write")
)

// PricingRow is one record of the pricing store: either an exact beam size or a
// shape category. Nil cost fields mean no price exists yet.
type PricingRow struct {
	ID         int64  `json:"id"`
	Size       string `json:"size"`
	ShapeType  string `json:"shape_type"`
	CategoryID *int64 `json:"category_id,omitempty"`

	CutStraight   *float64 `json:"cut_straight"`
	CutMiter      *float64 `json:"cut_miter"`
	CutBevel      *float64 `json:"cut_bevel"`
	CutCope       *float64 `json:"cut_cope"`
	CutDoubleCope *float64 `json:"cut_double_cope"`

	StandardConnCost  *float64 `json:"standard_conn_cost"`
	MomentConnCost    *float64 `json:"moment_conn_cost"`
	StandardConnHours *float64 `json:"standard_conn_hours"`
	MomentConnHours   *float64 `json:"moment_conn_hours"`

	StandardConnWeight *float64 `json:"standard_conn_weight"`
	MomentConnWeight   *float64 `json:"moment_conn_weight"`

	ProvidesTakeoffCost bool `json:"provides_takeoff_cost"`
}

// ShapeCategory is a fallback pricing record covering every size whose prefix is
// listed in Prefixes (comma separated, e.g. "W12,W14").
type ShapeCategory struct {
	PricingRow
	Name     string `json:"name"`
	Prefixes string `json:"prefixes"`
}
