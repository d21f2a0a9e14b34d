package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"steel-estimator/internal/storage"
)

const laborRateSetting = "shop_labor_rate"

const pricingColumns = `cut_straight, cut_miter, cut_bevel, cut_cope, cut_double_cope,
	standard_conn_cost, moment_conn_cost, standard_conn_hours, moment_conn_hours,
	standard_conn_weight, moment_conn_weight, provides_takeoff_cost`

// pricingScan collects the nullable price columns of one row.
type pricingScan struct {
	cuts    [5]sql.NullFloat64
	conn    [6]sql.NullFloat64
	provide bool
}

func (p *pricingScan) dest() []interface{} {
	d := make([]interface{}, 0, 12)
	for i := range p.cuts {
		d = append(d, &p.cuts[i])
	}
	for i := range p.conn {
		d = append(d, &p.conn[i])
	}
	return append(d, &p.provide)
}

func (p *pricingScan) apply(row *storage.PricingRow) {
	row.CutStraight = nullFloat(p.cuts[0])
	row.CutMiter = nullFloat(p.cuts[1])
	row.CutBevel = nullFloat(p.cuts[2])
	row.CutCope = nullFloat(p.cuts[3])
	row.CutDoubleCope = nullFloat(p.cuts[4])
	row.StandardConnCost = nullFloat(p.conn[0])
	row.MomentConnCost = nullFloat(p.conn[1])
	row.StandardConnHours = nullFloat(p.conn[2])
	row.MomentConnHours = nullFloat(p.conn[3])
	row.StandardConnWeight = nullFloat(p.conn[4])
	row.MomentConnWeight = nullFloat(p.conn[5])
	row.ProvidesTakeoffCost = p.provide
}

// GetBeamPricing fetches every requested size in one query, keyed by size.
func (s *Storage) GetBeamPricing(ctx context.Context, sizes []string) (map[string]*storage.PricingRow, error) {
	const op = "storage.mysql.GetBeamPricing"

	out := make(map[string]*storage.PricingRow, len(sizes))
	if len(sizes) == 0 {
		return out, nil
	}

	args := make([]interface{}, len(sizes))
	for i, size := range sizes {
		args[i] = size
	}

	query := `SELECT id, size, shape_type, category_id, ` + pricingColumns + `
		FROM beam_pricing
		WHERE size IN (?` + strings.Repeat(",?", len(sizes)-1) + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row      storage.PricingRow
			category sql.NullInt64
			p        pricingScan
		)

		dest := append([]interface{}{&row.ID, &row.Size, &row.ShapeType, &category}, p.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		p.apply(&row)
		if category.Valid {
			id := category.Int64
			row.CategoryID = &id
		}
		out[row.Size] = &row
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return out, nil
}

func (s *Storage) GetShapeCategories(ctx context.Context) ([]*storage.ShapeCategory, error) {
	const op = "storage.mysql.GetShapeCategories"

	query := `SELECT id, name, shape_type, prefixes, ` + pricingColumns + `
		FROM shape_categories
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var categories []*storage.ShapeCategory

	for rows.Next() {
		var (
			c storage.ShapeCategory
			p pricingScan
		)

		dest := append([]interface{}{&c.ID, &c.Name, &c.ShapeType, &c.Prefixes}, p.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		p.apply(&c.PricingRow)
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return categories, nil
}

// GetShopLaborRate returns storage.ErrNotFound when no rate was ever set.
func (s *Storage) GetShopLaborRate(ctx context.Context) (float64, error) {
	const op = "storage.mysql.GetShopLaborRate"

	var rate float64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM shop_settings WHERE name = ?`, laborRateSetting).Scan(&rate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return rate, nil
}

func (s *Storage) SetShopLaborRate(ctx context.Context, rate float64) error {
	const op = "storage.mysql.SetShopLaborRate"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shop_settings (name, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)`,
		laborRateSetting, rate,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpsertBeamPricing inserts or replaces the row for row.Size and returns its id.
func (s *Storage) UpsertBeamPricing(ctx context.Context, row *storage.PricingRow) (int64, error) {
	const op = "storage.mysql.UpsertBeamPricing"

	var category interface{}
	if row.CategoryID != nil {
		category = *row.CategoryID
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO beam_pricing (size, shape_type, category_id, `+pricingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			id = LAST_INSERT_ID(id),
			shape_type = VALUES(shape_type),
			category_id = VALUES(category_id),
			cut_straight = VALUES(cut_straight),
			cut_miter = VALUES(cut_miter),
			cut_bevel = VALUES(cut_bevel),
			cut_cope = VALUES(cut_cope),
			cut_double_cope = VALUES(cut_double_cope),
			standard_conn_cost = VALUES(standard_conn_cost),
			moment_conn_cost = VALUES(moment_conn_cost),
			standard_conn_hours = VALUES(standard_conn_hours),
			moment_conn_hours = VALUES(moment_conn_hours),
			standard_conn_weight = VALUES(standard_conn_weight),
			moment_conn_weight = VALUES(moment_conn_weight),
			provides_takeoff_cost = VALUES(provides_takeoff_cost)`,
		row.Size, row.ShapeType, category,
		floatArg(row.CutStraight), floatArg(row.CutMiter), floatArg(row.CutBevel),
		floatArg(row.CutCope), floatArg(row.CutDoubleCope),
		floatArg(row.StandardConnCost), floatArg(row.MomentConnCost),
		floatArg(row.StandardConnHours), floatArg(row.MomentConnHours),
		floatArg(row.StandardConnWeight), floatArg(row.MomentConnWeight),
		row.ProvidesTakeoffCost,
	)
	if err != nil {
		if isMySQLError(err, errNoReferencedRow) {
			return 0, fmt.Errorf("%s: category %v: %w", op, category, storage.ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}
