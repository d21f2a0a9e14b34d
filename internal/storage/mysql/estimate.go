package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"steel-estimator/internal/storage"
)

func (s *Storage) GetProjectName(ctx context.Context, projectID int64) (string, error) {
	const op = "storage.mysql.GetProjectName"

	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM projects WHERE id = ?`, projectID).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: project %d: %w", op, projectID, storage.ErrNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return name, nil
}

// GetEstimateItems loads a project's items with their materials, children
// nested under their parent material.
func (s *Storage) GetEstimateItems(ctx context.Context, projectID int64) ([]*storage.Item, error) {
	const op = "storage.mysql.GetEstimateItems"

	if _, err := s.GetProjectName(ctx, projectID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, item_number, name, drawing_ref, coating_uniform, coating_mixed,
			coating_values, general_ops, recap, material_markup_percent, fab_markup_percent, tax_category
		FROM estimate_items
		WHERE project_id = ?
		ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: items: %w", op, err)
	}
	defer rows.Close()

	var items []*storage.Item
	byID := make(map[int64]*storage.Item)

	for rows.Next() {
		it := &storage.Item{}
		var coatingJSON, opsJSON, recapJSON []byte

		err := rows.Scan(&it.ID, &it.ProjectID, &it.ItemNumber, &it.Name, &it.DrawingRef,
			&it.CoatingUniform, &it.CoatingMixed, &coatingJSON, &opsJSON, &recapJSON,
			&it.MaterialMarkupPercent, &it.FabMarkupPercent, &it.TaxCategory)
		if err != nil {
			return nil, fmt.Errorf("%s: scan item: %w", op, err)
		}

		if err := unmarshalJSON(coatingJSON, &it.CoatingValues); err != nil {
			return nil, fmt.Errorf("%s: item %s coating values: %w", op, it.ItemNumber, err)
		}
		if err := unmarshalJSON(opsJSON, &it.GeneralOps); err != nil {
			return nil, fmt.Errorf("%s: item %s general ops: %w", op, it.ItemNumber, err)
		}
		if err := unmarshalJSON(recapJSON, &it.Recap); err != nil {
			return nil, fmt.Errorf("%s: item %s recap: %w", op, it.ItemNumber, err)
		}

		items = append(items, it)
		byID[it.ID] = it
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: items rows: %w", op, err)
	}

	if err := s.loadMaterials(ctx, projectID, byID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (s *Storage) loadMaterials(ctx context.Context, projectID int64, items map[int64]*storage.Item) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.item_id, m.parent_id, m.mark, m.category, m.shape, m.plate_thickness, m.plate_width,
			m.weight_per_foot_override, m.stock_length_override, m.pieces, m.length, m.galvanized,
			m.price_basis, m.unit_price, m.fab_operations
		FROM estimate_materials m
		JOIN estimate_items i ON i.id = m.item_id
		WHERE i.project_id = ?
		ORDER BY m.parent_id IS NOT NULL, m.sort_order, m.id`, projectID)
	if err != nil {
		return fmt.Errorf("materials: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*storage.Material)

	for rows.Next() {
		m := &storage.Material{}
		var (
			itemID                        int64
			parentID                      sql.NullInt64
			thickness, width, wpf, stockL sql.NullFloat64
			opsJSON                       []byte
		)

		err := rows.Scan(&m.ID, &itemID, &parentID, &m.Mark, &m.Category, &m.Shape, &thickness, &width,
			&wpf, &stockL, &m.Pieces, &m.Length, &m.Galvanized, &m.PriceBasis, &m.UnitPrice, &opsJSON)
		if err != nil {
			return fmt.Errorf("scan material: %w", err)
		}

		m.PlateThickness = nullFloat(thickness)
		m.PlateWidth = nullFloat(width)
		m.WeightPerFootOverride = nullFloat(wpf)
		m.StockLengthOverride = nullFloat(stockL)
		if err := unmarshalJSON(opsJSON, &m.FabOperations); err != nil {
			return fmt.Errorf("material %s operations: %w", m.Mark, err)
		}

		byID[m.ID] = m

		if parentID.Valid {
			if parent, ok := byID[parentID.Int64]; ok {
				parent.Children = append(parent.Children, m)
			}
			continue
		}
		if it, ok := items[itemID]; ok {
			it.Materials = append(it.Materials, m)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("materials rows: %w", err)
	}

	return nil
}

func (s *Storage) GetAdjustments(ctx context.Context, projectID int64) ([]storage.Adjustment, error) {
	const op = "storage.mysql.GetAdjustments"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount FROM estimate_adjustments WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var adjustments []storage.Adjustment
	for rows.Next() {
		var a storage.Adjustment
		if err := rows.Scan(&a.ID, &a.Description, &a.Amount); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		adjustments = append(adjustments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return adjustments, nil
}

// SaveCalculation writes the computed material and item fields in one transaction.
func (s *Storage) SaveCalculation(ctx context.Context, projectID int64, items []*storage.Item, totals []storage.ItemTotals) error {
	const op = "storage.mysql.SaveCalculation"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	matStmt, err := tx.PrepareContext(ctx, `
		UPDATE estimate_materials
		SET fab_operations = ?, weight_per_foot = ?, total_length = ?, fab_weight = ?, stock_length = ?,
			stock_length_overridden = ?, stock_unavailable = ?, stocks_required = ?, waste = ?, efficiency = ?,
			stock_weight = ?, material_cost = ?, fab_cost = ?
		WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("%s: prepare materials: %w", op, err)
	}
	defer matStmt.Close()

	for _, it := range items {
		for _, m := range it.Materials {
			if err := updateMaterial(ctx, matStmt, m); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			for _, c := range m.Children {
				if err := updateMaterial(ctx, matStmt, c); err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
			}
		}

		opsJSON, err := json.Marshal(it.GeneralOps)
		if err != nil {
			return fmt.Errorf("%s: item %s general ops: %w", op, it.ItemNumber, err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE estimate_items SET general_ops = ? WHERE id = ? AND project_id = ?`,
			opsJSON, it.ID, projectID); err != nil {
			return fmt.Errorf("%s: item %s: %w", op, it.ItemNumber, err)
		}
	}

	totalsStmt, err := tx.PrepareContext(ctx, `
		UPDATE estimate_items
		SET material_cost = ?, material_markup = ?, fab_cost = ?, fab_markup = ?, recap_total = ?,
			taxable_base = ?, tax = ?, total = ?, total_weight = ?
		WHERE id = ? AND project_id = ?`)
	if err != nil {
		return fmt.Errorf("%s: prepare totals: %w", op, err)
	}
	defer totalsStmt.Close()

	for _, t := range totals {
		_, err := totalsStmt.ExecContext(ctx, t.MaterialCost, t.MaterialMarkup, t.FabCost, t.FabMarkup,
			t.RecapTotal, t.TaxableBase, t.Tax, t.Total, t.TotalWeight, t.ItemID, projectID)
		if err != nil {
			return fmt.Errorf("%s: totals for item %s: %w", op, t.ItemNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func updateMaterial(ctx context.Context, stmt *sql.Stmt, m *storage.Material) error {
	opsJSON, err := json.Marshal(m.FabOperations)
	if err != nil {
		return fmt.Errorf("material %s operations: %w", m.Mark, err)
	}

	_, err = stmt.ExecContext(ctx, opsJSON, m.WeightPerFoot, m.TotalLength, m.FabWeight, m.StockLength,
		m.StockLengthOverridden, m.StockUnavailable, m.StocksRequired, m.Waste, m.Efficiency, m.StockWeight,
		m.MaterialCost, m.FabCost, m.ID)
	if err != nil {
		return fmt.Errorf("material %s: %w", m.Mark, err)
	}

	return nil
}

// SaveImportedItems inserts new items and materials and updates the merged
// fields of existing ones. New ids are written back onto the structs.
func (s *Storage) SaveImportedItems(ctx context.Context, projectID int64, items []*storage.Item) error {
	const op = "storage.mysql.SaveImportedItems"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	for _, it := range items {
		if err := saveItem(ctx, tx, projectID, it); err != nil {
			switch {
			case isMySQLError(err, errNoReferencedRow):
				return fmt.Errorf("%s: project %d: %w", op, projectID, storage.ErrNotFound)
			case isMySQLError(err, errDuplicateEntry):
				return fmt.Errorf("%s: item %s: %w", op, it.ItemNumber, storage.ErrConflict)
			}
			return fmt.Errorf("%s: item %s: %w", op, it.ItemNumber, err)
		}

		for i, m := range it.Materials {
			if err := saveMaterial(ctx, tx, it.ID, nil, i, m); err != nil {
				return fmt.Errorf("%s: item %s: %w", op, it.ItemNumber, err)
			}
			for j, c := range m.Children {
				if err := saveMaterial(ctx, tx, it.ID, &m.ID, j, c); err != nil {
					return fmt.Errorf("%s: item %s: %w", op, it.ItemNumber, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func saveItem(ctx context.Context, tx *sql.Tx, projectID int64, it *storage.Item) error {
	coatingJSON, err := json.Marshal(it.CoatingValues)
	if err != nil {
		return err
	}
	opsJSON, err := json.Marshal(it.GeneralOps)
	if err != nil {
		return err
	}

	if it.ID != 0 {
		_, err := tx.ExecContext(ctx, `
			UPDATE estimate_items
			SET name = ?, drawing_ref = ?, coating_uniform = ?, coating_mixed = ?, coating_values = ?, general_ops = ?
			WHERE id = ? AND project_id = ?`,
			it.Name, it.DrawingRef, it.CoatingUniform, it.CoatingMixed, coatingJSON, opsJSON, it.ID, projectID)
		return err
	}

	recapJSON, err := json.Marshal(it.Recap)
	if err != nil {
		return err
	}

	taxCategory := it.TaxCategory
	if taxCategory == "" {
		taxCategory = storage.TaxNone
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO estimate_items (project_id, item_number, name, drawing_ref, coating_uniform, coating_mixed,
			coating_values, general_ops, recap, material_markup_percent, fab_markup_percent, tax_category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		projectID, it.ItemNumber, it.Name, it.DrawingRef, it.CoatingUniform, it.CoatingMixed,
		coatingJSON, opsJSON, recapJSON, it.MaterialMarkupPercent, it.FabMarkupPercent, taxCategory)
	if err != nil {
		return err
	}

	it.ID, err = res.LastInsertId()
	return err
}

func saveMaterial(ctx context.Context, tx *sql.Tx, itemID int64, parentID *int64, order int, m *storage.Material) error {
	opsJSON, err := json.Marshal(m.FabOperations)
	if err != nil {
		return fmt.Errorf("material %s operations: %w", m.Mark, err)
	}

	if m.ID != 0 {
		_, err := tx.ExecContext(ctx, `
			UPDATE estimate_materials SET pieces = ?, galvanized = ?, fab_operations = ? WHERE id = ?`,
			m.Pieces, m.Galvanized, opsJSON, m.ID)
		if err != nil {
			return fmt.Errorf("material %s: %w", m.Mark, err)
		}
		return nil
	}

	var parent interface{}
	if parentID != nil {
		parent = *parentID
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO estimate_materials (item_id, parent_id, sort_order, mark, category, shape, plate_thickness,
			plate_width, weight_per_foot_override, stock_length_override, pieces, length, galvanized,
			price_basis, unit_price, fab_operations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		itemID, parent, order, m.Mark, m.Category, m.Shape, floatArg(m.PlateThickness),
		floatArg(m.PlateWidth), floatArg(m.WeightPerFootOverride), floatArg(m.StockLengthOverride),
		m.Pieces, m.Length, m.Galvanized, m.PriceBasis, m.UnitPrice, opsJSON)
	if err != nil {
		return fmt.Errorf("material %s: %w", m.Mark, err)
	}

	m.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("material %s: last insert id: %w", m.Mark, err)
	}

	return nil
}

func unmarshalJSON(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
