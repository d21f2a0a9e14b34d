package takeoff

import (
	"strings"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/storage"
)

// ToMaterial converts a member (and its children) into estimate materials.
func ToMaterial(m *Member) *storage.Material {
	mat := &storage.Material{
		Mark:          m.Mark,
		Category:      CategoryFor(m.Size),
		Shape:         m.Size,
		Pieces:        m.Pieces,
		Length:        m.Length,
		Galvanized:    m.Galvanized,
		PriceBasis:    storage.BasisWeight,
		FabOperations: cloneOps(m.Operations),
	}

	if mat.Category == storage.CategoryPlate {
		if t, w, ok := ParsePlate(m.Size); ok {
			mat.PlateThickness = &t
			mat.PlateWidth = &w
		}
	}
	if mat.Category == storage.CategoryCustom {
		mat.PriceBasis = storage.BasisPiece
	}

	for _, c := range m.Children {
		child := ToMaterial(c)
		child.Children = nil
		mat.Children = append(mat.Children, child)
	}

	return mat
}

// MergeIntoEstimate unions imported items into the estimate's items. Items match
// by item number and materials by mark: matching materials accumulate pieces and
// merge operations, new ones are appended. Nothing existing is overwritten.
func (t *Translator) MergeIntoEstimate(existing []*storage.Item, imported []*Item) []*storage.Item {
	out := make([]*storage.Item, len(existing))
	copy(out, existing)

	byNumber := make(map[string]*storage.Item, len(out))
	for _, it := range out {
		byNumber[it.ItemNumber] = it
	}

	for _, imp := range imported {
		target, ok := byNumber[imp.ItemNumber]
		if !ok {
			target = &storage.Item{
				ItemNumber:  imp.ItemNumber,
				Name:        imp.Name,
				TaxCategory: storage.TaxNone,
			}
			byNumber[imp.ItemNumber] = target
			out = append(out, target)
		}

		if target.Name == "" {
			target.Name = imp.Name
		}
		target.DrawingRef = unionRefs(target.DrawingRef, imp.DrawingRefs)

		if imp.Coating.Uniform != "" || imp.Coating.Mixed {
			target.CoatingUniform, target.CoatingMixed, target.CoatingValues =
				mergeCoating(target, imp.Coating)
		}
		target.GeneralOps = t.Merge(target.GeneralOps, imp.Operations)
		if target.CoatingMixed {
			target.GeneralOps = collapseCoating(target.GeneralOps)
		}

		for _, m := range imp.Members {
			t.mergeMaterial(target, ToMaterial(m))
		}
	}

	return out
}

func (t *Translator) mergeMaterial(item *storage.Item, in *storage.Material) {
	for _, cur := range item.Materials {
		if cur.Mark != in.Mark {
			continue
		}

		accumulate(t, cur, in)
		for _, child := range in.Children {
			if c := findMark(cur.Children, child.Mark); c != nil {
				accumulate(t, c, child)
			} else {
				cur.Children = append(cur.Children, child)
			}
		}
		return
	}

	item.Materials = append(item.Materials, in)
}

func accumulate(t *Translator, cur, in *storage.Material) {
	cur.Pieces += in.Pieces
	cur.Galvanized = cur.Galvanized || in.Galvanized
	cur.FabOperations = t.Merge(cur.FabOperations, in.FabOperations)
}

func findMark(mats []*storage.Material, mark string) *storage.Material {
	for _, m := range mats {
		if m.Mark == mark {
			return m
		}
	}
	return nil
}

func mergeCoating(item *storage.Item, c Coating) (string, bool, []string) {
	var values []string
	seen := make(map[string]bool)

	candidates := append([]string{item.CoatingUniform}, item.CoatingValues...)
	candidates = append(candidates, c.Uniform)
	candidates = append(candidates, c.Values...)
	for _, v := range candidates {
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}

	if len(values) == 1 && !item.CoatingMixed && !c.Mixed {
		return values[0], false, nil
	}
	return "", true, values
}

// collapseCoating replaces every coating operation with a single Coating-Mixed
// lot at the position of the first one. An existing Coating-Mixed rate wins,
// then the first priced coating.
func collapseCoating(ops []storage.FabOperation) []storage.FabOperation {
	var (
		out   []storage.FabOperation
		rate  *float64
		mixed bool
		at    = -1
	)

	for _, o := range ops {
		if !strings.HasPrefix(o.Name, constants.OpCoatingPrefix) {
			out = append(out, o)
			continue
		}
		if at < 0 {
			at = len(out)
		}
		switch {
		case o.Name == constants.OpCoatingMixed && o.Rate != nil && !mixed:
			rate, mixed = o.Rate, true
		case rate == nil && o.Rate != nil:
			rate = o.Rate
		}
	}

	if at < 0 {
		return ops
	}

	coat := storage.FabOperation{Name: constants.OpCoatingMixed, Quantity: 1, Unit: storage.UnitLot, Rate: rate}
	out = append(out, storage.FabOperation{})
	copy(out[at+1:], out[at:])
	out[at] = coat
	return out
}

func unionRefs(current string, refs []string) string {
	all := splitRefs(current)
	seen := make(map[string]bool, len(all))
	for _, r := range all {
		seen[r] = true
	}
	for _, r := range refs {
		if !seen[r] {
			seen[r] = true
			all = append(all, r)
		}
	}
	sortRefs(all)
	return strings.Join(all, ", ")
}

func cloneOps(ops []storage.FabOperation) []storage.FabOperation {
	if ops == nil {
		return nil
	}
	out := make([]storage.FabOperation, len(ops))
	copy(out, ops)
	return out
}
