package takeoff

import (
	"regexp"
	"strings"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/storage"
)

var compoundSep = regexp.MustCompile(`\s*\+\s*`)

// Translator turns the labor columns of a row into fabrication operations.
type Translator struct {
	codes *constants.LaborCodes
}

func NewTranslator(codes *constants.LaborCodes) *Translator {
	return &Translator{codes: codes}
}

// Operations returns the row's operations in column order (end 1, end 2, holes,
// weld, connection, prep), merged with the accumulate/first-wins rule, plus every
// code that no table recognised. Coating is resolved per item, not here.
func (t *Translator) Operations(row Row) ([]storage.FabOperation, []DroppedCode) {
	var (
		ops     []storage.FabOperation
		dropped []DroppedCode
	)

	add := func(name string, qty float64) {
		ops = t.Merge(ops, []storage.FabOperation{newOp(name, qty)})
	}
	drop := func(column, code string) {
		dropped = append(dropped, DroppedCode{Column: column, Code: code, Line: row.Line})
	}

	for _, end := range []struct{ column, value string }{
		{constants.ColEnd1, row.End1},
		{constants.ColEnd2, row.End2},
	} {
		for _, code := range splitCompound(end.value) {
			if name, ok := lookup(t.codes.EndCut, code); ok {
				add(name, 1)
			} else {
				drop(end.column, code)
			}
		}
	}

	if row.HoleType != "" {
		if name, ok := lookup(t.codes.Hole, row.HoleType); ok {
			add(name, float64(atLeastOne(row.HoleCount)))
		} else {
			drop(constants.ColHoleType, row.HoleType)
		}
	}

	if row.WeldType != "" {
		if name, ok := lookup(t.codes.Weld, row.WeldType); ok {
			add(name, 1)
		} else {
			drop(constants.ColWeldType, row.WeldType)
		}
	}

	if row.ConnectionType != "" {
		if kind, ok := lookup(t.codes.Connection, row.ConnectionType); ok {
			add(connectionOperation(kind, row.ShapeSize), float64(atLeastOne(row.ConnectionCount)))
		} else {
			drop(constants.ColConnectionType, row.ConnectionType)
		}
	}

	if row.Prep != "" {
		if name, ok := lookup(t.codes.Prep, row.Prep); ok {
			add(name, 1)
		} else {
			drop(constants.ColPrep, row.Prep)
		}
	}

	return ops, dropped
}

// Merge folds incoming into existing by operation name. Accumulating operations
// add quantities; any other duplicate is discarded. existing is not modified.
func (t *Translator) Merge(existing, incoming []storage.FabOperation) []storage.FabOperation {
	out := make([]storage.FabOperation, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	for _, in := range incoming {
		idx := -1
		for i := range out {
			if out[i].Name == in.Name {
				idx = i
				break
			}
		}

		switch {
		case idx < 0:
			out = append(out, in)
		case t.codes.Accumulate[in.Name]:
			out[idx].Quantity += in.Quantity
			if out[idx].Rate != nil {
				out[idx].TotalCost = out[idx].Quantity * *out[idx].Rate
			}
		}
	}

	return out
}

func newOp(name string, qty float64) storage.FabOperation {
	return storage.FabOperation{Name: name, Quantity: qty, Unit: storage.UnitEach}
}

func lookup(table map[string]string, code string) (string, bool) {
	key := strings.ToUpper(strings.Join(strings.Fields(code), " "))
	name, ok := table[key]
	return name, ok
}

func splitCompound(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}

	var codes []string
	for _, c := range compoundSep.Split(v, -1) {
		if c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// connectionOperation picks the WF or C/MC connection operation from the shape.
func connectionOperation(kind, shape string) string {
	channel := isChannel(shape)
	switch {
	case kind == constants.ConnMoment && channel:
		return constants.OpConnMomentC
	case kind == constants.ConnMoment:
		return constants.OpConnMomentWF
	case channel:
		return constants.OpConnStandardC
	default:
		return constants.OpConnStandardWF
	}
}

func isChannel(shape string) bool {
	s := strings.ToUpper(strings.TrimSpace(shape))
	if strings.HasPrefix(s, "MC") {
		return true
	}
	return len(s) > 1 && s[0] == 'C' && s[1] >= '0' && s[1] <= '9'
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
