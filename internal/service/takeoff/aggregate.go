package takeoff

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/storage"
)

// Member is one physical fabricated piece identified by its mark.
type Member struct {
	Mark        string                 `json:"mark"`
	IsParent    bool                   `json:"is_parent"`
	Base        string                 `json:"base"`
	Description string                 `json:"description"`
	Size        string                 `json:"size"`
	Length      float64                `json:"length"`
	Pieces      int                    `json:"pieces"`
	Galvanized  bool                   `json:"galvanized"`
	Operations  []storage.FabOperation `json:"operations"`
	Children    []*Member              `json:"children,omitempty"`
}

// Coating is the per-item coating resolution.
type Coating struct {
	Uniform string   `json:"uniform,omitempty"`
	Mixed   bool     `json:"mixed"`
	Values  []string `json:"values,omitempty"`
}

type Item struct {
	ItemNumber  string                 `json:"item_number"`
	Name        string                 `json:"name"`
	DrawingRefs []string               `json:"drawing_refs"`
	Members     []*Member              `json:"members"`
	Coating     Coating                `json:"coating"`
	Operations  []storage.FabOperation `json:"operations"`
}

// DrawingRef joins the item's drawing references for display and persistence.
func (i *Item) DrawingRef() string {
	return strings.Join(i.DrawingRefs, ", ")
}

type Stats struct {
	TotalItems   int `json:"total_items"`
	TotalMembers int `json:"total_members"`
	TotalFabOps  int `json:"total_fab_ops"`
}

type Result struct {
	ImportID     string        `json:"import_id"`
	Items        []*Item       `json:"items"`
	Stats        Stats         `json:"stats"`
	DroppedCodes []DroppedCode `json:"dropped_codes"`
	Warnings     []Warning     `json:"warnings"`
}

type Aggregator struct {
	log        *slog.Logger
	translator *Translator
}

func NewAggregator(log *slog.Logger, translator *Translator) *Aggregator {
	return &Aggregator{log: log, translator: translator}
}

type itemBucket struct {
	item     *Item
	refs     map[string]bool
	coatings []string
	members  map[string]*Member
	order    []string
}

// Aggregate groups rows into items and members. Pass one builds a flat
// mark -> member map per item; pass two links children to parents by base.
func (a *Aggregator) Aggregate(rows []Row) *Result {
	const op = "takeoff.Aggregator.Aggregate"

	res := &Result{}
	buckets := make(map[string]*itemBucket)
	var itemOrder []string

	for _, row := range rows {
		if row.ItemNumber == "" {
			continue
		}

		b, ok := buckets[row.ItemNumber]
		if !ok {
			b = &itemBucket{
				item:    &Item{ItemNumber: row.ItemNumber},
				refs:    make(map[string]bool),
				members: make(map[string]*Member),
			}
			buckets[row.ItemNumber] = b
			itemOrder = append(itemOrder, row.ItemNumber)
		}

		for _, ref := range splitRefs(row.DrawingRef) {
			if !b.refs[ref] {
				b.refs[ref] = true
				b.item.DrawingRefs = append(b.item.DrawingRefs, ref)
			}
		}
		if b.item.Name == "" {
			b.item.Name = row.ItemDescription
		}

		b.coatings = append(b.coatings, row.Coating)

		ops, dropped := a.translator.Operations(row)
		res.DroppedCodes = append(res.DroppedCodes, dropped...)
		for _, d := range dropped {
			a.log.Debug("unknown labor code dropped",
				slog.String("op", op),
				slog.String("column", d.Column),
				slog.String("code", d.Code),
				slog.Int("line", d.Line),
			)
		}

		mark := row.MemberMark
		synthesized := mark == ""
		if synthesized {
			mark = fmt.Sprintf("%s-%d", row.ItemNumber, row.Line)
		}

		m, ok := b.members[mark]
		if !ok {
			m = &Member{
				Mark:        mark,
				IsParent:    synthesized || isParentMark(mark),
				Base:        markBase(mark),
				Description: firstNonBlank(row.PartLabel, row.ItemDescription),
				Size:        row.ShapeSize,
				Length:      row.Length,
			}
			if synthesized {
				m.Base = mark
			}
			b.members[mark] = m
			b.order = append(b.order, mark)
		}

		if m.Size == "" {
			m.Size = row.ShapeSize
		}
		if m.Length == 0 {
			m.Length = row.Length
		}
		m.Pieces += row.Quantity
		m.Galvanized = m.Galvanized || row.Galvanized
		m.Operations = a.translator.Merge(m.Operations, ops)
	}

	for _, num := range itemOrder {
		b := buckets[num]
		b.item.Members = a.linkMembers(b, res)
		sortRefs(b.item.DrawingRefs)

		b.item.Coating = resolveCoating(b.coatings)
		if coat, ok := coatingOperation(b.item.Coating); ok {
			b.item.Operations = append(b.item.Operations, coat)
		}

		res.Items = append(res.Items, b.item)
	}

	res.Stats = CountStats(res.Items)

	return res
}

func (a *Aggregator) linkMembers(b *itemBucket, res *Result) []*Member {
	const op = "takeoff.Aggregator.linkMembers"

	parents := make(map[string]*Member)
	for _, mark := range b.order {
		m := b.members[mark]
		if _, seen := parents[m.Base]; m.IsParent && !seen {
			parents[m.Base] = m
		}
	}

	var top []*Member
	for _, mark := range b.order {
		m := b.members[mark]
		if m.IsParent {
			top = append(top, m)
			continue
		}

		if p, ok := parents[m.Base]; ok {
			p.Children = append(p.Children, m)
			continue
		}

		m.IsParent = true
		top = append(top, m)

		a.log.Warn("child mark has no parent, promoted",
			slog.String("op", op),
			slog.String("item", b.item.ItemNumber),
			slog.String("mark", m.Mark),
		)
		res.Warnings = append(res.Warnings, Warning{
			Kind:       WarnOrphanChildPromoted,
			ItemNumber: b.item.ItemNumber,
			Mark:       m.Mark,
			Message:    fmt.Sprintf("parent %q not found, %q imported as a parent", m.Base, m.Mark),
		})
	}

	return top
}

// CountStats totals items, members (parents and children) and operations.
func CountStats(items []*Item) Stats {
	s := Stats{TotalItems: len(items)}
	for _, it := range items {
		s.TotalFabOps += len(it.Operations)
		for _, m := range it.Members {
			s.TotalMembers++
			s.TotalFabOps += len(m.Operations)
			for _, c := range m.Children {
				s.TotalMembers++
				s.TotalFabOps += len(c.Operations)
			}
		}
	}
	return s
}

// isParentMark: no dot, or a ".0" suffix.
func isParentMark(mark string) bool {
	return !strings.Contains(mark, ".") || strings.HasSuffix(mark, ".0")
}

func markBase(mark string) string {
	if i := strings.Index(mark, "."); i >= 0 {
		return mark[:i]
	}
	return mark
}

func resolveCoating(values []string) Coating {
	var (
		distinct []string
		seen     = make(map[string]bool)
		blank    bool
	)

	for _, v := range values {
		if v == "" {
			blank = true
			continue
		}
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}

	switch {
	case len(distinct) == 0:
		return Coating{}
	case len(distinct) == 1 && !blank:
		return Coating{Uniform: distinct[0]}
	default:
		return Coating{Mixed: true, Values: distinct}
	}
}

func coatingOperation(c Coating) (storage.FabOperation, bool) {
	switch {
	case c.Uniform != "":
		return storage.FabOperation{Name: constants.OpCoatingPrefix + c.Uniform, Quantity: 1, Unit: storage.UnitLot}, true
	case c.Mixed:
		return storage.FabOperation{Name: constants.OpCoatingMixed, Quantity: 1, Unit: storage.UnitLot}, true
	}
	return storage.FabOperation{}, false
}

func splitRefs(v string) []string {
	var refs []string
	for _, r := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' }) {
		if r = strings.TrimSpace(r); r != "" {
			refs = append(refs, r)
		}
	}
	return refs
}

// sortRefs orders references by their first number, then lexically.
func sortRefs(refs []string) {
	sort.SliceStable(refs, func(i, j int) bool {
		ni, okI := leadingNumber(refs[i])
		nj, okJ := leadingNumber(refs[j])
		switch {
		case okI && okJ && ni != nj:
			return ni < nj
		case okI != okJ:
			return okI
		}
		return refs[i] < refs[j]
	})
}

func leadingNumber(s string) (float64, bool) {
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(s[start:end], "."), 64)
	return n, err == nil
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
