package pricing

import (
	"context"
	"fmt"
	"log/slog"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/service/normalize"
	"steel-estimator/internal/service/takeoff"
	"steel-estimator/internal/storage"
)

// Enrich prices every member operation of the imported items. It returns copies;
// the input tree is left untouched, so enriching again after a pricing update
// gives the same result as enriching fresh.
func (r *Resolver) Enrich(ctx context.Context, items []*takeoff.Item) ([]*takeoff.Item, []takeoff.Warning, error) {
	const op = "pricing.Resolver.Enrich"

	var sizes []string
	for _, it := range items {
		for _, m := range it.Members {
			sizes = append(sizes, m.Size)
			for _, c := range m.Children {
				sizes = append(sizes, c.Size)
			}
		}
	}

	resolved, err := r.Resolve(ctx, sizes)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	laborRate, err := r.LaborRate(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	e := &enricher{
		resolver:  r,
		resolved:  resolved,
		laborRate: laborRate,
		reported:  make(map[string]bool),
	}

	out := make([]*takeoff.Item, 0, len(items))
	for _, it := range items {
		cp := *it
		cp.Members = make([]*takeoff.Member, 0, len(it.Members))
		for _, m := range it.Members {
			cp.Members = append(cp.Members, e.member(it.ItemNumber, m))
		}
		out = append(out, &cp)
	}

	if len(e.warnings) > 0 {
		r.log.Info("sizes without pricing",
			slog.String("op", op),
			slog.Int("count", len(e.warnings)),
		)
	}

	return out, e.warnings, nil
}

type enricher struct {
	resolver  *Resolver
	resolved  map[string]*Resolved
	laborRate float64
	reported  map[string]bool
	warnings  []takeoff.Warning
}

func (e *enricher) member(itemNumber string, m *takeoff.Member) *takeoff.Member {
	cp := *m
	key := normalize.SizeKey(m.Size)
	res := e.resolved[key]

	if res == nil && key != "" && !e.reported[key] {
		e.reported[key] = true
		e.warnings = append(e.warnings, takeoff.Warning{
			Kind:       takeoff.WarnUnresolvedPricing,
			ItemNumber: itemNumber,
			Mark:       m.Mark,
			Size:       m.Size,
			Message:    fmt.Sprintf("no beam or category pricing for %s, enter rates manually", m.Size),
		})
	}

	cp.Operations = e.resolver.PriceOperations(res, m.Operations, m.Galvanized, m.Pieces, e.laborRate)

	if m.Children != nil {
		cp.Children = make([]*takeoff.Member, 0, len(m.Children))
		for _, c := range m.Children {
			cp.Children = append(cp.Children, e.member(itemNumber, c))
		}
	}

	return &cp
}

// PriceOperations returns a priced copy of ops. When galvanized, the connection
// steel weight becomes a derived galvanizing line replacing any earlier one.
func (r *Resolver) PriceOperations(res *Resolved, ops []storage.FabOperation, galvanized bool, pieces int, laborRate float64) []storage.FabOperation {
	out := make([]storage.FabOperation, 0, len(ops)+1)
	connWeight := 0.0

	for _, o := range ops {
		if o.Name == constants.OpGalvanizingConnections {
			continue
		}

		if rate, weight, ok := OperationRate(res, o.Name, laborRate); ok {
			o.Rate = rate
			o.ConnectionWeight = weight
		}
		if o.ConnectionWeight != nil {
			connWeight += *o.ConnectionWeight * o.Quantity
		}
		o.TotalCost = LineCost(o.Quantity, o.Rate)

		out = append(out, o)
	}

	if galvanized && connWeight > 0 {
		galv := storage.FabOperation{
			Name:     constants.OpGalvanizingConnections,
			Quantity: connWeight * float64(pieces),
			Unit:     storage.UnitPound,
		}
		if r.galvanizingRate > 0 {
			rate := r.galvanizingRate
			galv.Rate = &rate
		}
		galv.TotalCost = LineCost(galv.Quantity, galv.Rate)
		out = append(out, galv)
	}

	return out
}
