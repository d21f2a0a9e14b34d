package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"steel-estimator/internal/service/normalize"
	"steel-estimator/internal/storage"
)

const (
	SourceBeam     = "beam"
	SourceCategory = "category"
)

type PricingStorage interface {
	GetBeamPricing(ctx context.Context, sizes []string) (map[string]*storage.PricingRow, error)
	GetShapeCategories(ctx context.Context) ([]*storage.ShapeCategory, error)
	GetShopLaborRate(ctx context.Context) (float64, error)
}

// Resolved is the pricing record a size resolved to. Parent is the shape
// category behind a beam row, used when the beam row has no labor hours.
type Resolved struct {
	Size   string                 `json:"size"`
	Source string                 `json:"source"`
	Row    *storage.PricingRow    `json:"pricing"`
	Parent *storage.ShapeCategory `json:"category,omitempty"`
}

// Resolver looks sizes up in the pricing store: exact beam row first, then the
// shape category covering the size prefix. Results, including misses, are
// memoized per size key until Invalidate.
type Resolver struct {
	log              *slog.Logger
	storage          PricingStorage
	defaultLaborRate float64
	galvanizingRate  float64

	mu        sync.RWMutex
	cache     map[string]*Resolved
	laborRate *float64
	group     singleflight.Group
}

func NewResolver(log *slog.Logger, storage PricingStorage, defaultLaborRate, galvanizingRate float64) *Resolver {
	return &Resolver{
		log:              log,
		storage:          storage,
		defaultLaborRate: defaultLaborRate,
		galvanizingRate:  galvanizingRate,
		cache:            make(map[string]*Resolved),
	}
}

// Resolve returns one entry per distinct size key. A nil entry means the size
// has no pricing and the estimator enters rates by hand.
func (r *Resolver) Resolve(ctx context.Context, sizes []string) (map[string]*Resolved, error) {
	const op = "pricing.Resolver.Resolve"

	out, _, err := r.resolve(ctx, sizes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// LaborRate is the shop labor rate from the last load.
func (r *Resolver) LaborRate(ctx context.Context) (float64, error) {
	const op = "pricing.Resolver.LaborRate"

	_, rate, err := r.resolve(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return rate, nil
}

// loaded is one store round trip. Callers take the labor rate from here, not
// from the shared field, which Invalidate may clear at any time.
type loaded struct {
	resolved  map[string]*Resolved
	laborRate float64
}

func (r *Resolver) resolve(ctx context.Context, sizes []string) (map[string]*Resolved, float64, error) {
	keys := uniqueKeys(sizes)
	out := make(map[string]*Resolved, len(keys))

	var misses []string
	r.mu.RLock()
	for _, k := range keys {
		if res, ok := r.cache[k]; ok {
			out[k] = res
		} else {
			misses = append(misses, k)
		}
	}
	rate := r.laborRate
	r.mu.RUnlock()

	if len(misses) == 0 && rate != nil {
		return out, *rate, nil
	}

	v, err, _ := r.group.Do(strings.Join(misses, ","), func() (interface{}, error) {
		return r.load(ctx, misses)
	})
	if err != nil {
		return nil, 0, err
	}

	l := v.(*loaded)
	for k, res := range l.resolved {
		out[k] = res
	}

	return out, l.laborRate, nil
}

// Invalidate drops every memoized lookup. Called after pricing writes.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.cache = make(map[string]*Resolved)
	r.laborRate = nil
	r.mu.Unlock()
}

func (r *Resolver) load(ctx context.Context, keys []string) (*loaded, error) {
	const op = "pricing.Resolver.load"

	var (
		beams      map[string]*storage.PricingRow
		categories []*storage.ShapeCategory
		laborRate  float64
	)

	g, gCtx := errgroup.WithContext(ctx)
	if len(keys) > 0 {
		g.Go(func() error {
			var err error
			beams, err = r.storage.GetBeamPricing(gCtx, keys)
			if err != nil {
				return fmt.Errorf("beams: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			categories, err = r.storage.GetShapeCategories(gCtx)
			if err != nil {
				return fmt.Errorf("categories: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		rate, err := r.storage.GetShopLaborRate(gCtx)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			laborRate = r.defaultLaborRate
		case err != nil:
			return fmt.Errorf("labor rate: %w", err)
		default:
			laborRate = rate
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idx := newCategoryIndex(categories)
	out := make(map[string]*Resolved, len(keys))
	for _, k := range keys {
		out[k] = idx.resolve(k, beams[k])
		if out[k] == nil {
			r.log.Debug("no pricing for size", slog.String("op", op), slog.String("size", k))
		}
	}

	r.mu.Lock()
	for k, res := range out {
		r.cache[k] = res
	}
	r.laborRate = &laborRate
	r.mu.Unlock()

	return &loaded{resolved: out, laborRate: laborRate}, nil
}

type categoryIndex struct {
	byPrefix map[string]*storage.ShapeCategory
	byID     map[int64]*storage.ShapeCategory
}

// newCategoryIndex keys categories as "{shapeType}:{prefix}" for every prefix
// in their comma separated list.
func newCategoryIndex(categories []*storage.ShapeCategory) *categoryIndex {
	idx := &categoryIndex{
		byPrefix: make(map[string]*storage.ShapeCategory),
		byID:     make(map[int64]*storage.ShapeCategory),
	}

	for _, c := range categories {
		idx.byID[c.ID] = c
		shapeType := normalize.SizeKey(c.ShapeType)
		for _, p := range strings.Split(c.Prefixes, ",") {
			p = normalize.SizeKey(p)
			if p == "" {
				continue
			}
			key := shapeType + ":" + p
			if _, exists := idx.byPrefix[key]; !exists {
				idx.byPrefix[key] = c
			}
		}
	}

	return idx
}

func (idx *categoryIndex) resolve(key string, beam *storage.PricingRow) *Resolved {
	shapeType, prefix := splitSize(key)
	cat := idx.byPrefix[shapeType+":"+prefix]
	if cat == nil {
		cat = idx.byPrefix[shapeType+":"+shapeType]
	}

	if beam != nil {
		parent := cat
		if beam.CategoryID != nil {
			if c, ok := idx.byID[*beam.CategoryID]; ok {
				parent = c
			}
		}
		return &Resolved{Size: key, Source: SourceBeam, Row: beam, Parent: parent}
	}

	if cat != nil {
		return &Resolved{Size: key, Source: SourceCategory, Row: &cat.PricingRow, Parent: cat}
	}

	return nil
}

// splitSize returns the leading letters ("W", "MC") and the letters plus the
// first run of digits ("W12", "MC10").
func splitSize(key string) (shapeType, prefix string) {
	i := 0
	for i < len(key) && key[i] >= 'A' && key[i] <= 'Z' {
		i++
	}
	j := i
	for j < len(key) && key[j] >= '0' && key[j] <= '9' {
		j++
	}
	return key[:i], key[:j]
}

func uniqueKeys(sizes []string) []string {
	seen := make(map[string]bool, len(sizes))
	var keys []string
	for _, s := range sizes {
		k := normalize.SizeKey(s)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
