package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Resolver computes item prices and durations.
type Resolver struct {
	catalog Catalog
	legacy  LegacyTable
	logger  *slog.Logger
}

// ResolverOption is a functional option for configuring a Resolver.
type ResolverOption func(*Resolver)

// WithLegacyTable sets the table used by the legacy path.
func WithLegacyTable(table LegacyTable) ResolverOption {
	return func(r *Resolver) {
		r.legacy = table
	}
}

// WithLogger sets a custom logger for the resolver.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver. catalog may be nil, in which case only the
// legacy path is available and add-on ids are ignored.
func NewResolver(catalog Catalog, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		catalog: catalog,
		legacy:  DefaultLegacyTable(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve prices one selection. Catalog selectors take the dynamic path.
// When that path fails to read the catalog (not when a record is invalid)
// and a legacy pair is present, the legacy table is used and the dynamic
// failure is kept in Quote.Fallback.
func (r *Resolver) Resolve(ctx context.Context, sel Selection) (Quote, error) {
	switch {
	case sel.HasDynamic():
		q, err := r.ResolveDynamic(ctx, sel.ServiceID, sel.ComplexityID, sel.AddonIDs)
		if err == nil {
			return q, nil
		}
		if !errors.Is(err, ErrCatalogUnavailable) || !sel.HasLegacy() {
			return Quote{}, err
		}

		r.logger.Warn("dynamic pricing failed, using legacy table",
			"service", sel.ServiceID,
			"complexity", sel.ComplexityID,
			"error", err,
		)
		lq, lerr := r.ResolveLegacy(ctx, sel.ServiceType, sel.Complexity, sel.AddonIDs)
		if lerr != nil {
			return Quote{}, fmt.Errorf("legacy fallback: %w (dynamic: %v)", lerr, err)
		}
		lq.Fallback = err
		return lq, nil

	case sel.HasLegacy():
		return r.ResolveLegacy(ctx, sel.ServiceType, sel.Complexity, sel.AddonIDs)

	default:
		return Quote{}, ErrNoSelection
	}
}

// ResolveDynamic prices from the catalog. Service, complexity, override and
// add-on reads run concurrently and all complete before the total is built.
func (r *Resolver) ResolveDynamic(ctx context.Context, serviceSel, complexitySel string, addonIDs []string) (Quote, error) {
	if r.catalog == nil {
		return Quote{}, fmt.Errorf("%w: no catalog configured", ErrCatalogUnavailable)
	}

	var (
		svc    *Service
		level  *ComplexityLevel
		ov     *Override
		addons []Addon
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if svc, err = r.catalog.GetService(gctx, serviceSel); err != nil {
			return fmt.Errorf("%w: get service: %w", ErrCatalogUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if level, err = r.catalog.GetComplexity(gctx, complexitySel); err != nil {
			return fmt.Errorf("%w: get complexity: %w", ErrCatalogUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if ov, err = r.catalog.GetOverride(gctx, serviceSel, complexitySel); err != nil {
			return fmt.Errorf("%w: get override: %w", ErrCatalogUnavailable, err)
		}
		return nil
	})
	if len(addonIDs) > 0 {
		g.Go(func() error {
			var err error
			if addons, err = r.catalog.GetAddons(gctx, addonIDs, true); err != nil {
				return fmt.Errorf("%w: get addons: %w", ErrCatalogUnavailable, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Quote{}, err
	}

	if svc == nil || !svc.IsActive {
		return Quote{}, fmt.Errorf("%w: %s", ErrInvalidService, serviceSel)
	}
	if level == nil || !level.IsActive {
		return Quote{}, fmt.Errorf("%w: %s", ErrInvalidComplexity, complexitySel)
	}

	multiplier := level.Multiplier
	if ov != nil {
		multiplier = ov.OverrideMultiplier
	}

	q := price(svc.BasePriceCents, svc.BaseDays, multiplier, SourceDynamic)
	applyAddons(&q, addonIDs, addons)
	return q, nil
}

// ResolveLegacy prices from the static table. Add-ons are still read from
// the catalog when one is configured.
func (r *Resolver) ResolveLegacy(ctx context.Context, st ServiceType, c form.Complexity, addonIDs []string) (Quote, error) {
	svc, ok := r.legacy.Services[st]
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrInvalidService, st)
	}
	multiplier, ok := r.legacy.Multipliers[c]
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrInvalidComplexity, c)
	}

	q := price(svc.BasePriceCents, svc.BaseDays, multiplier, SourceLegacy)

	if len(addonIDs) == 0 {
		return q, nil
	}
	if r.catalog == nil {
		r.logger.Warn("no catalog configured, ignoring add-ons", "addon_ids", addonIDs)
		return q, nil
	}

	addons, err := r.catalog.GetAddons(ctx, addonIDs, true)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: get addons: %w", ErrCatalogUnavailable, err)
	}
	applyAddons(&q, addonIDs, addons)
	return q, nil
}

// ResolveOrder prices every item independently and sums them. Days are
// rounded per item before summing. There is no cross-item discount.
func (r *Resolver) ResolveOrder(ctx context.Context, items []Selection) (OrderQuote, error) {
	quotes := make([]Quote, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			q, err := r.Resolve(gctx, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			quotes[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return OrderQuote{}, err
	}

	return OrderQuote{
		Items:      quotes,
		PriceCents: lo.SumBy(quotes, func(q Quote) int64 { return q.PriceCents }),
		Days:       lo.SumBy(quotes, func(q Quote) int { return q.Days }),
	}, nil
}

func price(baseCents int64, baseDays int, multiplier decimal.Decimal, src Source) Quote {
	return Quote{
		PriceCents:     roundInt(decimal.NewFromInt(baseCents).Mul(multiplier)),
		Days:           int(roundInt(decimal.NewFromInt(int64(baseDays)).Mul(multiplier))),
		BasePriceCents: baseCents,
		BaseDays:       baseDays,
		Multiplier:     multiplier,
		Source:         src,
	}
}

// applyAddons adds active add-ons that were actually requested. Unknown or
// inactive ids contribute nothing.
func applyAddons(q *Quote, requested []string, fetched []Addon) {
	applied := lo.UniqBy(lo.Filter(fetched, func(a Addon, _ int) bool {
		return a.IsActive && lo.Contains(requested, a.ID)
	}), func(a Addon) string { return a.ID })

	q.Addons = applied
	q.AddonCents = lo.SumBy(applied, func(a Addon) int64 { return a.PriceCents })
	q.PriceCents += q.AddonCents
}
