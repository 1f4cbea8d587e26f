package pricing

import "context"

// Catalog is the read-only data source the resolver prices from. Lookups
// return nil without error when nothing matches; selectors are ids or slugs.
type Catalog interface {
	GetService(ctx context.Context, selector string) (*Service, error)
	GetComplexity(ctx context.Context, selector string) (*ComplexityLevel, error)
	GetOverride(ctx context.Context, serviceSelector, complexitySelector string) (*Override, error)
	GetAddons(ctx context.Context, ids []string, activeOnly bool) ([]Addon, error)
}
