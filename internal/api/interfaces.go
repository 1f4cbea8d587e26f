package api

import (
	"context"

	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/salmondarat/Flow-sub001/internal/pricing"
)

// templateSource resolves a form template by id, falling back to the default.
type templateSource interface {
	Template(ctx context.Context, id string) (*form.Template, error)
}

// templateLister lists stored templates.
type templateLister interface {
	ListTemplates(ctx context.Context) ([]form.TemplateSummary, error)
}

// orderQuoter prices one or more order items.
type orderQuoter interface {
	ResolveOrder(ctx context.Context, items []pricing.Selection) (pricing.OrderQuote, error)
}

// catalogLister lists catalog records for the configuration endpoints.
type catalogLister interface {
	ListServices(ctx context.Context, activeOnly bool) ([]pricing.Service, error)
	ListComplexities(ctx context.Context, activeOnly bool) ([]pricing.ComplexityLevel, error)
	ListAddons(ctx context.Context, activeOnly bool) ([]pricing.Addon, error)
}
