package api

import "github.com/salmondarat/Flow-sub001/internal/form"

// TemplateResponse is a form template ready for rendering.
type TemplateResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	Version  int             `json:"version,omitempty"`
	Steps    []StepResponse  `json:"steps"`
	Services []ServiceOption `json:"services"`
	Pricing  PricingResponse `json:"pricing"`
}

// StepResponse is one wizard step. DescriptionHTML is the Markdown
// description rendered and sanitized.
type StepResponse struct {
	ID              string       `json:"id"`
	Order           int          `json:"order"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	DescriptionHTML string       `json:"description_html,omitempty"`
	Fields          []form.Field `json:"fields"`
}

// ServiceOption is a service offered by a template.
type ServiceOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PricingResponse is a template's pricing section. Decimals are strings.
type PricingResponse struct {
	BasePrice            int64             `json:"base_price"`
	ComplexityMultiplier map[string]string `json:"complexity_multiplier,omitempty"`
	ServicePricing       map[string]string `json:"service_pricing,omitempty"`
}

// TemplateListItem represents a stored template in list responses.
type TemplateListItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Version   int    `json:"version"`
	IsDefault bool   `json:"is_default"`
}

// ValidateRequest carries values to check against a template.
type ValidateRequest struct {
	Values map[string]any `json:"values"`
}

// ValidateResponse reports validation of submitted values. Values are the
// sanitized values that were checked.
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
	Values map[string]any    `json:"values"`
}

// CatalogServiceResponse represents a catalog service.
type CatalogServiceResponse struct {
	ID             string `json:"id"`
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	BasePriceCents int64  `json:"base_price_cents"`
	BaseDays       int    `json:"base_days"`
}

// ComplexityResponse represents a complexity tier.
type ComplexityResponse struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Multiplier string `json:"multiplier"`
}

// AddonResponse represents an add-on.
type AddonResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
}

// QuoteItemRequest selects one item to price. Either both catalog
// selectors or the legacy service_type/complexity pair must be set.
type QuoteItemRequest struct {
	ServiceID    string   `json:"service_id,omitempty"`
	ComplexityID string   `json:"complexity_id,omitempty"`
	ServiceType  string   `json:"service_type,omitempty"`
	Complexity   string   `json:"complexity,omitempty"`
	AddonIDs     []string `json:"addon_ids,omitempty"`
}

// QuoteRequest is the body of POST /api/v1/quotes.
type QuoteRequest struct {
	Items []QuoteItemRequest `json:"items"`
}

// QuoteItemResponse is one priced item.
type QuoteItemResponse struct {
	PriceCents     int64           `json:"price_cents"`
	Days           int             `json:"days"`
	BasePriceCents int64           `json:"base_price_cents"`
	BaseDays       int             `json:"base_days"`
	Multiplier     string          `json:"multiplier"`
	AddonCents     int64           `json:"addon_cents"`
	Addons         []AddonResponse `json:"addons,omitempty"`
	Source         string          `json:"source"`
	FallbackReason string          `json:"fallback_reason,omitempty"`
}

// QuoteResponse is a priced order.
type QuoteResponse struct {
	Items           []QuoteItemResponse `json:"items"`
	TotalPriceCents int64               `json:"total_price_cents"`
	TotalDays       int                 `json:"total_days"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
