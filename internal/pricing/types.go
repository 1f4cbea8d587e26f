// Package pricing resolves the price and duration of order items from the
// service catalog (base rates, complexity multipliers, per-service overrides,
// add-ons), with an explicit fallback to the static legacy table.
package pricing

import (
	"slices"

	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/shopspring/decimal"
)

// Service is a catalog service record.
type Service struct {
	ID             string
	Slug           string
	Name           string
	Description    string
	BasePriceCents int64
	BaseDays       int
	IsActive       bool
}

// ComplexityLevel is a catalog complexity tier with its default multiplier.
type ComplexityLevel struct {
	ID         string
	Slug       string
	Name       string
	Multiplier decimal.Decimal
	IsActive   bool
}

// Override replaces a complexity's default multiplier for one service.
type Override struct {
	ServiceID          string
	ComplexityID       string
	OverrideMultiplier decimal.Decimal
}

// Addon is an independently priced extra.
type Addon struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	IsActive    bool
}

// Source tells which path produced a quote.
type Source string

const (
	SourceDynamic Source = "dynamic"
	SourceLegacy  Source = "legacy"
)

// Selection identifies what to price. ServiceID/ComplexityID are catalog
// selectors (id or slug); ServiceType/Complexity are the legacy enum pair.
type Selection struct {
	ServiceID    string          `json:"service_id,omitempty"`
	ComplexityID string          `json:"complexity_id,omitempty"`
	ServiceType  ServiceType     `json:"service_type,omitempty"`
	Complexity   form.Complexity `json:"complexity,omitempty"`
	AddonIDs     []string        `json:"addon_ids,omitempty"`
}

// HasDynamic reports whether both catalog selectors are present.
func (s Selection) HasDynamic() bool {
	return s.ServiceID != "" && s.ComplexityID != ""
}

// HasLegacy reports whether the legacy enum pair is present.
func (s Selection) HasLegacy() bool {
	return s.ServiceType != "" && s.Complexity != ""
}

// SelectionFromValues builds a selection from a submitted form data bag
// using the service_id, complexity_id, service_type, complexity and
// addon_ids keys.
func SelectionFromValues(values map[string]any) Selection {
	str := func(key string) string {
		s, _ := values[key].(string)
		return s
	}

	sel := Selection{
		ServiceID:    str("service_id"),
		ComplexityID: str("complexity_id"),
		ServiceType:  ServiceType(str("service_type")),
		Complexity:   form.Complexity(str("complexity")),
	}

	switch ids := values["addon_ids"].(type) {
	case []string:
		sel.AddonIDs = slices.Clone(ids)
	case []any:
		for _, v := range ids {
			if s, ok := v.(string); ok {
				sel.AddonIDs = append(sel.AddonIDs, s)
			}
		}
	}
	return sel
}

// Quote is the resolved price and duration of one item. PriceCents includes
// add-ons.
type Quote struct {
	PriceCents     int64
	Days           int
	BasePriceCents int64
	BaseDays       int
	Multiplier     decimal.Decimal
	AddonCents     int64
	Addons         []Addon
	Source         Source
	// Fallback holds the dynamic-path failure when the legacy table was used instead.
	Fallback error
}

// OrderQuote sums independently resolved items.
type OrderQuote struct {
	Items      []Quote
	PriceCents int64
	Days       int
}
