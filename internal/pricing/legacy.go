package pricing

import (
	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/shopspring/decimal"
)

// ServiceType is the legacy fixed service enum.
type ServiceType string

const (
	ServiceFullBuild ServiceType = "full_build"
	ServiceRepair    ServiceType = "repair"
	ServiceRepaint   ServiceType = "repaint"
)

// DefaultBaseDays is used for legacy services with no known duration.
const DefaultBaseDays = 14

// LegacyService is a fixed base rate in the legacy table.
type LegacyService struct {
	BasePriceCents int64
	BaseDays       int
}

// LegacyTable is the static price table used when catalog selectors are
// not available.
type LegacyTable struct {
	Services    map[ServiceType]LegacyService
	Multipliers map[form.Complexity]decimal.Decimal
}

// DefaultLegacyTable returns the built-in constants. The catalog seed
// migration carries the same numbers.
func DefaultLegacyTable() LegacyTable {
	return LegacyTable{
		Services: map[ServiceType]LegacyService{
			ServiceFullBuild: {BasePriceCents: 500000, BaseDays: 14},
			ServiceRepair:    {BasePriceCents: 150000, BaseDays: 5},
			ServiceRepaint:   {BasePriceCents: 250000, BaseDays: 7},
		},
		Multipliers: map[form.Complexity]decimal.Decimal{
			form.ComplexityLow:    decimal.NewFromInt(1),
			form.ComplexityMedium: decimal.RequireFromString("1.5"),
			form.ComplexityHigh:   decimal.NewFromInt(2),
		},
	}
}

// TableFromConfig derives a legacy table from a template's pricing section.
// Each service listed in ServicePricing costs round(BasePrice * weight);
// durations come from the default table. Unlisted entries keep defaults.
func TableFromConfig(cfg form.PricingConfig) LegacyTable {
	table := DefaultLegacyTable()

	if cfg.BasePrice > 0 {
		base := decimal.NewFromInt(cfg.BasePrice)
		for id, weight := range cfg.ServicePricing {
			st := ServiceType(id)
			days := DefaultBaseDays
			if known, ok := table.Services[st]; ok {
				days = known.BaseDays
			}
			table.Services[st] = LegacyService{
				BasePriceCents: roundInt(base.Mul(weight)),
				BaseDays:       days,
			}
		}
	}

	for key, m := range cfg.ComplexityMultiplier {
		c := form.Complexity(key)
		if c.Valid() {
			table.Multipliers[c] = m
		}
	}

	return table
}

// roundInt rounds half away from zero, which is half-up for the
// non-negative amounts priced here.
func roundInt(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
