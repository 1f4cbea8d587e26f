package pricing

import (
	"testing"

	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFromConfig_DefaultTemplateMatchesBuiltIn(t *testing.T) {
	got := TableFromConfig(form.Default().PricingConfig)
	want := DefaultLegacyTable()

	assert.Equal(t, want.Services, got.Services)
	require.Len(t, got.Multipliers, len(want.Multipliers))
	for c, m := range want.Multipliers {
		assert.Truef(t, m.Equal(got.Multipliers[c]), "multiplier %s: want %s, got %s", c, m, got.Multipliers[c])
	}
}

func TestTableFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       form.PricingConfig
		service   ServiceType
		wantCents int64
		wantDays  int
	}{
		{
			name:      "empty config keeps defaults",
			cfg:       form.PricingConfig{},
			service:   ServiceRepaint,
			wantCents: 250000,
			wantDays:  7,
		},
		{
			name: "weight scales base price",
			cfg: form.PricingConfig{
				BasePrice:      100000,
				ServicePricing: map[string]decimal.Decimal{"repair": decimal.RequireFromString("0.25")},
			},
			service:   ServiceRepair,
			wantCents: 25000,
			wantDays:  5,
		},
		{
			name: "unknown service gets default duration",
			cfg: form.PricingConfig{
				BasePrice:      1001,
				ServicePricing: map[string]decimal.Decimal{"weathering": decimal.RequireFromString("0.5")},
			},
			service:   "weathering",
			wantCents: 501,
			wantDays:  DefaultBaseDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := TableFromConfig(tt.cfg)
			svc, ok := table.Services[tt.service]
			require.True(t, ok)
			assert.Equal(t, tt.wantCents, svc.BasePriceCents)
			assert.Equal(t, tt.wantDays, svc.BaseDays)
		})
	}

	t.Run("multipliers overlay known tiers only", func(t *testing.T) {
		table := TableFromConfig(form.PricingConfig{
			ComplexityMultiplier: map[string]decimal.Decimal{
				"high":    decimal.RequireFromString("2.5"),
				"extreme": decimal.NewFromInt(4),
			},
		})
		assert.True(t, table.Multipliers[form.ComplexityHigh].Equal(decimal.RequireFromString("2.5")))
		assert.True(t, table.Multipliers[form.ComplexityLow].Equal(decimal.NewFromInt(1)))
		assert.Len(t, table.Multipliers, 3)
	})
}

func TestDefaultLegacyTable_Independent(t *testing.T) {
	a := DefaultLegacyTable()
	a.Services[ServiceRepair] = LegacyService{BasePriceCents: 1}
	assert.Equal(t, int64(150000), DefaultLegacyTable().Services[ServiceRepair].BasePriceCents)
}

func TestRoundInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0.4", 0},
		{"0.5", 1},
		{"7.5", 8},
		{"499.5", 500},
		{"499.49", 499},
		{"225000", 225000},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, roundInt(decimal.RequireFromString(tt.in)))
		})
	}
}
