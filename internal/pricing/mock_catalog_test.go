package pricing

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockCatalog is a testify mock of Catalog.
type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetService(ctx context.Context, selector string) (*Service, error) {
	args := m.Called(ctx, selector)
	svc, _ := args.Get(0).(*Service)
	return svc, args.Error(1)
}

func (m *mockCatalog) GetComplexity(ctx context.Context, selector string) (*ComplexityLevel, error) {
	args := m.Called(ctx, selector)
	level, _ := args.Get(0).(*ComplexityLevel)
	return level, args.Error(1)
}

func (m *mockCatalog) GetOverride(ctx context.Context, serviceSelector, complexitySelector string) (*Override, error) {
	args := m.Called(ctx, serviceSelector, complexitySelector)
	ov, _ := args.Get(0).(*Override)
	return ov, args.Error(1)
}

func (m *mockCatalog) GetAddons(ctx context.Context, ids []string, activeOnly bool) ([]Addon, error) {
	args := m.Called(ctx, ids, activeOnly)
	addons, _ := args.Get(0).([]Addon)
	return addons, args.Error(1)
}
