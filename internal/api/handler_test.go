package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/salmondarat/Flow-sub001/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuoter struct {
	err   error
	items []pricing.Selection
}

func (s *stubQuoter) ResolveOrder(_ context.Context, items []pricing.Selection) (pricing.OrderQuote, error) {
	s.items = items
	return pricing.OrderQuote{}, s.err
}

type stubCatalog struct {
	err error
}

func (s *stubCatalog) ListServices(context.Context, bool) ([]pricing.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []pricing.Service{{ID: "u1", Slug: "repair", Name: "Repair", BasePriceCents: 150000, BaseDays: 5, IsActive: true}}, nil
}

func (s *stubCatalog) ListComplexities(context.Context, bool) ([]pricing.ComplexityLevel, error) {
	return []pricing.ComplexityLevel{{ID: "c1", Slug: "medium", Name: "Medium", Multiplier: decimal.RequireFromString("1.5"), IsActive: true}}, nil
}

func (s *stubCatalog) ListAddons(context.Context, bool) ([]pricing.Addon, error) {
	return []pricing.Addon{{ID: "a1", Name: "Stand", PriceCents: 50000, IsActive: true}}, nil
}

type errSource struct{ err error }

func (s errSource) Template(context.Context, string) (*form.Template, error) { return nil, s.err }

func newTestMux(t *testing.T, opts ...Option) *http.ServeMux {
	t.Helper()
	return newTestMuxWith(t, form.NewFallbackSource(nil), pricing.NewResolver(nil), opts...)
}

func newTestMuxWith(t *testing.T, src templateSource, q orderQuoter, opts ...Option) *http.ServeMux {
	t.Helper()
	h, err := New(src, q, opts...)
	require.NoError(t, err)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestNew(t *testing.T) {
	src := form.NewFallbackSource(nil)
	res := pricing.NewResolver(nil)

	t.Run("nil template source returns error", func(t *testing.T) {
		h, err := New(nil, res)
		assert.Nil(t, h)
		assert.ErrorContains(t, err, "template source")
	})

	t.Run("nil resolver returns error", func(t *testing.T) {
		h, err := New(src, nil)
		assert.Nil(t, h)
		assert.ErrorContains(t, err, "pricing resolver")
	})

	t.Run("valid dependencies returns handler", func(t *testing.T) {
		h, err := New(src, res)
		assert.NoError(t, err)
		assert.NotNil(t, h)
	})
}

func TestGetDefaultTemplate(t *testing.T) {
	rec := do(newTestMux(t), http.MethodGet, "/api/v1/form-templates/default", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decode[TemplateResponse](t, rec)
	assert.Equal(t, form.DefaultTemplateID, got.ID)
	require.Len(t, got.Steps, 4)
	for i := 1; i < len(got.Steps); i++ {
		assert.Less(t, got.Steps[i-1].Order, got.Steps[i].Order)
	}
	assert.Equal(t, "1.5", got.Pricing.ComplexityMultiplier["medium"])
	assert.Len(t, got.Services, 3)

	withDescription := 0
	for _, s := range got.Steps {
		if s.Description != "" {
			withDescription++
			assert.NotContains(t, s.DescriptionHTML, "<script")
			assert.Contains(t, s.DescriptionHTML, "<p>")
		}
	}
	assert.Positive(t, withDescription)
}

func TestGetTemplate(t *testing.T) {
	t.Run("unknown id falls back to default", func(t *testing.T) {
		rec := do(newTestMux(t), http.MethodGet, "/api/v1/form-templates/missing", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, form.DefaultTemplateID, decode[TemplateResponse](t, rec).ID)
	})

	t.Run("not found from source", func(t *testing.T) {
		mux := newTestMuxWith(t, errSource{err: form.ErrTemplateNotFound}, pricing.NewResolver(nil))
		rec := do(mux, http.MethodGet, "/api/v1/form-templates/x", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("source failure", func(t *testing.T) {
		mux := newTestMuxWith(t, errSource{err: errors.New("db down")}, pricing.NewResolver(nil))
		rec := do(mux, http.MethodGet, "/api/v1/form-templates/x", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "failed to load template", decode[ErrorResponse](t, rec).Error)
	})
}

func TestListTemplates_WithoutStore(t *testing.T) {
	rec := do(newTestMux(t), http.MethodGet, "/api/v1/form-templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]TemplateListItem](t, rec)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsDefault)
}

func TestValidateValues(t *testing.T) {
	mux := newTestMux(t)

	t.Run("invalid values report per-field errors", func(t *testing.T) {
		rec := do(mux, http.MethodPost, "/api/v1/form-templates/default/validate",
			`{"values":{"service_type":"laser_etch","complexity":"low","quantity":0}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		got := decode[ValidateResponse](t, rec)
		assert.False(t, got.Valid)
		assert.Contains(t, got.Errors, "service_type")
		assert.Contains(t, got.Errors, "quantity")
		assert.NotContains(t, got.Errors, "complexity")
	})

	t.Run("single step", func(t *testing.T) {
		rec := do(mux, http.MethodPost, "/api/v1/form-templates/default/validate?step=service",
			`{"values":{"service_type":"repair","complexity":"high"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[ValidateResponse](t, rec)
		assert.True(t, got.Valid)
		assert.Empty(t, got.Errors)
	})

	t.Run("markup is stripped from text", func(t *testing.T) {
		rec := do(mux, http.MethodPost, "/api/v1/form-templates/default/validate?step=details",
			`{"values":{"title":"<b>Zaku</b> II","undeclared":"x"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[ValidateResponse](t, rec)
		assert.Equal(t, "Zaku II", got.Values["title"])
		assert.NotContains(t, got.Values, "undeclared")
	})

	t.Run("plain text is not entity-encoded", func(t *testing.T) {
		title := strings.Repeat("a", 116) + " & b"
		body, err := json.Marshal(ValidateRequest{Values: map[string]any{
			"title": title,
			"name":  "O'Brien & Sons",
		}})
		require.NoError(t, err)

		rec := do(mux, http.MethodPost, "/api/v1/form-templates/default/validate", string(body))
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[ValidateResponse](t, rec)
		assert.Equal(t, "O'Brien & Sons", got.Values["name"])
		assert.Equal(t, title, got.Values["title"])
		assert.NotContains(t, got.Errors, "title")
		assert.NotContains(t, got.Errors, "name")
	})

	t.Run("unknown step", func(t *testing.T) {
		rec := do(mux, http.MethodPost, "/api/v1/form-templates/default/validate?step=nope", `{"values":{}}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(mux, http.MethodPost, "/api/v1/form-templates/default/validate", `{"values":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateQuote(t *testing.T) {
	mux := newTestMux(t)

	t.Run("legacy items are priced and summed", func(t *testing.T) {
		rec := do(mux, http.MethodPost, "/api/v1/quotes", `{"items":[
			{"service_type":"full_build","complexity":"medium"},
			{"service_type":"repair","complexity":"high"}
		]}`)
		require.Equal(t, http.StatusOK, rec.Code)

		got := decode[QuoteResponse](t, rec)
		require.Len(t, got.Items, 2)
		assert.Equal(t, int64(750000), got.Items[0].PriceCents)
		assert.Equal(t, 21, got.Items[0].Days)
		assert.Equal(t, "legacy", got.Items[0].Source)
		assert.Equal(t, int64(300000), got.Items[1].PriceCents)
		assert.Equal(t, int64(1050000), got.TotalPriceCents)
		assert.Equal(t, 31, got.TotalDays)
	})

	t.Run("dynamic selectors without catalog fall back", func(t *testing.T) {
		rec := do(mux, http.MethodPost, "/api/v1/quotes",
			`{"items":[{"service_id":"repair","complexity_id":"low","service_type":"repair","complexity":"low"}]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[QuoteResponse](t, rec)
		assert.Equal(t, "legacy", got.Items[0].Source)
		assert.NotEmpty(t, got.Items[0].FallbackReason)
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"items":[`, http.StatusBadRequest},
		{"unknown field", `{"items":[],"coupon":"x"}`, http.StatusBadRequest},
		{"no items", `{"items":[]}`, http.StatusBadRequest},
		{"invalid service", `{"items":[{"service_type":"laser_etch","complexity":"low"}]}`, http.StatusUnprocessableEntity},
		{"invalid complexity", `{"items":[{"service_type":"repair","complexity":"extreme"}]}`, http.StatusUnprocessableEntity},
		{"no selection", `{"items":[{"addon_ids":["a1"]}]}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, "/api/v1/quotes", tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want, decode[ErrorResponse](t, rec).Code)
		})
	}

	t.Run("catalog outage is 503", func(t *testing.T) {
		q := &stubQuoter{err: pricing.ErrCatalogUnavailable}
		m := newTestMuxWith(t, form.NewFallbackSource(nil), q)
		rec := do(m, http.MethodPost, "/api/v1/quotes", `{"items":[{"service_id":"a","complexity_id":"b","addon_ids":["x","x"]}]}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Len(t, q.items, 1)
		assert.Equal(t, []string{"x"}, q.items[0].AddonIDs)
	})
}

func TestCatalogEndpoints(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		rec := do(newTestMux(t), http.MethodGet, "/api/v1/catalog/services", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	mux := newTestMux(t, WithCatalog(&stubCatalog{}))

	rec := do(mux, http.MethodGet, "/api/v1/catalog/services", "")
	require.Equal(t, http.StatusOK, rec.Code)
	services := decode[[]CatalogServiceResponse](t, rec)
	require.Len(t, services, 1)
	assert.Equal(t, "repair", services[0].Slug)

	rec = do(mux, http.MethodGet, "/api/v1/catalog/complexities", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.5", decode[[]ComplexityResponse](t, rec)[0].Multiplier)

	rec = do(mux, http.MethodGet, "/api/v1/catalog/addons", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(50000), decode[[]AddonResponse](t, rec)[0].PriceCents)

	t.Run("list failure", func(t *testing.T) {
		m := newTestMux(t, WithCatalog(&stubCatalog{err: errors.New("db down")}))
		rec := do(m, http.MethodGet, "/api/v1/catalog/services", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Zaku II", "Zaku II"},
		{"apostrophe and ampersand", "O'Brien & Sons", "O'Brien & Sons"},
		{"quotes", `the "red" comet`, `the "red" comet`},
		{"tags stripped", "<b>bold</b> <script>alert(1)</script>text", "bold text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeText(tt.input))
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	html := renderMarkdown("Pick **one** <script>alert(1)</script>")
	assert.Contains(t, html, "<strong>one</strong>")
	assert.NotContains(t, html, "<script>")
	assert.Empty(t, renderMarkdown(""))
}
