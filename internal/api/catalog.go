package api

import (
	"net/http"

	"github.com/salmondarat/Flow-sub001/internal/pricing"
	"github.com/samber/lo"
)

// ListServices handles GET /api/v1/catalog/services.
//
//	@Summary		List active services
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		CatalogServiceResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/v1/catalog/services [get]
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	if !h.requireCatalog(w) {
		return
	}
	rows, err := h.catalog.ListServices(r.Context(), true)
	if err != nil {
		h.logger.Error("api: failed to list services", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list services")
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(rows, func(s pricing.Service, _ int) CatalogServiceResponse {
		return CatalogServiceResponse{
			ID:             s.ID,
			Slug:           s.Slug,
			Name:           s.Name,
			Description:    s.Description,
			BasePriceCents: s.BasePriceCents,
			BaseDays:       s.BaseDays,
		}
	}))
}

// ListComplexities handles GET /api/v1/catalog/complexities.
//
//	@Summary		List active complexity levels
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		ComplexityResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/v1/catalog/complexities [get]
func (h *Handler) ListComplexities(w http.ResponseWriter, r *http.Request) {
	if !h.requireCatalog(w) {
		return
	}
	rows, err := h.catalog.ListComplexities(r.Context(), true)
	if err != nil {
		h.logger.Error("api: failed to list complexities", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list complexities")
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(rows, func(c pricing.ComplexityLevel, _ int) ComplexityResponse {
		return ComplexityResponse{ID: c.ID, Slug: c.Slug, Name: c.Name, Multiplier: c.Multiplier.String()}
	}))
}

// ListAddons handles GET /api/v1/catalog/addons.
//
//	@Summary		List active add-ons
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		AddonResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/v1/catalog/addons [get]
func (h *Handler) ListAddons(w http.ResponseWriter, r *http.Request) {
	if !h.requireCatalog(w) {
		return
	}
	rows, err := h.catalog.ListAddons(r.Context(), true)
	if err != nil {
		h.logger.Error("api: failed to list addons", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list addons")
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(rows, func(a pricing.Addon, _ int) AddonResponse {
		return addonResponse(a)
	}))
}

func (h *Handler) requireCatalog(w http.ResponseWriter) bool {
	if h.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog is not configured")
		return false
	}
	return true
}

func addonResponse(a pricing.Addon) AddonResponse {
	return AddonResponse{ID: a.ID, Name: a.Name, Description: a.Description, PriceCents: a.PriceCents}
}
