package api

import (
	"errors"
	"net/http"

	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/salmondarat/Flow-sub001/internal/pricing"
	"github.com/samber/lo"
)

// maxQuoteItems bounds the number of items priced per request.
const maxQuoteItems = 50

// CreateQuote handles POST /api/v1/quotes.
//
//	@Summary		Price an order
//	@Description	Prices each item from the catalog, or from the legacy table when only service_type/complexity are given, and sums the order
//	@Tags			quotes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		QuoteRequest	true	"Items to price"
//	@Success		200		{object}	QuoteResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/v1/quotes [post]
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "at least one item is required")
		return
	}
	if len(req.Items) > maxQuoteItems {
		writeError(w, http.StatusBadRequest, "too many items")
		return
	}

	items := lo.Map(req.Items, func(it QuoteItemRequest, _ int) pricing.Selection {
		return pricing.Selection{
			ServiceID:    it.ServiceID,
			ComplexityID: it.ComplexityID,
			ServiceType:  pricing.ServiceType(it.ServiceType),
			Complexity:   form.Complexity(it.Complexity),
			AddonIDs:     lo.Uniq(it.AddonIDs),
		}
	})

	order, err := h.quoter.ResolveOrder(r.Context(), items)
	switch {
	case errors.Is(err, pricing.ErrInvalidService),
		errors.Is(err, pricing.ErrInvalidComplexity),
		errors.Is(err, pricing.ErrNoSelection):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, pricing.ErrCatalogUnavailable):
		h.logger.Error("api: catalog unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "pricing catalog unavailable")
		return
	case err != nil:
		h.logger.Error("api: failed to price order", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to price order")
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse(order))
}

func quoteResponse(o pricing.OrderQuote) QuoteResponse {
	return QuoteResponse{
		Items: lo.Map(o.Items, func(q pricing.Quote, _ int) QuoteItemResponse {
			item := QuoteItemResponse{
				PriceCents:     q.PriceCents,
				Days:           q.Days,
				BasePriceCents: q.BasePriceCents,
				BaseDays:       q.BaseDays,
				Multiplier:     q.Multiplier.String(),
				AddonCents:     q.AddonCents,
				Addons:         lo.Map(q.Addons, func(a pricing.Addon, _ int) AddonResponse { return addonResponse(a) }),
				Source:         string(q.Source),
			}
			if q.Fallback != nil {
				item.FallbackReason = q.Fallback.Error()
			}
			return item
		}),
		TotalPriceCents: o.PriceCents,
		TotalDays:       o.Days,
	}
}
