package api

import (
	"errors"
	"net/http"

	"github.com/salmondarat/Flow-sub001/internal/form"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ListTemplates handles GET /api/v1/form-templates.
//
//	@Summary		List form templates
//	@Description	Returns the active stored templates, newest version of each
//	@Tags			templates
//	@Produce		json
//	@Success		200	{array}		TemplateListItem
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/v1/form-templates [get]
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if h.listing == nil {
		tmpl := form.Default()
		writeJSON(w, http.StatusOK, []TemplateListItem{{
			ID: tmpl.ID, Name: tmpl.Name, Version: tmpl.Version, IsDefault: true,
		}})
		return
	}

	rows, err := h.listing.ListTemplates(r.Context())
	if err != nil {
		h.logger.Error("api: failed to list templates", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list templates")
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(rows, func(t form.TemplateSummary, _ int) TemplateListItem {
		return TemplateListItem{ID: t.ID, Name: t.Name, Version: t.Version, IsDefault: t.IsDefault}
	}))
}

// GetDefaultTemplate handles GET /api/v1/form-templates/default.
//
//	@Summary		Get the default form template
//	@Tags			templates
//	@Produce		json
//	@Success		200	{object}	TemplateResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/v1/form-templates/default [get]
func (h *Handler) GetDefaultTemplate(w http.ResponseWriter, r *http.Request) {
	h.writeTemplate(w, r, "")
}

// GetTemplate handles GET /api/v1/form-templates/{id}.
//
//	@Summary		Get a form template
//	@Description	Returns the template with steps in order. Unknown ids fall back to the default template
//	@Tags			templates
//	@Produce		json
//	@Param			id	path		string	true	"Template ID"
//	@Success		200	{object}	TemplateResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/v1/form-templates/{id} [get]
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	h.writeTemplate(w, r, r.PathValue("id"))
}

func (h *Handler) writeTemplate(w http.ResponseWriter, r *http.Request, id string) {
	tmpl, ok := h.loadTemplate(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, templateResponse(tmpl))
}

// loadTemplate resolves a template and writes the error response when it
// cannot.
func (h *Handler) loadTemplate(w http.ResponseWriter, r *http.Request, id string) (*form.Template, bool) {
	tmpl, err := h.templates.Template(r.Context(), id)
	switch {
	case errors.Is(err, form.ErrTemplateNotFound):
		writeError(w, http.StatusNotFound, "template not found")
		return nil, false
	case err != nil:
		h.logger.Error("api: failed to load template", "template_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load template")
		return nil, false
	}
	return tmpl, true
}

// ValidateValues handles POST /api/v1/form-templates/{id}/validate.
//
//	@Summary		Validate form values
//	@Description	Sanitizes text values and validates them against the whole template, or one step when step is given
//	@Tags			templates
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Template ID"
//	@Param			step	query		string			false	"Step ID to validate alone"
//	@Param			body	body		ValidateRequest	true	"Values to validate"
//	@Success		200		{object}	ValidateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/v1/form-templates/{id}/validate [post]
func (h *Handler) ValidateValues(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tmpl, ok := h.loadTemplate(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	values := sanitizeValues(tmpl, req.Values)

	var res form.FormResult
	if stepID := r.URL.Query().Get("step"); stepID != "" {
		step, found := lo.Find(tmpl.Steps, func(s form.Step) bool { return s.ID == stepID })
		if !found {
			writeError(w, http.StatusNotFound, "step not found: "+stepID)
			return
		}
		res = form.ValidateStep(step, values)
	} else {
		res = form.ValidateForm(tmpl, values)
	}

	writeJSON(w, http.StatusOK, ValidateResponse{
		Valid:  res.Valid,
		Errors: res.Errors,
		Values: values,
	})
}

// sanitizeValues strips markup from text and textarea values. Keys the
// template does not declare are dropped.
func sanitizeValues(tmpl *form.Template, in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for _, f := range tmpl.Fields() {
		v, ok := in[f.Key]
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr && (f.Type == form.FieldText || f.Type == form.FieldTextarea) {
			v = sanitizeText(s)
		}
		out[f.Key] = v
	}
	return out
}

func templateResponse(t *form.Template) TemplateResponse {
	return TemplateResponse{
		ID:      t.ID,
		Name:    t.Name,
		Version: t.Version,
		Steps: lo.Map(t.Steps, func(s form.Step, _ int) StepResponse {
			return StepResponse{
				ID:              s.ID,
				Order:           s.Order,
				Title:           s.Title,
				Description:     s.Description,
				DescriptionHTML: renderMarkdown(s.Description),
				Fields:          s.Fields,
			}
		}),
		Services: lo.Map(t.ServiceConfig.Services, func(s form.Service, _ int) ServiceOption {
			return ServiceOption{ID: s.ID, Name: s.Name, Description: s.Description}
		}),
		Pricing: PricingResponse{
			BasePrice:            t.PricingConfig.BasePrice,
			ComplexityMultiplier: decimalStrings(t.PricingConfig.ComplexityMultiplier),
			ServicePricing:       decimalStrings(t.PricingConfig.ServicePricing),
		},
	}
}

func decimalStrings(m map[string]decimal.Decimal) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return lo.MapValues(m, func(d decimal.Decimal, _ string) string { return d.String() })
}

