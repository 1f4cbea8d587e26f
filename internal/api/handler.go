package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
)

// maxBodyBytes bounds request bodies read by the API.
const maxBodyBytes = 1 << 20

// Handler holds dependencies for API handlers.
type Handler struct {
	templates templateSource
	listing   templateLister
	quoter    orderQuoter
	catalog   catalogLister
	logger    *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithCatalog enables the catalog listing endpoints.
func WithCatalog(c catalogLister) Option {
	return func(h *Handler) {
		h.catalog = c
	}
}

// WithTemplateLister enables listing stored templates.
func WithTemplateLister(l templateLister) Option {
	return func(h *Handler) {
		h.listing = l
	}
}

// WithLogger sets a custom logger for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// New creates a new API Handler.
// The catalog and template listing are optional.
func New(templates templateSource, quoter orderQuoter, opts ...Option) (*Handler, error) {
	if templates == nil {
		return nil, errors.New("template source is required")
	}
	if quoter == nil {
		return nil, errors.New("pricing resolver is required")
	}
	h := &Handler{
		templates: templates,
		quoter:    quoter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/form-templates", h.ListTemplates)
	mux.HandleFunc("GET /api/v1/form-templates/default", h.GetDefaultTemplate)
	mux.HandleFunc("GET /api/v1/form-templates/{id}", h.GetTemplate)
	mux.HandleFunc("POST /api/v1/form-templates/{id}/validate", h.ValidateValues)
	mux.HandleFunc("GET /api/v1/catalog/services", h.ListServices)
	mux.HandleFunc("GET /api/v1/catalog/complexities", h.ListComplexities)
	mux.HandleFunc("GET /api/v1/catalog/addons", h.ListAddons)
	mux.HandleFunc("POST /api/v1/quotes", h.CreateQuote)
}

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, `{"error":"internal server error","code":500}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  status,
	})
}

// decodeBody decodes a JSON request body into dst, keeping numbers as
// json.Number. It writes a 400 and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
