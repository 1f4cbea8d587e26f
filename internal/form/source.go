package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Source supplies template documents by id. An empty id asks for the default.
type Source interface {
	Template(ctx context.Context, id string) (*Template, error)
}

type templateStore interface {
	GetTemplate(ctx context.Context, id string) (*Template, error)
	GetDefault(ctx context.Context) (*Template, error)
}

// FallbackSource resolves templates from a store, falling back to the
// store's default and then to the built-in template when nothing matches.
// Store I/O errors are returned as-is.
type FallbackSource struct {
	store     templateStore
	fallback  *Template
	defaultID string
	logger    *slog.Logger
}

// SourceOption configures a FallbackSource.
type SourceOption func(*FallbackSource)

// WithFallback replaces the built-in last-resort template.
func WithFallback(t *Template) SourceOption {
	return func(s *FallbackSource) {
		s.fallback = t
	}
}

// WithDefaultID names the stored template served for default requests,
// ahead of the store's own default.
func WithDefaultID(id string) SourceOption {
	return func(s *FallbackSource) {
		s.defaultID = id
	}
}

// WithSourceLogger sets the logger used for fallback notices.
func WithSourceLogger(logger *slog.Logger) SourceOption {
	return func(s *FallbackSource) {
		s.logger = logger
	}
}

// NewFallbackSource creates a source over store. store may be nil, in which
// case only the built-in template is served.
func NewFallbackSource(store templateStore, opts ...SourceOption) *FallbackSource {
	s := &FallbackSource{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fallback == nil {
		s.fallback = Default()
	}
	return s
}

// Template implements Source.
func (s *FallbackSource) Template(ctx context.Context, id string) (*Template, error) {
	if s.store == nil {
		return s.fallback.Clone(), nil
	}

	if (id == "" || id == DefaultTemplateID) && s.defaultID != "" {
		id = s.defaultID
	}
	if id != "" && id != DefaultTemplateID {
		t, err := s.store.GetTemplate(ctx, id)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			return nil, fmt.Errorf("get template %s: %w", id, err)
		}
		s.logger.Warn("template not found, using default", "template_id", id)
	}

	t, err := s.store.GetDefault(ctx)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrTemplateNotFound) {
		return nil, fmt.Errorf("get default template: %w", err)
	}

	s.logger.Debug("no default template configured, using built-in")
	return s.fallback.Clone(), nil
}
