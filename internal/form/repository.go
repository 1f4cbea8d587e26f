package form

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salmondarat/Flow-sub001/internal/database"
)

// ErrTemplateNotFound is returned when no active template matches.
var ErrTemplateNotFound = errors.New("form template not found")

// TemplateSummary is a row of the template listing.
type TemplateSummary struct {
	ID        string
	Name      string
	Version   int
	IsDefault bool
}

// Repository reads form templates stored as JSON documents.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new template repository.
// Returns error if pool is nil.
func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &Repository{pool: pool}, nil
}

// GetTemplate returns the newest active version of a template.
func (r *Repository) GetTemplate(ctx context.Context, id string) (*Template, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetDefault returns the newest active template flagged as default.
func (r *Repository) GetDefault(ctx context.Context) (*Template, error) {
	return r.getOne(ctx, sq.Eq{"is_default": true})
}

func (r *Repository) getOne(ctx context.Context, where sq.Sqlizer) (*Template, error) {
	query, args, err := database.QB.
		Select("id", "name", "version", "document").
		From("form_templates").
		Where(where).
		Where(sq.Eq{"is_active": true}).
		OrderBy("version DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build template query: %w", err)
	}

	var (
		id, name string
		version  int
		document []byte
	)
	err = r.pool.QueryRow(ctx, query, args...).Scan(&id, &name, &version, &document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query template: %w", err)
	}

	t, err := ParseJSON(document)
	if err != nil {
		return nil, fmt.Errorf("parse template %s v%d: %w", id, version, err)
	}
	t.ID, t.Name, t.Version = id, name, version
	return t, nil
}

// ListTemplates returns the newest active version of every template.
func (r *Repository) ListTemplates(ctx context.Context) ([]TemplateSummary, error) {
	query, args, err := database.QB.
		Select("DISTINCT ON (id) id", "name", "version", "is_default").
		From("form_templates").
		Where(sq.Eq{"is_active": true}).
		OrderBy("id", "version DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build templates query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var out []TemplateSummary
	for rows.Next() {
		var s TemplateSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Version, &s.IsDefault); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return out, nil
}
