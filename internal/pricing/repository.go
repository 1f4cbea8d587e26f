package pricing

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salmondarat/Flow-sub001/internal/database"
)

// Repository reads the service catalog. It never writes.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new catalog repository.
// Returns error if pool is nil.
func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &Repository{pool: pool}, nil
}

// matchSelector matches a row by uuid text or slug.
func matchSelector(prefix, selector string) sq.Or {
	return sq.Or{
		sq.Eq{prefix + "id::text": selector},
		sq.Eq{prefix + "slug": selector},
	}
}

var serviceColumns = []string{
	"id::text", "slug", "name", "description", "base_price_cents", "base_days", "is_active",
}

var complexityColumns = []string{
	"id::text", "slug", "name", "multiplier", "is_active",
}

var addonColumns = []string{
	"id::text", "name", "description", "price_cents", "is_active",
}

// GetService returns the service matching selector, active or not.
func (r *Repository) GetService(ctx context.Context, selector string) (*Service, error) {
	query, args, err := database.QB.
		Select(serviceColumns...).
		From("services").
		Where(matchSelector("", selector)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build service query: %w", err)
	}

	var s Service
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.Slug, &s.Name, &s.Description, &s.BasePriceCents, &s.BaseDays, &s.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query service: %w", err)
	}
	return &s, nil
}

// GetComplexity returns the complexity level matching selector, active or not.
func (r *Repository) GetComplexity(ctx context.Context, selector string) (*ComplexityLevel, error) {
	query, args, err := database.QB.
		Select(complexityColumns...).
		From("complexity_levels").
		Where(matchSelector("", selector)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build complexity query: %w", err)
	}

	var c ComplexityLevel
	err = r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Slug, &c.Name, &c.Multiplier, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query complexity: %w", err)
	}
	return &c, nil
}

// GetOverride returns the multiplier override for a service and complexity pair.
func (r *Repository) GetOverride(ctx context.Context, serviceSelector, complexitySelector string) (*Override, error) {
	query, args, err := database.QB.
		Select("o.service_id::text", "o.complexity_id::text", "o.override_multiplier").
		From("service_complexity_overrides o").
		Join("services s ON s.id = o.service_id").
		Join("complexity_levels c ON c.id = o.complexity_id").
		Where(matchSelector("s.", serviceSelector)).
		Where(matchSelector("c.", complexitySelector)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build override query: %w", err)
	}

	var o Override
	err = r.pool.QueryRow(ctx, query, args...).Scan(&o.ServiceID, &o.ComplexityID, &o.OverrideMultiplier)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query override: %w", err)
	}
	return &o, nil
}

// GetAddons returns the add-ons among ids, optionally only active ones.
func (r *Repository) GetAddons(ctx context.Context, ids []string, activeOnly bool) ([]Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	qb := database.QB.
		Select(addonColumns...).
		From("addons").
		Where(sq.Eq{"id::text": ids})
	if activeOnly {
		qb = qb.Where(sq.Eq{"is_active": true})
	}

	return r.queryAddons(ctx, qb)
}

// ListServices returns catalog services in display order.
func (r *Repository) ListServices(ctx context.Context, activeOnly bool) ([]Service, error) {
	qb := database.QB.
		Select(serviceColumns...).
		From("services").
		OrderBy("sort_order", "name")
	if activeOnly {
		qb = qb.Where(sq.Eq{"is_active": true})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build services query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Slug, &s.Name, &s.Description, &s.BasePriceCents, &s.BaseDays, &s.IsActive); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}
	return out, nil
}

// ListComplexities returns complexity levels in display order.
func (r *Repository) ListComplexities(ctx context.Context, activeOnly bool) ([]ComplexityLevel, error) {
	qb := database.QB.
		Select(complexityColumns...).
		From("complexity_levels").
		OrderBy("sort_order", "name")
	if activeOnly {
		qb = qb.Where(sq.Eq{"is_active": true})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build complexities query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query complexities: %w", err)
	}
	defer rows.Close()

	var out []ComplexityLevel
	for rows.Next() {
		var c ComplexityLevel
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Multiplier, &c.IsActive); err != nil {
			return nil, fmt.Errorf("scan complexity: %w", err)
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate complexities: %w", err)
	}
	return out, nil
}

// ListAddons returns add-ons ordered by name.
func (r *Repository) ListAddons(ctx context.Context, activeOnly bool) ([]Addon, error) {
	qb := database.QB.
		Select(addonColumns...).
		From("addons").
		OrderBy("name")
	if activeOnly {
		qb = qb.Where(sq.Eq{"is_active": true})
	}
	return r.queryAddons(ctx, qb)
}

func (r *Repository) queryAddons(ctx context.Context, qb sq.SelectBuilder) ([]Addon, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build addons query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query addons: %w", err)
	}
	defer rows.Close()

	var out []Addon
	for rows.Next() {
		var a Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.PriceCents, &a.IsActive); err != nil {
			return nil, fmt.Errorf("scan addon: %w", err)
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addons: %w", err)
	}
	return out, nil
}
