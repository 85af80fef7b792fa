package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"bizdir/internal/entities"
)

// BusinessFilter narrows a business listing. Zero values mean "no filter".
type BusinessFilter struct {
	CategoryID *int64
	Search     string
}

// BusinessRepository defines the interface for business database operations
type BusinessRepository interface {
	List(ctx context.Context, filter BusinessFilter) ([]*entities.BusinessView, error)
	FindByID(ctx context.Context, id int64) (*entities.BusinessView, error)
}

type businessRepository struct {
	db *sqlx.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *sqlx.DB) BusinessRepository {
	return &businessRepository{db: db}
}

// Businesses without a category drop out of the inner join.
const businessViewSelect = `
	SELECT b.id, b.name, b.category_id, b.description, b.address, b.phone,
	       b.email, b.website, b.image_url, c.name AS category_name
	FROM businesses b
	JOIN categories c ON b.category_id = c.id
`

// List returns businesses matching the filter. Search is a case-insensitive substring
// match against name or description.
func (r *businessRepository) List(ctx context.Context, filter BusinessFilter) ([]*entities.BusinessView, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.CategoryID != nil {
		conditions = append(conditions, "b.category_id = ?")
		args = append(args, *filter.CategoryID)
	}

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		conditions = append(conditions,
			`(LOWER(b.name) LIKE LOWER(?) ESCAPE '\' OR LOWER(b.description) LIKE LOWER(?) ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	query := businessViewSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY b.id"

	businesses := []*entities.BusinessView{}
	if err := r.db.SelectContext(ctx, &businesses, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	return businesses, nil
}

// FindByID finds a single business view by ID
func (r *businessRepository) FindByID(ctx context.Context, id int64) (*entities.BusinessView, error) {
	var business entities.BusinessView
	err := r.db.GetContext(ctx, &business, r.db.Rebind(businessViewSelect+" WHERE b.id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find business")
	}

	return &business, nil
}

// escapeLike makes LIKE wildcards in user input match literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
