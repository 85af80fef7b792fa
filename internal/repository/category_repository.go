package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"bizdir/internal/entities"
)

// CategoryRepository defines the interface for category database operations
type CategoryRepository interface {
	List(ctx context.Context) ([]*entities.Category, error)
}

type categoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns every category in insertion order
func (r *categoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	categories := []*entities.Category{}
	if err := r.db.SelectContext(ctx, &categories, `SELECT id, name FROM categories ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	return categories, nil
}
