package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"bizdir/internal/entities"
	"bizdir/internal/models"
	"bizdir/internal/repository"
)

// CatalogService defines the read-only queries behind the directory API
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*entities.Category, error)
	ListBusinesses(ctx context.Context, query models.BusinessQuery) ([]*entities.BusinessView, error)
	GetBusiness(ctx context.Context, id int64) (*entities.BusinessView, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	businessRepo repository.BusinessRepository
	log          zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(categoryRepo repository.CategoryRepository, businessRepo repository.BusinessRepository, log zerolog.Logger) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		businessRepo: businessRepo,
		log:          log,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list categories")
		return nil, &StoreError{Op: "list categories", Err: err}
	}
	return categories, nil
}

// ListBusinesses applies the optional category and search filters together
func (s *catalogService) ListBusinesses(ctx context.Context, query models.BusinessQuery) ([]*entities.BusinessView, error) {
	businesses, err := s.businessRepo.List(ctx, repository.BusinessFilter{
		CategoryID: query.CategoryID,
		Search:     query.Search,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list businesses")
		return nil, &StoreError{Op: "list businesses", Err: err}
	}
	return businesses, nil
}

func (s *catalogService) GetBusiness(ctx context.Context, id int64) (*entities.BusinessView, error) {
	business, err := s.businessRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Int64("business_id", id).Msg("failed to get business")
		return nil, &StoreError{Op: "get business", Err: err}
	}
	return business, nil
}
