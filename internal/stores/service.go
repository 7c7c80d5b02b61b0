package stores

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
)

// SuggestionLimit caps how many store suggestions one query returns.
const SuggestionLimit = 5

// StoreDirectory is the persistence surface the store service depends on.
type StoreDirectory interface {
	List(ctx context.Context, search string) ([]models.Supermarket, error)
	FindByName(ctx context.Context, name string) (models.Supermarket, error)
	Suggestions(ctx context.Context, prefix string, limit int) ([]string, error)
}

// ServiceParams groups dependencies for the store service.
type ServiceParams struct {
	Repo StoreDirectory
}

// Service exposes read operations over the partner store directory.
type Service interface {
	List(ctx context.Context, search string) ([]StoreDTO, error)
	GetByName(ctx context.Context, name string) (StoreDTO, error)
	Suggestions(ctx context.Context, prefix string) ([]string, error)
}

type service struct {
	repo StoreDirectory
}

// NewService builds a store service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// List returns the store directory, optionally narrowed by search.
func (s *service) List(ctx context.Context, search string) ([]StoreDTO, error) {
	records, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stores")
	}
	items := make([]StoreDTO, 0, len(records))
	for _, record := range records {
		items = append(items, toStoreDTO(record))
	}
	return items, nil
}

// GetByName loads one store by its accent-insensitive name.
func (s *service) GetByName(ctx context.Context, name string) (StoreDTO, error) {
	record, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StoreDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "store not found")
		}
		return StoreDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return toStoreDTO(record), nil
}

// Suggestions returns up to SuggestionLimit store names for a prefix.
func (s *service) Suggestions(ctx context.Context, prefix string) ([]string, error) {
	names, err := s.repo.Suggestions(ctx, prefix, SuggestionLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store suggestions")
	}
	return names, nil
}
