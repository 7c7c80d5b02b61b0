package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
)

// FavoriteStore is the persistence surface the favorites service depends on.
type FavoriteStore interface {
	AddItem(ctx context.Context, sessionID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, sessionID, productID uuid.UUID) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
	ListProducts(ctx context.Context, sessionID uuid.UUID) ([]models.Product, error)
	ListProductIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error)
}

// ProductLookup resolves catalog products before they are favorited.
type ProductLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (models.Product, error)
}

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	Repo     FavoriteStore
	Products ProductLookup
}

// Service exposes business rules for session favorites.
type Service interface {
	Add(ctx context.Context, sessionID, productID uuid.UUID) error
	Remove(ctx context.Context, sessionID, productID uuid.UUID) error
	Clear(ctx context.Context, sessionID uuid.UUID) error
	ListProducts(ctx context.Context, sessionID uuid.UUID) ([]models.Product, error)
	ListIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	repo     FavoriteStore
	products ProductLookup
}

// NewService builds a favorites service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites repo is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product lookup is required")
	}
	return &service{repo: params.Repo, products: params.Products}, nil
}

// Add ensures the product exists and favorites it. Re-adding is a no-op.
func (s *service) Add(ctx context.Context, sessionID, productID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.AddItem(ctx, sessionID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
	}
	return nil
}

// Remove drops the favorite regardless of prior state.
func (s *service) Remove(ctx context.Context, sessionID, productID uuid.UUID) error {
	if sessionID == uuid.Nil || productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id and product id are required")
	}
	if err := s.repo.RemoveItem(ctx, sessionID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
	}
	return nil
}

// Clear drops every favorite the session holds.
func (s *service) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.repo.DeleteBySession(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear favorites")
	}
	return nil
}

// ListProducts returns the favorited products for a session.
func (s *service) ListProducts(ctx context.Context, sessionID uuid.UUID) ([]models.Product, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	records, err := s.repo.ListProducts(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorites")
	}
	return records, nil
}

// ListIDs returns only the liked product IDs for a session.
func (s *service) ListIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	ids, err := s.repo.ListProductIDs(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorite ids")
	}
	return ids, nil
}
