package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
	"github.com/eurenemendes/ecofeira-backend/pkg/textutil"
)

// SuggestionLimit caps how many suggestion labels one query returns.
const SuggestionLimit = 8

var validSorts = map[string]bool{
	"":            true,
	SortName:      true,
	SortPriceAsc:  true,
	SortPriceDesc: true,
	SortDiscount:  true,
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo ProductStore
}

// Service exposes read operations over the imported catalog.
type Service interface {
	ListProducts(ctx context.Context, filters Filters, cursor string, limit int) (ProductsPageDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (ProductDTO, error)
	GetListings(ctx context.Context, name string) ([]ProductDTO, error)
	Suggestions(ctx context.Context, prefix string) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
}

type service struct {
	repo ProductStore
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// ListProducts returns a filtered page of catalog products.
func (s *service) ListProducts(ctx context.Context, filters Filters, cursor string, limit int) (ProductsPageDTO, error) {
	if !validSorts[filters.Sort] {
		return ProductsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort order").
			WithDetails(map[string]string{"sort": filters.Sort})
	}
	return s.repo.ListProducts(ctx, filters, cursor, limit)
}

// GetProduct loads a single catalog product.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (ProductDTO, error) {
	if id == uuid.Nil {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(record), nil
}

// GetListings returns every store's listing of the named product, so the
// client can show the cross-store price spread for one item.
func (s *service) GetListings(ctx context.Context, name string) ([]ProductDTO, error) {
	records, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listings")
	}
	items := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		items = append(items, NewProductDTO(record))
	}
	return items, nil
}

// Suggestions returns up to SuggestionLimit labels for a prefix: matching
// categories first, then product names. Prefixes shorter than two characters
// yield nothing.
func (s *service) Suggestions(ctx context.Context, prefix string) ([]string, error) {
	normalized := textutil.Normalize(prefix)
	if len([]rune(normalized)) < 2 {
		return []string{}, nil
	}

	out := make([]string, 0, SuggestionLimit)
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suggestions")
	}
	for _, category := range categories {
		if strings.HasPrefix(textutil.Normalize(category), normalized) {
			out = append(out, category)
			if len(out) == SuggestionLimit {
				return out, nil
			}
		}
	}

	names, err := s.repo.Suggestions(ctx, prefix, SuggestionLimit-len(out))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suggestions")
	}
	return append(out, names...), nil
}

// Categories returns the distinct catalog categories.
func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load categories")
	}
	return categories, nil
}
