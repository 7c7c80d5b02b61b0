package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
)

// ProductStore is the persistence surface the catalog service depends on.
type ProductStore interface {
	ListProducts(ctx context.Context, filters Filters, cursor string, limit int) (ProductsPageDTO, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.Product, error)
	FindByName(ctx context.Context, name string) ([]models.Product, error)
	Suggestions(ctx context.Context, prefix string, limit int) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
}
