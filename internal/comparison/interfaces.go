package comparison

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eurenemendes/ecofeira-backend/pkg/enums"
)

// StoreInfo is the store projection the comparison service consumes.
type StoreInfo struct {
	Name       string
	LogoURL    string
	Status     enums.StoreStatus
	PriceIndex decimal.Decimal
}

// ListSource supplies the session's shopping-list lines.
type ListSource interface {
	ItemsForComparison(ctx context.Context, sessionID uuid.UUID) ([]Item, error)
}

// CatalogSource supplies every catalog listing.
type CatalogSource interface {
	AllListings(ctx context.Context) ([]Listing, error)
}

// StoreSource supplies the store directory with price indexes.
type StoreSource interface {
	ComparableStores(ctx context.Context) ([]StoreInfo, error)
}
