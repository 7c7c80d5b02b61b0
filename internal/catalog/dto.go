package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
)

// Sort orders supported by the product listing.
const (
	SortName      = "name"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortDiscount  = "discount"
)

// Filters narrows the product listing.
type Filters struct {
	Query       string
	Category    string
	Supermarket string
	PromoOnly   bool
	Sort        string
}

// ProductDTO is the catalog product shape returned by the API.
type ProductDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Supermarket     string          `json:"supermarket"`
	NormalPrice     decimal.Decimal `json:"normalPrice"`
	PromoPrice      decimal.Decimal `json:"promoPrice"`
	IsPromo         bool            `json:"isPromo"`
	EffectivePrice  decimal.Decimal `json:"effectivePrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	ImageURL        *string         `json:"imageUrl,omitempty"`
	LastUpdate      *string         `json:"lastUpdate,omitempty"`
}

// ProductsPageDTO is one page of catalog products.
type ProductsPageDTO struct {
	Items      []ProductDTO `json:"items"`
	Total      int64        `json:"total"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// NewProductDTO builds the API shape for a stored product.
func NewProductDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Supermarket:     p.Supermarket,
		NormalPrice:     p.NormalPrice,
		PromoPrice:      p.PromoPrice,
		IsPromo:         p.IsPromo,
		EffectivePrice:  p.EffectivePrice(),
		DiscountPercent: p.DiscountPercent(),
		ImageURL:        p.ImageURL,
		LastUpdate:      p.LastUpdate,
	}
}
