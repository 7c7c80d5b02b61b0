package stores

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
)

// StoreDTO is the partner store shape returned by the API.
type StoreDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	LogoURL      string          `json:"logoUrl,omitempty"`
	Street       string          `json:"street,omitempty"`
	Number       string          `json:"number,omitempty"`
	Neighborhood string          `json:"neighborhood,omitempty"`
	Status       string          `json:"status"`
	FlyerURL     *string         `json:"flyerUrl,omitempty"`
	PriceIndex   decimal.Decimal `json:"priceIndex"`
}

func toStoreDTO(s models.Supermarket) StoreDTO {
	return StoreDTO{
		ID:           s.ID,
		Name:         s.Name,
		LogoURL:      s.LogoURL,
		Street:       s.Street,
		Number:       s.Number,
		Neighborhood: s.Neighborhood,
		Status:       string(s.Status),
		FlyerURL:     s.FlyerURL,
		PriceIndex:   s.PriceIndex,
	}
}
