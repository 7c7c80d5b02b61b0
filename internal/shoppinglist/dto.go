package shoppinglist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
)

// ItemDTO is one shopping-list line returned by the API.
type ItemDTO struct {
	ID            uuid.UUID       `json:"id"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	Checked       bool            `json:"checked"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	OriginalStore string          `json:"originalStore"`
	AddedAt       time.Time       `json:"addedAt"`
}

// ListDTO is the session's full list plus a snapshot-based running total.
type ListDTO struct {
	Items []ItemDTO       `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func decimalFromQuantity(quantity int) decimal.Decimal {
	if quantity < 1 {
		quantity = 1
	}
	return decimal.NewFromInt(int64(quantity))
}

func toItemDTO(item models.ShoppingListItem) ItemDTO {
	return ItemDTO{
		ID:            item.ID,
		ProductName:   item.ProductName,
		Quantity:      item.Quantity,
		Checked:       item.Checked,
		OriginalPrice: item.OriginalPrice,
		OriginalStore: item.OriginalStore,
		AddedAt:       item.CreatedAt,
	}
}
