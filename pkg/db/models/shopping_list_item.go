package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShoppingListItem is a session-scoped list entry. OriginalPrice and
// OriginalStore snapshot the effective price at the moment the product was
// added; they are never refreshed afterwards.
type ShoppingListItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID     uuid.UUID       `gorm:"column:session_id;type:uuid;not null;index:shopping_list_items_session_idx;uniqueIndex:shopping_list_items_session_product_key"`
	ProductName   string          `gorm:"column:product_name;not null;uniqueIndex:shopping_list_items_session_product_key"`
	Quantity      int             `gorm:"column:quantity;not null;default:1"`
	Checked       bool            `gorm:"column:checked;not null;default:false"`
	OriginalPrice decimal.Decimal `gorm:"column:original_price;type:numeric(12,2);not null"`
	OriginalStore string          `gorm:"column:original_store;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
