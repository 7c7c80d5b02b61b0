package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a session to a liked product.
type Favorite struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID uuid.UUID `gorm:"column:session_id;type:uuid;not null;index:favorites_session_idx;uniqueIndex:favorites_session_product_key"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:favorites_product_idx;uniqueIndex:favorites_session_product_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
