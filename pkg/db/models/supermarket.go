package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eurenemendes/ecofeira-backend/pkg/enums"
)

// Supermarket is a partner store in the directory. Name is the join key
// against Product.Supermarket and shopping-list origin stores.
type Supermarket struct {
	ID                     uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                   string            `gorm:"column:name;not null;uniqueIndex:supermarkets_name_key"`
	NameNormalized         string            `gorm:"column:name_normalized;not null;index:supermarkets_name_normalized_idx"`
	LogoURL                string            `gorm:"column:logo_url;not null;default:''"`
	Street                 string            `gorm:"column:street;not null;default:''"`
	StreetNormalized       string            `gorm:"column:street_normalized;not null;default:''"`
	Number                 string            `gorm:"column:number;not null;default:''"`
	Neighborhood           string            `gorm:"column:neighborhood;not null;default:''"`
	NeighborhoodNormalized string            `gorm:"column:neighborhood_normalized;not null;default:''"`
	Status                 enums.StoreStatus `gorm:"column:status;not null;default:'closed'"`
	FlyerURL               *string           `gorm:"column:flyer_url"`
	// PriceIndex is the store's relative price level (1.0 = baseline). It is
	// only ever used as a multiplicative factor, never as a price.
	PriceIndex decimal.Decimal `gorm:"column:price_index;type:numeric(6,3);not null;default:1"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
