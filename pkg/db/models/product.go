package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a single supermarket listing imported from the catalog sheet.
// The same product name may appear once per supermarket; the pair is the
// natural key used for cross-store matching.
type Product struct {
	ID                    uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                  string          `gorm:"column:name;not null;uniqueIndex:products_name_supermarket_key"`
	NameNormalized        string          `gorm:"column:name_normalized;not null;index:products_name_normalized_idx"`
	Category              string          `gorm:"column:category;not null"`
	CategoryNormalized    string          `gorm:"column:category_normalized;not null"`
	Supermarket           string          `gorm:"column:supermarket;not null;uniqueIndex:products_name_supermarket_key;index:products_supermarket_idx"`
	SupermarketNormalized string          `gorm:"column:supermarket_normalized;not null"`
	NormalPrice           decimal.Decimal `gorm:"column:normal_price;type:numeric(12,2);not null"`
	IsPromo               bool            `gorm:"column:is_promo;not null;default:false"`
	PromoPrice            decimal.Decimal `gorm:"column:promo_price;type:numeric(12,2);not null;default:0"`
	ImageURL              *string         `gorm:"column:image_url"`
	LastUpdate            *string         `gorm:"column:last_update"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice returns the promo price while a promotion is active,
// otherwise the normal price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.IsPromo {
		return p.PromoPrice
	}
	return p.NormalPrice
}

// DiscountPercent returns the promo discount as a fraction of the normal
// price, zero when not on promotion or the normal price is zero.
func (p Product) DiscountPercent() decimal.Decimal {
	if !p.IsPromo || p.NormalPrice.IsZero() {
		return decimal.Zero
	}
	return p.NormalPrice.Sub(p.PromoPrice).Div(p.NormalPrice)
}
