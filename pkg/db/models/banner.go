package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/eurenemendes/ecofeira-backend/pkg/enums"
)

// Banner is promotional content placed on the home carousel or inside the
// product grid.
type Banner struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Placement enums.BannerPlacement `gorm:"column:placement;not null;index:banners_placement_idx"`
	ImageURL  string                `gorm:"column:image_url;not null"`
	Title     string                `gorm:"column:title;not null;default:''"`
	Subtitle  string                `gorm:"column:subtitle;not null;default:''"`
	Tag       string                `gorm:"column:tag;not null;default:''"`
	CTA       string                `gorm:"column:cta;not null;default:''"`
	LinkURL   *string               `gorm:"column:link_url"`
	Position  int                   `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
