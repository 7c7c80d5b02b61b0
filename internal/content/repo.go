package content

import (
	"context"

	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	"github.com/eurenemendes/ecofeira-backend/pkg/enums"
)

// Repository encapsulates home-content persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a content repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Banners returns banners for a placement in curated order. An empty
// placement returns everything.
func (r *Repository) Banners(ctx context.Context, placement enums.BannerPlacement) ([]models.Banner, error) {
	query := r.db.WithContext(ctx).Model(&models.Banner{})
	if placement != "" {
		query = query.Where("placement = ?", placement)
	}

	var records []models.Banner
	err := query.Order("position ASC").Find(&records).Error
	return records, err
}

// Suggestions returns the curated search tags in order.
func (r *Repository) Suggestions(ctx context.Context) ([]models.Suggestion, error) {
	var records []models.Suggestion
	err := r.db.WithContext(ctx).
		Order("position ASC").
		Find(&records).
		Error
	return records, err
}
