package stores

import (
	"context"

	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/internal/comparison"
	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	"github.com/eurenemendes/ecofeira-backend/pkg/textutil"
)

// Repository encapsulates store-directory persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a store repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all stores, optionally filtered by a free-text search over
// name, neighborhood and street.
func (r *Repository) List(ctx context.Context, search string) ([]models.Supermarket, error) {
	query := r.db.WithContext(ctx).Model(&models.Supermarket{})

	if normalized := textutil.Normalize(search); normalized != "" {
		like := "%" + normalized + "%"
		query = query.Where(
			"name_normalized LIKE ? OR neighborhood_normalized LIKE ? OR street_normalized LIKE ?",
			like, like, like,
		)
	}

	var records []models.Supermarket
	err := query.Order("name_normalized ASC").Find(&records).Error
	return records, err
}

// FindByName loads a store by its exact (accent-insensitive) name.
func (r *Repository) FindByName(ctx context.Context, name string) (models.Supermarket, error) {
	var record models.Supermarket
	err := r.db.WithContext(ctx).
		Where("name_normalized = ?", textutil.Normalize(name)).
		First(&record).
		Error
	return record, err
}

// Suggestions returns store names matching a prefix, capped.
func (r *Repository) Suggestions(ctx context.Context, prefix string, limit int) ([]string, error) {
	normalized := textutil.Normalize(prefix)
	if normalized == "" {
		return []string{}, nil
	}

	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Supermarket{}).
		Where("name_normalized LIKE ?", normalized+"%").
		Order("name_normalized ASC").
		Limit(limit).
		Pluck("name", &names).
		Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ComparableStores projects stores with a usable price index into the
// comparison engine's shape.
func (r *Repository) ComparableStores(ctx context.Context) ([]comparison.StoreInfo, error) {
	var records []models.Supermarket
	err := r.db.WithContext(ctx).
		Where("price_index > 0").
		Order("name_normalized ASC").
		Find(&records).
		Error
	if err != nil {
		return nil, err
	}

	infos := make([]comparison.StoreInfo, 0, len(records))
	for _, record := range records {
		infos = append(infos, comparison.StoreInfo{
			Name:       record.Name,
			LogoURL:    record.LogoURL,
			Status:     record.Status,
			PriceIndex: record.PriceIndex,
		})
	}
	return infos, nil
}
