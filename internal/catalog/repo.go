package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/internal/comparison"
	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	"github.com/eurenemendes/ecofeira-backend/pkg/pagination"
	"github.com/eurenemendes/ecofeira-backend/pkg/textutil"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns a filtered, sorted page of catalog products.
// Cursor pagination only applies to the default insertion ordering; name,
// price and discount sorts always serve the first page.
func (r *Repository) ListProducts(ctx context.Context, filters Filters, cursor string, limit int) (ProductsPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)

	query := r.filteredQuery(ctx, filters)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ProductsPageDTO{}, err
	}

	cursorable := filters.Sort == ""
	if cursorable {
		decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
		if err != nil {
			return ProductsPageDTO{}, err
		}
		if decodedCursor != nil {
			query = query.Where("(created_at > ?) OR (created_at = ? AND id > ?)",
				decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
		}
	}

	switch filters.Sort {
	case SortPriceAsc:
		query = query.Order("CASE WHEN is_promo THEN promo_price ELSE normal_price END ASC")
	case SortPriceDesc:
		query = query.Order("CASE WHEN is_promo THEN promo_price ELSE normal_price END DESC")
	case SortDiscount:
		query = query.Order("CASE WHEN is_promo AND normal_price > 0 THEN (normal_price - promo_price) / normal_price ELSE 0 END DESC")
	case SortName:
		query = query.Order("name_normalized ASC")
	}
	query = query.Order("created_at ASC").Order("id ASC").Limit(limitWithBuffer)

	var records []models.Product
	if err := query.Find(&records).Error; err != nil {
		return ProductsPageDTO{}, err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		if cursorable {
			last := records[len(records)-1]
			nextCursor = pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: last.CreatedAt,
				ID:        last.ID,
			})
		}
	}

	items := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		items = append(items, NewProductDTO(record))
	}

	return ProductsPageDTO{Items: items, Total: total, NextCursor: nextCursor}, nil
}

func (r *Repository) filteredQuery(ctx context.Context, filters Filters) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q := textutil.Normalize(filters.Query); q != "" {
		query = query.Where("name_normalized LIKE ?", "%"+q+"%")
	}
	if category := textutil.Normalize(filters.Category); category != "" {
		query = query.Where("category_normalized = ?", category)
	}
	if store := textutil.Normalize(filters.Supermarket); store != "" {
		query = query.Where("supermarket_normalized = ?", store)
	}
	if filters.PromoOnly {
		query = query.Where("is_promo = ?", true)
	}
	return query
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).
		Error
	return product, err
}

// FindByName returns every store listing that carries the product name.
func (r *Repository) FindByName(ctx context.Context, name string) ([]models.Product, error) {
	var records []models.Product
	err := r.db.WithContext(ctx).
		Where("name_normalized = ?", textutil.Normalize(name)).
		Order("supermarket_normalized ASC").
		Find(&records).
		Error
	return records, err
}

// Suggestions returns distinct product names matching a prefix, capped.
func (r *Repository) Suggestions(ctx context.Context, prefix string, limit int) ([]string, error) {
	normalized := textutil.Normalize(prefix)
	if normalized == "" {
		return []string{}, nil
	}

	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("name").
		Where("name_normalized LIKE ?", normalized+"%").
		Order("name ASC").
		Limit(limit).
		Pluck("name", &names).
		Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Categories returns the distinct category labels in the catalog.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).
		Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// AllListings projects the full catalog into comparison listings.
func (r *Repository) AllListings(ctx context.Context) ([]comparison.Listing, error) {
	var records []models.Product
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}

	listings := make([]comparison.Listing, 0, len(records))
	for _, record := range records {
		listings = append(listings, comparison.Listing{
			Name:        record.Name,
			Supermarket: record.Supermarket,
			NormalPrice: record.NormalPrice,
			PromoPrice:  record.PromoPrice,
			IsPromo:     record.IsPromo,
		})
	}
	return listings, nil
}
