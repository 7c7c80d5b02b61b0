package favorites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
)

// Repository encapsulates favorites persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a favorite and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, sessionID, productID uuid.UUID) error {
	if sessionID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO favorites (session_id, product_id) VALUES (?, ?) ON CONFLICT (session_id, product_id) DO NOTHING`, sessionID, productID).
		Error
}

// RemoveItem deletes the session-product like if it exists.
func (r *Repository) RemoveItem(ctx context.Context, sessionID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		Delete(&models.Favorite{}).
		Error
}

// DeleteBySession drops every favorite the session holds.
func (r *Repository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.Favorite{}).
		Error
}

// ListProducts returns the favorited products, most recent like first.
func (r *Repository) ListProducts(ctx context.Context, sessionID uuid.UUID) ([]models.Product, error) {
	var records []models.Product
	err := r.db.WithContext(ctx).
		Table("favorites f").
		Select("p.*").
		Joins("JOIN products p ON p.id = f.product_id").
		Where("f.session_id = ?", sessionID).
		Order("f.created_at DESC").
		Find(&records).
		Error
	return records, err
}

// ListProductIDs returns only the product IDs the session has liked.
func (r *Repository) ListProductIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Pluck("product_id", &ids).
		Error
	return ids, err
}
