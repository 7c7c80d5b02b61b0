package shoppinglist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	"github.com/eurenemendes/ecofeira-backend/pkg/textutil"
)

// Repository encapsulates shopping-list persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shopping-list repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBySession returns the session's items in insertion order.
func (r *Repository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.ShoppingListItem, error) {
	var records []models.ShoppingListItem
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&records).
		Error
	return records, err
}

// FindByID loads one item scoped to the session.
func (r *Repository) FindByID(ctx context.Context, sessionID, itemID uuid.UUID) (models.ShoppingListItem, error) {
	var record models.ShoppingListItem
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND id = ?", sessionID, itemID).
		First(&record).
		Error
	return record, err
}

// FindByProductName loads the session's line for a product, matched
// accent-insensitively against the stored name.
func (r *Repository) FindByProductName(ctx context.Context, sessionID uuid.UUID, name string) (models.ShoppingListItem, error) {
	var records []models.ShoppingListItem
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&records).
		Error
	if err != nil {
		return models.ShoppingListItem{}, err
	}

	target := textutil.Normalize(name)
	for _, record := range records {
		if textutil.Normalize(record.ProductName) == target {
			return record, nil
		}
	}
	return models.ShoppingListItem{}, gorm.ErrRecordNotFound
}

// Create inserts a new list item.
func (r *Repository) Create(ctx context.Context, item *models.ShoppingListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update persists quantity/checked changes on an existing item.
func (r *Repository) Update(ctx context.Context, item *models.ShoppingListItem) error {
	return r.db.WithContext(ctx).
		Model(&models.ShoppingListItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"quantity": item.Quantity,
			"checked":  item.Checked,
		}).
		Error
}

// Delete removes one item scoped to the session.
func (r *Repository) Delete(ctx context.Context, sessionID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND id = ?", sessionID, itemID).
		Delete(&models.ShoppingListItem{}).
		Error
}

// DeleteBySession clears the whole list for a session.
func (r *Repository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.ShoppingListItem{}).
		Error
}
