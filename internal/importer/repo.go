package importer

import (
	"context"

	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/pkg/db"
	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
)

const insertBatchSize = 200

// Snapshot is one fully parsed spreadsheet import.
type Snapshot struct {
	Products    []models.Product
	Stores      []models.Supermarket
	Banners     []models.Banner
	Suggestions []models.Suggestion
}

// Repository swaps the published content atomically.
type Repository struct {
	client *db.Client
}

// NewRepository constructs an importer repository bound to the db client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

// Replace wipes the previous import and writes the new snapshot in a single
// transaction, so readers never observe a half-imported catalog.
func (r *Repository) Replace(ctx context.Context, snapshot Snapshot) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Product{},
			&models.Supermarket{},
			&models.Banner{},
			&models.Suggestion{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		if len(snapshot.Products) > 0 {
			if err := tx.CreateInBatches(snapshot.Products, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(snapshot.Stores) > 0 {
			if err := tx.CreateInBatches(snapshot.Stores, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(snapshot.Banners) > 0 {
			if err := tx.CreateInBatches(snapshot.Banners, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(snapshot.Suggestions) > 0 {
			if err := tx.CreateInBatches(snapshot.Suggestions, insertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
