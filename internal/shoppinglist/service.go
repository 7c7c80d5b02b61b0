package shoppinglist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/internal/comparison"
	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
	"github.com/eurenemendes/ecofeira-backend/pkg/redis"
)

// ListStore is the persistence surface the shopping-list service depends on.
type ListStore interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.ShoppingListItem, error)
	FindByID(ctx context.Context, sessionID, itemID uuid.UUID) (models.ShoppingListItem, error)
	FindByProductName(ctx context.Context, sessionID uuid.UUID, name string) (models.ShoppingListItem, error)
	Create(ctx context.Context, item *models.ShoppingListItem) error
	Update(ctx context.Context, item *models.ShoppingListItem) error
	Delete(ctx context.Context, sessionID, itemID uuid.UUID) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

// ProductLookup resolves catalog products when items are added.
type ProductLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (models.Product, error)
}

// ServiceParams groups dependencies for the shopping-list service.
type ServiceParams struct {
	Repo     ListStore
	Products ProductLookup
	Cache    redis.ComparisonCache
	Logger   *logger.Logger
}

// Service exposes business rules for the session-scoped shopping list.
type Service interface {
	GetList(ctx context.Context, sessionID uuid.UUID) (ListDTO, error)
	AddProduct(ctx context.Context, sessionID, productID uuid.UUID, quantity int) (ItemDTO, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID uuid.UUID, quantity int) (ItemDTO, error)
	ToggleChecked(ctx context.Context, sessionID, itemID uuid.UUID) (ItemDTO, error)
	RemoveItem(ctx context.Context, sessionID, itemID uuid.UUID) error
	Clear(ctx context.Context, sessionID uuid.UUID) error

	// ItemsForComparison feeds the comparison engine.
	ItemsForComparison(ctx context.Context, sessionID uuid.UUID) ([]comparison.Item, error)
}

type service struct {
	repo     ListStore
	products ProductLookup
	cache    redis.ComparisonCache
	logg     *logger.Logger
}

// NewService builds a shopping-list service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "list repo is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product lookup is required")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		cache:    params.Cache,
		logg:     params.Logger,
	}, nil
}

// GetList returns the session's items with a snapshot-based total.
func (s *service) GetList(ctx context.Context, sessionID uuid.UUID) (ListDTO, error) {
	if sessionID == uuid.Nil {
		return ListDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	records, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return ListDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shopping list")
	}

	dto := ListDTO{Items: make([]ItemDTO, 0, len(records))}
	for _, record := range records {
		item := toItemDTO(record)
		dto.Items = append(dto.Items, item)
		dto.Total = dto.Total.Add(item.OriginalPrice.Mul(decimalFromQuantity(item.Quantity)))
	}
	return dto, nil
}

// AddProduct puts a catalog product on the list, snapshotting its effective
// price and store. Adding a product already on the list bumps its quantity
// instead of duplicating the line; the original snapshot is kept.
func (s *service) AddProduct(ctx context.Context, sessionID, productID uuid.UUID, quantity int) (ItemDTO, error) {
	if sessionID == uuid.Nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if productID == uuid.Nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	existing, err := s.repo.FindByProductName(ctx, sessionID, product.Name)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if err := s.repo.Update(ctx, &existing); err != nil {
			return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update list item")
		}
		s.invalidate(ctx, sessionID)
		return toItemDTO(existing), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load list item")
	}

	item := models.ShoppingListItem{
		ID:            uuid.New(),
		SessionID:     sessionID,
		ProductName:   product.Name,
		Quantity:      quantity,
		OriginalPrice: product.EffectivePrice(),
		OriginalStore: product.Supermarket,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create list item")
	}

	s.invalidate(ctx, sessionID)
	return toItemDTO(item), nil
}

// UpdateQuantity sets an item's quantity, clamped to a minimum of one.
func (s *service) UpdateQuantity(ctx context.Context, sessionID, itemID uuid.UUID, quantity int) (ItemDTO, error) {
	item, err := s.loadItem(ctx, sessionID, itemID)
	if err != nil {
		return ItemDTO{}, err
	}

	if quantity < 1 {
		quantity = 1
	}
	item.Quantity = quantity
	if err := s.repo.Update(ctx, &item); err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update list item")
	}

	s.invalidate(ctx, sessionID)
	return toItemDTO(item), nil
}

// ToggleChecked flips the item's checked state.
func (s *service) ToggleChecked(ctx context.Context, sessionID, itemID uuid.UUID) (ItemDTO, error) {
	item, err := s.loadItem(ctx, sessionID, itemID)
	if err != nil {
		return ItemDTO{}, err
	}

	item.Checked = !item.Checked
	if err := s.repo.Update(ctx, &item); err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update list item")
	}
	return toItemDTO(item), nil
}

// RemoveItem drops one line from the list.
func (s *service) RemoveItem(ctx context.Context, sessionID, itemID uuid.UUID) error {
	if sessionID == uuid.Nil || itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id and item id are required")
	}
	if err := s.repo.Delete(ctx, sessionID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete list item")
	}
	s.invalidate(ctx, sessionID)
	return nil
}

// Clear empties the session's list.
func (s *service) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.repo.DeleteBySession(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear shopping list")
	}
	s.invalidate(ctx, sessionID)
	return nil
}

// ItemsForComparison projects the session's lines into estimator items.
func (s *service) ItemsForComparison(ctx context.Context, sessionID uuid.UUID) ([]comparison.Item, error) {
	records, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items := make([]comparison.Item, 0, len(records))
	for _, record := range records {
		items = append(items, comparison.Item{
			Name:          record.ProductName,
			Quantity:      record.Quantity,
			OriginalPrice: record.OriginalPrice,
			OriginalStore: record.OriginalStore,
		})
	}
	return items, nil
}

func (s *service) loadItem(ctx context.Context, sessionID, itemID uuid.UUID) (models.ShoppingListItem, error) {
	if sessionID == uuid.Nil || itemID == uuid.Nil {
		return models.ShoppingListItem{}, pkgerrors.New(pkgerrors.CodeValidation, "session id and item id are required")
	}
	item, err := s.repo.FindByID(ctx, sessionID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ShoppingListItem{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "list item not found")
		}
		return models.ShoppingListItem{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load list item")
	}
	return item, nil
}

func (s *service) invalidate(ctx context.Context, sessionID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateComparison(ctx, sessionID.String()); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "comparison cache invalidation failed: "+err.Error())
	}
}
