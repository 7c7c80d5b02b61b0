package shoppinglist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
	"github.com/eurenemendes/ecofeira-backend/pkg/redis"
	"github.com/eurenemendes/ecofeira-backend/pkg/textutil"
)

type memoryListStore struct {
	items map[uuid.UUID]models.ShoppingListItem
}

func newMemoryListStore() *memoryListStore {
	return &memoryListStore{items: map[uuid.UUID]models.ShoppingListItem{}}
}

func (m *memoryListStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]models.ShoppingListItem, error) {
	var out []models.ShoppingListItem
	for _, item := range m.items {
		if item.SessionID == sessionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memoryListStore) FindByID(_ context.Context, sessionID, itemID uuid.UUID) (models.ShoppingListItem, error) {
	item, ok := m.items[itemID]
	if !ok || item.SessionID != sessionID {
		return models.ShoppingListItem{}, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (m *memoryListStore) FindByProductName(_ context.Context, sessionID uuid.UUID, name string) (models.ShoppingListItem, error) {
	target := textutil.Normalize(name)
	for _, item := range m.items {
		if item.SessionID == sessionID && textutil.Normalize(item.ProductName) == target {
			return item, nil
		}
	}
	return models.ShoppingListItem{}, gorm.ErrRecordNotFound
}

func (m *memoryListStore) Create(_ context.Context, item *models.ShoppingListItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	m.items[item.ID] = *item
	return nil
}

func (m *memoryListStore) Update(_ context.Context, item *models.ShoppingListItem) error {
	stored, ok := m.items[item.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Quantity = item.Quantity
	stored.Checked = item.Checked
	m.items[item.ID] = stored
	return nil
}

func (m *memoryListStore) Delete(_ context.Context, sessionID, itemID uuid.UUID) error {
	item, ok := m.items[itemID]
	if ok && item.SessionID == sessionID {
		delete(m.items, itemID)
	}
	return nil
}

func (m *memoryListStore) DeleteBySession(_ context.Context, sessionID uuid.UUID) error {
	for id, item := range m.items {
		if item.SessionID == sessionID {
			delete(m.items, id)
		}
	}
	return nil
}

type stubProductLookup struct {
	products map[uuid.UUID]models.Product
}

func (s *stubProductLookup) FindByID(_ context.Context, id uuid.UUID) (models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return models.Product{}, gorm.ErrRecordNotFound
	}
	return product, nil
}

type countingCache struct {
	invalidations int
}

func (c *countingCache) GetComparison(_ context.Context, _ string) (string, error) {
	return "", redis.ErrCacheMiss
}

func (c *countingCache) SetComparison(_ context.Context, _, _ string, _ time.Duration) error {
	return nil
}

func (c *countingCache) InvalidateComparison(_ context.Context, _ string) error {
	c.invalidations++
	return nil
}

func (c *countingCache) CatalogVersion(_ context.Context) (int64, error) {
	return 0, nil
}

func promoProduct() models.Product {
	return models.Product{
		ID:          uuid.New(),
		Name:        "Arroz 5kg",
		Supermarket: "Justo",
		NormalPrice: decimal.RequireFromString("25.00"),
		PromoPrice:  decimal.RequireFromString("19.90"),
		IsPromo:     true,
	}
}

func newListService(t *testing.T, product models.Product, cache *countingCache) (Service, *memoryListStore) {
	t.Helper()
	store := newMemoryListStore()
	params := ServiceParams{
		Repo:     store,
		Products: &stubProductLookup{products: map[uuid.UUID]models.Product{product.ID: product}},
	}
	if cache != nil {
		params.Cache = cache
	}
	svc, err := NewService(params)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestAddProductSnapshotsEffectivePrice(t *testing.T) {
	product := promoProduct()
	svc, _ := newListService(t, product, nil)
	sessionID := uuid.New()

	item, err := svc.AddProduct(context.Background(), sessionID, product.ID, 2)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if !item.OriginalPrice.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("expected promo snapshot 19.90, got %s", item.OriginalPrice)
	}
	if item.OriginalStore != "Justo" || item.Quantity != 2 {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestAddProductTwiceBumpsQuantityKeepsSnapshot(t *testing.T) {
	product := promoProduct()
	svc, _ := newListService(t, product, nil)
	sessionID := uuid.New()

	if _, err := svc.AddProduct(context.Background(), sessionID, product.ID, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	item, err := svc.AddProduct(context.Background(), sessionID, product.ID, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if item.Quantity != 4 {
		t.Fatalf("expected merged quantity 4, got %d", item.Quantity)
	}
	if !item.OriginalPrice.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("snapshot should not change on merge, got %s", item.OriginalPrice)
	}

	list, err := svc.GetList(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(list.Items))
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := newListService(t, promoProduct(), nil)

	_, err := svc.AddProduct(context.Background(), uuid.New(), uuid.New(), 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	product := promoProduct()
	svc, _ := newListService(t, product, nil)
	sessionID := uuid.New()

	added, err := svc.AddProduct(context.Background(), sessionID, product.ID, 2)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	updated, err := svc.UpdateQuantity(context.Background(), sessionID, added.ID, -5)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if updated.Quantity != 1 {
		t.Fatalf("expected clamp to 1, got %d", updated.Quantity)
	}
}

func TestToggleCheckedFlips(t *testing.T) {
	product := promoProduct()
	svc, _ := newListService(t, product, nil)
	sessionID := uuid.New()

	added, err := svc.AddProduct(context.Background(), sessionID, product.ID, 1)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	once, err := svc.ToggleChecked(context.Background(), sessionID, added.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !once.Checked {
		t.Fatalf("expected checked after first toggle")
	}
	twice, err := svc.ToggleChecked(context.Background(), sessionID, added.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if twice.Checked {
		t.Fatalf("expected unchecked after second toggle")
	}
}

func TestGetListTotalsSnapshots(t *testing.T) {
	product := promoProduct()
	svc, _ := newListService(t, product, nil)
	sessionID := uuid.New()

	if _, err := svc.AddProduct(context.Background(), sessionID, product.ID, 3); err != nil {
		t.Fatalf("add product: %v", err)
	}

	list, err := svc.GetList(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if !list.Total.Equal(decimal.RequireFromString("59.70")) {
		t.Fatalf("expected total 3*19.90=59.70, got %s", list.Total)
	}
}

func TestMutationsInvalidateComparisonCache(t *testing.T) {
	product := promoProduct()
	cache := &countingCache{}
	svc, _ := newListService(t, product, cache)
	sessionID := uuid.New()

	added, err := svc.AddProduct(context.Background(), sessionID, product.ID, 1)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if _, err := svc.UpdateQuantity(context.Background(), sessionID, added.ID, 2); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if err := svc.RemoveItem(context.Background(), sessionID, added.ID); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if err := svc.Clear(context.Background(), sessionID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if cache.invalidations != 4 {
		t.Fatalf("expected 4 invalidations, got %d", cache.invalidations)
	}
}

func TestItemsForComparisonProjection(t *testing.T) {
	product := promoProduct()
	svc, _ := newListService(t, product, nil)
	sessionID := uuid.New()

	if _, err := svc.AddProduct(context.Background(), sessionID, product.ID, 2); err != nil {
		t.Fatalf("add product: %v", err)
	}

	items, err := svc.ItemsForComparison(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("items for comparison: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	got := items[0]
	if got.Name != "Arroz 5kg" || got.Quantity != 2 || got.OriginalStore != "Justo" {
		t.Fatalf("unexpected projection %+v", got)
	}
	if !got.OriginalPrice.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("expected snapshot price, got %s", got.OriginalPrice)
	}
}
