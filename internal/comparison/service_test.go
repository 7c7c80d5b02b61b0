package comparison

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	pkgerrors "github.com/eurenemendes/ecofeira-backend/pkg/errors"
	"github.com/eurenemendes/ecofeira-backend/pkg/redis"
)

type stubListSource struct {
	items []Item
	calls int
}

func (s *stubListSource) ItemsForComparison(_ context.Context, _ uuid.UUID) ([]Item, error) {
	s.calls++
	return s.items, nil
}

type stubCatalogSource struct {
	listings []Listing
}

func (s *stubCatalogSource) AllListings(_ context.Context) ([]Listing, error) {
	return s.listings, nil
}

type stubStoreSource struct {
	stores []StoreInfo
}

func (s *stubStoreSource) ComparableStores(_ context.Context) ([]StoreInfo, error) {
	return s.stores, nil
}

type memoryCache struct {
	values  map[string]string
	version int64
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (m *memoryCache) GetComparison(_ context.Context, sessionID string) (string, error) {
	val, ok := m.values[sessionID]
	if !ok {
		return "", redis.ErrCacheMiss
	}
	return val, nil
}

func (m *memoryCache) SetComparison(_ context.Context, sessionID, payload string, _ time.Duration) error {
	m.values[sessionID] = payload
	m.sets++
	return nil
}

func (m *memoryCache) InvalidateComparison(_ context.Context, sessionID string) error {
	delete(m.values, sessionID)
	return nil
}

func (m *memoryCache) CatalogVersion(_ context.Context) (int64, error) {
	return m.version, nil
}

func newTestService(t *testing.T, list *stubListSource, cache redis.ComparisonCache) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		ListSource: list,
		CatalogSource: &stubCatalogSource{listings: []Listing{
			{Name: "Arroz", Supermarket: "Justo", NormalPrice: decimal.RequireFromString("18.00")},
			{Name: "Arroz", Supermarket: "Caro", NormalPrice: decimal.RequireFromString("20.00")},
		}},
		StoreSource: &stubStoreSource{stores: []StoreInfo{
			{Name: "Justo", LogoURL: "https://cdn.example/justo.png", PriceIndex: decimal.RequireFromString("0.9")},
			{Name: "Caro", PriceIndex: decimal.RequireFromString("1.0")},
		}},
		Cache:  cache,
		Config: config.ComparisonConfig{CacheTTL: time.Minute, MaxResults: 4},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func defaultListSource() *stubListSource {
	return &stubListSource{items: []Item{
		{Name: "Arroz", Quantity: 1, OriginalPrice: decimal.RequireFromString("20.00"), OriginalStore: "Caro"},
	}}
}

func TestServiceCompareRanksAndDecorates(t *testing.T) {
	svc := newTestService(t, defaultListSource(), nil)

	dto, err := svc.Compare(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(dto.Options) != 2 {
		t.Fatalf("expected two options, got %d", len(dto.Options))
	}
	best := dto.Options[0]
	if best.StoreName != "Justo" || !best.IsBestOption {
		t.Fatalf("expected Justo flagged best, got %+v", best)
	}
	if best.LogoURL != "https://cdn.example/justo.png" {
		t.Fatalf("expected logo decoration, got %q", best.LogoURL)
	}
	if !dto.Savings.Equal(decimal.RequireFromString("2.00")) {
		t.Fatalf("expected savings 2.00, got %s", dto.Savings)
	}
}

func TestServiceCompareServesFromCache(t *testing.T) {
	list := defaultListSource()
	cache := newMemoryCache()
	svc := newTestService(t, list, cache)
	sessionID := uuid.New()

	first, err := svc.Compare(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("first compare: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	second, err := svc.Compare(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("second compare: %v", err)
	}
	if list.calls != 1 {
		t.Fatalf("expected cached second call, sources hit %d times", list.calls)
	}
	if !second.GeneratedAt.Equal(first.GeneratedAt) {
		t.Fatalf("cached payload should round-trip unchanged")
	}
}

func TestServiceCompareRecomputesAfterInvalidation(t *testing.T) {
	list := defaultListSource()
	cache := newMemoryCache()
	svc := newTestService(t, list, cache)
	sessionID := uuid.New()

	if _, err := svc.Compare(context.Background(), sessionID); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := cache.InvalidateComparison(context.Background(), sessionID.String()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := svc.Compare(context.Background(), sessionID); err != nil {
		t.Fatalf("compare after invalidation: %v", err)
	}
	if list.calls != 2 {
		t.Fatalf("expected recompute after invalidation, sources hit %d times", list.calls)
	}
}

func TestServiceCompareDropsCacheWhenCatalogVersionBumps(t *testing.T) {
	list := defaultListSource()
	cache := newMemoryCache()
	catalog := &stubCatalogSource{listings: []Listing{
		{Name: "Arroz", Supermarket: "Justo", NormalPrice: decimal.RequireFromString("18.00")},
	}}
	svc, err := NewService(ServiceParams{
		ListSource:    list,
		CatalogSource: catalog,
		StoreSource: &stubStoreSource{stores: []StoreInfo{
			{Name: "Justo", PriceIndex: decimal.RequireFromString("0.9")},
		}},
		Cache:  cache,
		Config: config.ComparisonConfig{CacheTTL: time.Minute, MaxResults: 4},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	sessionID := uuid.New()

	first, err := svc.Compare(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("compare before import: %v", err)
	}
	if !first.Options[0].TotalEstimated.Equal(decimal.RequireFromString("18.00")) {
		t.Fatalf("expected pre-import total 18.00, got %s", first.Options[0].TotalEstimated)
	}

	// an import rewrites prices and bumps the catalog version counter
	catalog.listings[0].NormalPrice = decimal.RequireFromString("50.00")
	cache.version++

	second, err := svc.Compare(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("compare after import: %v", err)
	}
	if list.calls != 2 {
		t.Fatalf("expected recompute after catalog version bump, sources hit %d times", list.calls)
	}
	if !second.Options[0].TotalEstimated.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected post-import total 50.00, got %s", second.Options[0].TotalEstimated)
	}
	if cache.sets != 2 {
		t.Fatalf("expected fresh cache write after recompute, got %d writes", cache.sets)
	}
}

func TestServiceCompareEmptyList(t *testing.T) {
	svc := newTestService(t, &stubListSource{}, nil)

	dto, err := svc.Compare(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(dto.Options) != 0 || !dto.Savings.IsZero() || dto.ItemCount != 0 {
		t.Fatalf("expected empty comparison, got %+v", dto)
	}
}

func TestServiceCompareStoreBreakdown(t *testing.T) {
	svc := newTestService(t, defaultListSource(), nil)

	breakdown, err := svc.CompareStore(context.Background(), uuid.New(), "justo")
	if err != nil {
		t.Fatalf("compare store: %v", err)
	}
	if breakdown.Option.StoreName != "Justo" {
		t.Fatalf("expected Justo option, got %s", breakdown.Option.StoreName)
	}
	if len(breakdown.Lines) != 1 || !breakdown.Lines[0].Confirmed {
		t.Fatalf("expected one confirmed line, got %+v", breakdown.Lines)
	}
}

func TestServiceCompareStoreNotAnOption(t *testing.T) {
	svc := newTestService(t, defaultListSource(), nil)

	_, err := svc.CompareStore(context.Background(), uuid.New(), "Inexistente")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceCompareRequiresSession(t *testing.T) {
	svc := newTestService(t, defaultListSource(), nil)

	_, err := svc.Compare(context.Background(), uuid.Nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
