package comparison

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	dec, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return dec
}

func TestEstimateEmptyListReturnsNoOptions(t *testing.T) {
	res := Estimate(nil, nil, []StoreProfile{{Name: "Atacadao", PriceIndex: decimal.NewFromInt(1)}}, 0)
	if len(res.Options) != 0 {
		t.Fatalf("expected no options, got %d", len(res.Options))
	}
	if !res.Savings.IsZero() {
		t.Fatalf("expected zero savings, got %s", res.Savings)
	}
}

func TestEstimateUsesPromoPriceWhenActive(t *testing.T) {
	items := []Item{{Name: "Arroz 5kg", Quantity: 1, OriginalPrice: d(t, "25.00"), OriginalStore: "Mercado A"}}
	listings := []Listing{{
		Name:        "Arroz 5kg",
		Supermarket: "Mercado A",
		NormalPrice: d(t, "25.00"),
		PromoPrice:  d(t, "19.90"),
		IsPromo:     true,
	}}
	stores := []StoreProfile{{Name: "Mercado A", PriceIndex: d(t, "1.0")}}

	res := Estimate(items, listings, stores, 0)
	if len(res.Options) != 1 {
		t.Fatalf("expected one option, got %d", len(res.Options))
	}
	opt := res.Options[0]
	if !opt.TotalEstimated.Equal(d(t, "19.90")) {
		t.Fatalf("expected promo total 19.90, got %s", opt.TotalEstimated)
	}
	if opt.ConfirmedCount != 1 || !opt.TotalConfirmed.Equal(d(t, "19.90")) {
		t.Fatalf("expected confirmed promo line, got count=%d confirmed=%s", opt.ConfirmedCount, opt.TotalConfirmed)
	}
	if !opt.Lines[0].IsPromo {
		t.Fatalf("expected promo flag on line")
	}
}

func TestEstimateExtrapolatesThroughPriceIndex(t *testing.T) {
	// 10.00 at a 1.0-index store projects to 12.00 at a 1.2-index store.
	items := []Item{
		{Name: "Feijao 1kg", Quantity: 1, OriginalPrice: d(t, "8.00"), OriginalStore: "Barato"},
		{Name: "Cafe 500g", Quantity: 1, OriginalPrice: d(t, "10.00"), OriginalStore: "Barato"},
	}
	listings := []Listing{{
		Name:        "Feijao 1kg",
		Supermarket: "Caro",
		NormalPrice: d(t, "9.00"),
		PromoPrice:  decimal.Zero,
	}}
	stores := []StoreProfile{
		{Name: "Barato", PriceIndex: d(t, "1.0")},
		{Name: "Caro", PriceIndex: d(t, "1.2")},
	}

	res := Estimate(items, listings, stores, 0)
	if len(res.Options) != 1 {
		t.Fatalf("expected one option (Barato has no listings), got %d", len(res.Options))
	}
	opt := res.Options[0]
	if opt.StoreName != "Caro" {
		t.Fatalf("expected Caro, got %s", opt.StoreName)
	}
	cafe := opt.Lines[1]
	if cafe.Confirmed {
		t.Fatalf("cafe line should be extrapolated")
	}
	if !cafe.UnitPrice.Equal(d(t, "12.00")) {
		t.Fatalf("expected extrapolated unit 12.00, got %s", cafe.UnitPrice)
	}
	if !opt.TotalEstimated.Equal(d(t, "21.00")) {
		t.Fatalf("expected blended total 21.00, got %s", opt.TotalEstimated)
	}
	if !opt.TotalConfirmed.Equal(d(t, "9.00")) {
		t.Fatalf("expected confirmed total 9.00, got %s", opt.TotalConfirmed)
	}
}

func TestEstimateDefaultsUnknownOriginFactorToOne(t *testing.T) {
	items := []Item{
		{Name: "Leite 1L", Quantity: 1, OriginalPrice: d(t, "5.00"), OriginalStore: "Fechado"},
		{Name: "Pao", Quantity: 1, OriginalPrice: d(t, "7.00"), OriginalStore: "Fechado"},
	}
	listings := []Listing{{Name: "Pao", Supermarket: "Alvo", NormalPrice: d(t, "6.50")}}
	stores := []StoreProfile{{Name: "Alvo", PriceIndex: d(t, "1.1")}}

	res := Estimate(items, listings, stores, 0)
	if len(res.Options) != 1 {
		t.Fatalf("expected one option, got %d", len(res.Options))
	}
	leite := res.Options[0].Lines[0]
	if !leite.UnitPrice.Equal(d(t, "5.50")) {
		t.Fatalf("expected 5.00*1.1=5.50 with origin factor 1, got %s", leite.UnitPrice)
	}
}

func TestEstimateScalesByQuantity(t *testing.T) {
	items := []Item{{Name: "Ovos", Quantity: 3, OriginalPrice: d(t, "12.00"), OriginalStore: "A"}}
	listings := []Listing{{Name: "Ovos", Supermarket: "A", NormalPrice: d(t, "12.00")}}
	stores := []StoreProfile{{Name: "A", PriceIndex: d(t, "1.0")}}

	res := Estimate(items, listings, stores, 0)
	if !res.Options[0].TotalEstimated.Equal(d(t, "36.00")) {
		t.Fatalf("expected 36.00, got %s", res.Options[0].TotalEstimated)
	}
}

func TestEstimateClampsQuantityToOne(t *testing.T) {
	items := []Item{{Name: "Ovos", Quantity: 0, OriginalPrice: d(t, "12.00"), OriginalStore: "A"}}
	listings := []Listing{{Name: "Ovos", Supermarket: "A", NormalPrice: d(t, "12.00")}}
	stores := []StoreProfile{{Name: "A", PriceIndex: d(t, "1.0")}}

	res := Estimate(items, listings, stores, 0)
	if !res.Options[0].TotalEstimated.Equal(d(t, "12.00")) {
		t.Fatalf("expected quantity clamp to 1, got total %s", res.Options[0].TotalEstimated)
	}
}

func TestEstimateRanksTruncatesAndFlagsBest(t *testing.T) {
	items := []Item{{Name: "Arroz", Quantity: 1, OriginalPrice: d(t, "20.00"), OriginalStore: "S1"}}
	listings := []Listing{
		{Name: "Arroz", Supermarket: "S1", NormalPrice: d(t, "20.00")},
		{Name: "Arroz", Supermarket: "S2", NormalPrice: d(t, "18.00")},
		{Name: "Arroz", Supermarket: "S3", NormalPrice: d(t, "22.00")},
		{Name: "Arroz", Supermarket: "S4", NormalPrice: d(t, "19.00")},
		{Name: "Arroz", Supermarket: "S5", NormalPrice: d(t, "21.00")},
	}
	stores := []StoreProfile{
		{Name: "S1", PriceIndex: d(t, "1.0")},
		{Name: "S2", PriceIndex: d(t, "0.9")},
		{Name: "S3", PriceIndex: d(t, "1.1")},
		{Name: "S4", PriceIndex: d(t, "0.95")},
		{Name: "S5", PriceIndex: d(t, "1.05")},
	}

	res := Estimate(items, listings, stores, 4)
	if len(res.Options) != 4 {
		t.Fatalf("expected truncation to 4, got %d", len(res.Options))
	}
	for i := 1; i < len(res.Options); i++ {
		if res.Options[i-1].TotalEstimated.GreaterThan(res.Options[i].TotalEstimated) {
			t.Fatalf("options not sorted ascending at %d", i)
		}
	}
	best := 0
	for _, opt := range res.Options {
		if opt.IsBestOption {
			best++
		}
	}
	if best != 1 || !res.Options[0].IsBestOption {
		t.Fatalf("expected exactly the first option flagged best, got %d flags", best)
	}
	if res.Options[0].StoreName != "S2" {
		t.Fatalf("expected S2 cheapest, got %s", res.Options[0].StoreName)
	}
	// Savings spread is taken over the returned options only.
	if !res.Savings.Equal(d(t, "3.00")) {
		t.Fatalf("expected savings 21.00-18.00=3.00, got %s", res.Savings)
	}
}

func TestEstimateSavingsSpread(t *testing.T) {
	items := []Item{{Name: "Cesta", Quantity: 1, OriginalPrice: d(t, "100.00"), OriginalStore: "Caro"}}
	listings := []Listing{
		{Name: "Cesta", Supermarket: "Caro", NormalPrice: d(t, "100.00")},
		{Name: "Cesta", Supermarket: "Justo", NormalPrice: d(t, "85.00")},
	}
	stores := []StoreProfile{
		{Name: "Caro", PriceIndex: d(t, "1.0")},
		{Name: "Justo", PriceIndex: d(t, "0.9")},
	}

	res := Estimate(items, listings, stores, 0)
	if !res.Savings.Equal(d(t, "15.00")) {
		t.Fatalf("expected savings 15.00, got %s", res.Savings)
	}
}

func TestEstimateExcludesStoresWithoutConfirmedItems(t *testing.T) {
	items := []Item{{Name: "Acucar", Quantity: 1, OriginalPrice: d(t, "4.00"), OriginalStore: "A"}}
	listings := []Listing{{Name: "Acucar", Supermarket: "A", NormalPrice: d(t, "4.00")}}
	stores := []StoreProfile{
		{Name: "A", PriceIndex: d(t, "1.0")},
		{Name: "SemCatalogo", PriceIndex: d(t, "0.8")},
	}

	res := Estimate(items, listings, stores, 0)
	if len(res.Options) != 1 || res.Options[0].StoreName != "A" {
		t.Fatalf("expected only store A, got %+v", res.Options)
	}
}

func TestEstimateExcludesNonPositivePriceIndex(t *testing.T) {
	items := []Item{{Name: "Sal", Quantity: 1, OriginalPrice: d(t, "3.00"), OriginalStore: "A"}}
	listings := []Listing{
		{Name: "Sal", Supermarket: "A", NormalPrice: d(t, "3.00")},
		{Name: "Sal", Supermarket: "Zerado", NormalPrice: d(t, "1.00")},
	}
	stores := []StoreProfile{
		{Name: "A", PriceIndex: d(t, "1.0")},
		{Name: "Zerado", PriceIndex: decimal.Zero},
	}

	res := Estimate(items, listings, stores, 0)
	if len(res.Options) != 1 || res.Options[0].StoreName != "A" {
		t.Fatalf("expected zero-index store excluded, got %+v", res.Options)
	}
}

func TestEstimateTieBreaksByStoreName(t *testing.T) {
	items := []Item{{Name: "Farinha", Quantity: 1, OriginalPrice: d(t, "6.00"), OriginalStore: "Beta"}}
	listings := []Listing{
		{Name: "Farinha", Supermarket: "Beta", NormalPrice: d(t, "6.00")},
		{Name: "Farinha", Supermarket: "Alfa", NormalPrice: d(t, "6.00")},
	}
	stores := []StoreProfile{
		{Name: "Beta", PriceIndex: d(t, "1.0")},
		{Name: "Alfa", PriceIndex: d(t, "1.0")},
	}

	res := Estimate(items, listings, stores, 0)
	if res.Options[0].StoreName != "Alfa" {
		t.Fatalf("expected Alfa first on tie, got %s", res.Options[0].StoreName)
	}
}

func TestEstimateMatchesAccentInsensitively(t *testing.T) {
	items := []Item{{Name: "Açaí 1L", Quantity: 1, OriginalPrice: d(t, "15.00"), OriginalStore: "A"}}
	listings := []Listing{{Name: "Acai 1L", Supermarket: "A", NormalPrice: d(t, "14.00")}}
	stores := []StoreProfile{{Name: "A", PriceIndex: d(t, "1.0")}}

	res := Estimate(items, listings, stores, 0)
	if len(res.Options) != 1 || res.Options[0].ConfirmedCount != 1 {
		t.Fatalf("expected accent-insensitive match, got %+v", res.Options)
	}
}

func TestEstimateIsDeterministic(t *testing.T) {
	items := []Item{{Name: "Arroz", Quantity: 2, OriginalPrice: d(t, "20.00"), OriginalStore: "S1"}}
	listings := []Listing{
		{Name: "Arroz", Supermarket: "S1", NormalPrice: d(t, "20.00")},
		{Name: "Arroz", Supermarket: "S2", NormalPrice: d(t, "18.00")},
	}
	stores := []StoreProfile{
		{Name: "S1", PriceIndex: d(t, "1.0")},
		{Name: "S2", PriceIndex: d(t, "0.9")},
	}

	first := Estimate(items, listings, stores, 0)
	second := Estimate(items, listings, stores, 0)
	if len(first.Options) != len(second.Options) {
		t.Fatalf("option counts differ between runs")
	}
	for i := range first.Options {
		if first.Options[i].StoreName != second.Options[i].StoreName ||
			!first.Options[i].TotalEstimated.Equal(second.Options[i].TotalEstimated) {
			t.Fatalf("run mismatch at %d", i)
		}
	}
}

func TestEstimateFirstListingWinsOnDuplicateKey(t *testing.T) {
	items := []Item{{Name: "Açaí 1kg", Quantity: 1, OriginalPrice: d(t, "30.00"), OriginalStore: "Mercado A"}}
	// same product listed twice at the same store, accents differing
	listings := []Listing{
		{Name: "Açaí 1kg", Supermarket: "Mercado A", NormalPrice: d(t, "28.00")},
		{Name: "Acai 1kg", Supermarket: "Mercado A", NormalPrice: d(t, "31.00")},
	}
	stores := []StoreProfile{{Name: "Mercado A", PriceIndex: d(t, "1.0")}}

	res := Estimate(items, listings, stores, 0)
	if len(res.Options) != 1 {
		t.Fatalf("expected one option, got %d", len(res.Options))
	}
	if !res.Options[0].TotalEstimated.Equal(d(t, "28.00")) {
		t.Fatalf("expected first listing's price 28.00, got %s", res.Options[0].TotalEstimated)
	}
}
