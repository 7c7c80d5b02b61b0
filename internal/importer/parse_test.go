package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

func TestParseProductsHeaderDriven(t *testing.T) {
	rows := [][]string{
		{"Categoria", "Nome", "Mercado", "Preço Normal", "Preço Promo", "Promoção"},
		{"Grãos", "Arroz 5kg", "Justo", "R$ 25,00", "R$ 19,90", "sim"},
		{"Grãos", "Feijão 1kg", "Justo", "8.50", "", "não"},
	}

	products, err := ParseProducts(rows)
	if err != nil {
		t.Fatalf("unexpected row errors: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	arroz := products[0]
	if !arroz.NormalPrice.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("expected 25.00 from pt-BR notation, got %s", arroz.NormalPrice)
	}
	if !arroz.IsPromo || !arroz.PromoPrice.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("promo not parsed: %+v", arroz)
	}
	if arroz.NameNormalized != "arroz 5kg" || arroz.CategoryNormalized != "graos" {
		t.Fatalf("normalized columns not filled: %+v", arroz)
	}

	feijao := products[1]
	if feijao.IsPromo {
		t.Fatalf("feijao should not be promo")
	}
}

func TestParseProductsSkipsBadRowsAndReportsThem(t *testing.T) {
	rows := [][]string{
		{"Nome", "Mercado", "Preço Normal"},
		{"", "Justo", "10.00"},
		{"Cafe", "Justo", "abc"},
		{"Cafe", "Justo", "12.00"},
		{"Cafe", "Justo", "13.00"},
	}

	products, err := ParseProducts(rows)
	if len(products) != 1 || products[0].Name != "Cafe" {
		t.Fatalf("expected the one good row, got %+v", products)
	}
	if len(multierr.Errors(err)) != 3 {
		t.Fatalf("expected 3 row errors (missing name, bad price, duplicate), got %v", err)
	}
}

func TestParseProductsPromoWithoutPriceIsDemoted(t *testing.T) {
	rows := [][]string{
		{"Nome", "Mercado", "Preço Normal", "Promoção"},
		{"Leite", "Justo", "5.00", "sim"},
	}

	products, err := ParseProducts(rows)
	if err != nil {
		t.Fatalf("unexpected errors: %v", err)
	}
	if products[0].IsPromo {
		t.Fatalf("promo without promo price must fall back to normal pricing")
	}
}

func TestParseStoresValidatesPriceIndex(t *testing.T) {
	rows := [][]string{
		{"Nome", "Bairro", "Índice", "Aberto"},
		{"Justo", "Centro", "0,90", "sim"},
		{"Zerado", "Sul", "0", "sim"},
		{"SemIndice", "Norte", "", "não"},
	}

	stores, err := ParseStores(rows)
	if len(stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(stores))
	}
	if len(multierr.Errors(err)) != 1 {
		t.Fatalf("expected one row error for non-positive index, got %v", err)
	}

	justo := stores[0]
	if !justo.PriceIndex.Equal(decimal.RequireFromString("0.90")) {
		t.Fatalf("expected index 0.90, got %s", justo.PriceIndex)
	}
	if !justo.Status.IsOpen() {
		t.Fatalf("expected Justo open")
	}

	semIndice := stores[1]
	if !semIndice.PriceIndex.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("missing index should default to 1, got %s", semIndice.PriceIndex)
	}
	if semIndice.Status.IsOpen() {
		t.Fatalf("expected SemIndice closed")
	}
}

func TestParseBannersDefaultsPlacement(t *testing.T) {
	rows := [][]string{
		{"Imagem", "Título", "Posição"},
		{"https://cdn.example/b1.png", "Ofertas da semana", ""},
		{"https://cdn.example/b2.png", "Hortifruti", "grid"},
		{"", "Sem imagem", "main"},
	}

	banners, err := ParseBanners(rows)
	if len(banners) != 2 {
		t.Fatalf("expected 2 banners, got %d", len(banners))
	}
	if len(multierr.Errors(err)) != 1 {
		t.Fatalf("expected one row error for missing image, got %v", err)
	}
	if banners[0].Placement.String() != "main" || banners[1].Placement.String() != "grid" {
		t.Fatalf("placements not parsed: %+v", banners)
	}
	if banners[0].Position != 0 || banners[1].Position != 1 {
		t.Fatalf("positions should follow sheet order")
	}
}

func TestParseSuggestionsDeduplicates(t *testing.T) {
	rows := [][]string{
		{"Sugestão"},
		{"Arroz"},
		{"arroz"},
		{"Feijão"},
	}

	suggestions, err := ParseSuggestions(rows)
	if err != nil {
		t.Fatalf("unexpected errors: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected dedup to 2, got %d", len(suggestions))
	}
}
