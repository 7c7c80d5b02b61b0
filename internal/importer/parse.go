package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/eurenemendes/ecofeira-backend/pkg/db/models"
	"github.com/eurenemendes/ecofeira-backend/pkg/enums"
	"github.com/eurenemendes/ecofeira-backend/pkg/textutil"
)

// Sheet parsing is header driven: the first row names the columns and the
// matching is accent and case insensitive, so editors can reorder columns
// freely. A bad row is reported and skipped; it never aborts the import.

type header map[string]int

func headerFromRow(row []string) header {
	h := header{}
	for i, cell := range row {
		h[textutil.Normalize(cell)] = i
	}
	return h
}

func (h header) get(row []string, names ...string) string {
	for _, name := range names {
		if idx, ok := h[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
	}
	return ""
}

// parsePrice accepts both "12.34" and Brazilian "R$ 1.234,56" notations.
func parsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", raw)
	}
	return value, nil
}

func parseBool(raw string) bool {
	switch textutil.Normalize(raw) {
	case "sim", "s", "true", "1", "x", "yes":
		return true
	default:
		return false
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// ParseProducts converts the products tab into catalog rows. The returned
// error aggregates every bad row.
func ParseProducts(rows [][]string) ([]models.Product, error) {
	if len(rows) < 2 {
		return []models.Product{}, nil
	}

	h := headerFromRow(rows[0])
	var errs error
	products := make([]models.Product, 0, len(rows)-1)
	seen := map[string]bool{}

	for i, row := range rows[1:] {
		line := i + 2

		name := h.get(row, "nome", "produto", "name")
		market := h.get(row, "mercado", "supermercado", "supermarket")
		if name == "" || market == "" {
			errs = multierr.Append(errs, fmt.Errorf("row %d: product name and market are required", line))
			continue
		}

		dupKey := textutil.Normalize(name) + "|" + textutil.Normalize(market)
		if seen[dupKey] {
			errs = multierr.Append(errs, fmt.Errorf("row %d: duplicate listing %q at %q", line, name, market))
			continue
		}

		normalPrice, err := parsePrice(h.get(row, "preco normal", "preco", "normal price"))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", line, err))
			continue
		}
		promoPrice, err := parsePrice(h.get(row, "preco promo", "promo", "promo price"))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", line, err))
			continue
		}
		if normalPrice.IsNegative() || promoPrice.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("row %d: negative price", line))
			continue
		}

		isPromo := parseBool(h.get(row, "promocao", "em promocao", "is promo"))
		if isPromo && promoPrice.IsZero() {
			isPromo = false
		}

		category := h.get(row, "categoria", "category")
		seen[dupKey] = true
		products = append(products, models.Product{
			Name:                  name,
			NameNormalized:        textutil.Normalize(name),
			Category:              category,
			CategoryNormalized:    textutil.Normalize(category),
			Supermarket:           market,
			SupermarketNormalized: textutil.Normalize(market),
			NormalPrice:           normalPrice,
			PromoPrice:            promoPrice,
			IsPromo:               isPromo,
			ImageURL:              optional(h.get(row, "imagem", "image", "image url")),
			LastUpdate:            optional(h.get(row, "atualizacao", "atualizado em", "last update")),
		})
	}

	return products, errs
}

// ParseStores converts the markets tab into the store directory.
func ParseStores(rows [][]string) ([]models.Supermarket, error) {
	if len(rows) < 2 {
		return []models.Supermarket{}, nil
	}

	h := headerFromRow(rows[0])
	var errs error
	stores := make([]models.Supermarket, 0, len(rows)-1)
	seen := map[string]bool{}

	for i, row := range rows[1:] {
		line := i + 2

		name := h.get(row, "nome", "mercado", "name")
		if name == "" {
			errs = multierr.Append(errs, fmt.Errorf("row %d: store name is required", line))
			continue
		}
		if seen[textutil.Normalize(name)] {
			errs = multierr.Append(errs, fmt.Errorf("row %d: duplicate store %q", line, name))
			continue
		}

		priceIndex := decimal.NewFromInt(1)
		if raw := h.get(row, "indice", "indice de preco", "price index"); raw != "" {
			parsed, err := parsePrice(raw)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("row %d: invalid price index %q", line, raw))
				continue
			}
			priceIndex = parsed
		}
		if !priceIndex.IsPositive() {
			errs = multierr.Append(errs, fmt.Errorf("row %d: price index must be positive", line))
			continue
		}

		status := enums.StoreStatusClosed
		if parseBool(h.get(row, "aberto", "open")) {
			status = enums.StoreStatusOpen
		}

		neighborhood := h.get(row, "bairro", "neighborhood")
		street := h.get(row, "rua", "endereco", "street")
		seen[textutil.Normalize(name)] = true
		stores = append(stores, models.Supermarket{
			Name:                   name,
			NameNormalized:         textutil.Normalize(name),
			LogoURL:                h.get(row, "logo", "logo url"),
			Street:                 street,
			StreetNormalized:       textutil.Normalize(street),
			Number:                 h.get(row, "numero", "number"),
			Neighborhood:           neighborhood,
			NeighborhoodNormalized: textutil.Normalize(neighborhood),
			Status:                 status,
			FlyerURL:               optional(h.get(row, "encarte", "flyer", "flyer url")),
			PriceIndex:             priceIndex,
		})
	}

	return stores, errs
}

// ParseBanners converts the banners tab into home content.
func ParseBanners(rows [][]string) ([]models.Banner, error) {
	if len(rows) < 2 {
		return []models.Banner{}, nil
	}

	h := headerFromRow(rows[0])
	var errs error
	banners := make([]models.Banner, 0, len(rows)-1)

	for i, row := range rows[1:] {
		line := i + 2

		imageURL := h.get(row, "imagem", "image", "image url")
		if imageURL == "" {
			errs = multierr.Append(errs, fmt.Errorf("row %d: banner image is required", line))
			continue
		}

		placement := enums.BannerPlacement(textutil.Normalize(h.get(row, "posicao", "placement")))
		if placement == "" {
			placement = enums.BannerPlacementMain
		}
		if !placement.Valid() {
			errs = multierr.Append(errs, fmt.Errorf("row %d: unknown placement %q", line, placement))
			continue
		}

		banners = append(banners, models.Banner{
			Placement: placement,
			ImageURL:  imageURL,
			Title:     h.get(row, "titulo", "title"),
			Subtitle:  h.get(row, "subtitulo", "subtitle"),
			Tag:       h.get(row, "tag"),
			CTA:       h.get(row, "botao", "cta"),
			LinkURL:   optional(h.get(row, "link", "link url")),
			Position:  len(banners),
		})
	}

	return banners, errs
}

// ParseSuggestions converts the suggestions tab into curated search tags.
func ParseSuggestions(rows [][]string) ([]models.Suggestion, error) {
	if len(rows) < 2 {
		return []models.Suggestion{}, nil
	}

	h := headerFromRow(rows[0])
	var errs error
	suggestions := make([]models.Suggestion, 0, len(rows)-1)
	seen := map[string]bool{}

	for i, row := range rows[1:] {
		line := i + 2

		label := h.get(row, "sugestao", "label", "termo")
		if label == "" {
			errs = multierr.Append(errs, fmt.Errorf("row %d: suggestion label is required", line))
			continue
		}
		if seen[textutil.Normalize(label)] {
			continue
		}
		seen[textutil.Normalize(label)] = true
		suggestions = append(suggestions, models.Suggestion{
			Label:    label,
			Position: len(suggestions),
		})
	}

	return suggestions, errs
}
