package comparison

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptionDTO is one ranked store option in the comparison response.
type OptionDTO struct {
	StoreName      string          `json:"storeName"`
	LogoURL        string          `json:"logoUrl,omitempty"`
	Status         string          `json:"status,omitempty"`
	TotalEstimated decimal.Decimal `json:"totalEstimated"`
	TotalConfirmed decimal.Decimal `json:"totalConfirmed"`
	ConfirmedCount int             `json:"confirmedCount"`
	ItemCount      int             `json:"itemCount"`
	IsBestOption   bool            `json:"isBestOption"`
}

// ComparisonDTO is the full ranked comparison for a session's list.
type ComparisonDTO struct {
	Options     []OptionDTO     `json:"options"`
	Savings     decimal.Decimal `json:"savings"`
	ItemCount   int             `json:"itemCount"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// LineDTO is the per-item detail of a single-store breakdown.
type LineDTO struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Confirmed bool            `json:"confirmed"`
	IsPromo   bool            `json:"isPromo"`
}

// BreakdownDTO expands one store option into its per-item lines.
type BreakdownDTO struct {
	Option OptionDTO `json:"option"`
	Lines  []LineDTO `json:"lines"`
}
