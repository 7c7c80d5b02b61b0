package comparison

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/eurenemendes/ecofeira-backend/pkg/textutil"
)

// DefaultMaxResults caps how many store options a comparison returns.
const DefaultMaxResults = 4

// Item is one shopping-list line fed into the estimator.
type Item struct {
	Name          string
	Quantity      int
	OriginalPrice decimal.Decimal
	OriginalStore string
}

// Listing is one catalog row: a product priced at a specific supermarket.
type Listing struct {
	Name        string
	Supermarket string
	NormalPrice decimal.Decimal
	PromoPrice  decimal.Decimal
	IsPromo     bool
}

// StoreProfile carries the store attributes the estimator needs.
type StoreProfile struct {
	Name       string
	PriceIndex decimal.Decimal
}

// LineEstimate is the per-item detail inside a store estimate.
type LineEstimate struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	// Confirmed is true when the unit price came from a catalog listing at
	// this store rather than a price-index extrapolation.
	Confirmed bool
	IsPromo   bool
}

// StoreEstimate is the projected cost of the whole list at one store.
type StoreEstimate struct {
	StoreName      string
	TotalEstimated decimal.Decimal
	TotalConfirmed decimal.Decimal
	ConfirmedCount int
	ItemCount      int
	IsBestOption   bool
	Lines          []LineEstimate
}

// Result is a ranked comparison across stores.
type Result struct {
	Options []StoreEstimate
	// Savings is the spread between the most and least expensive of the
	// returned options.
	Savings decimal.Decimal
}

type listingKey struct {
	name  string
	store string
}

// Estimate projects the cost of the list at every store and ranks the
// results. A store's total blends confirmed catalog prices with price-index
// extrapolations for the items it has no listing for; stores with zero
// confirmed items are excluded. maxResults <= 0 falls back to
// DefaultMaxResults.
func Estimate(items []Item, listings []Listing, stores []StoreProfile, maxResults int) Result {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if len(items) == 0 || len(stores) == 0 {
		return Result{Options: []StoreEstimate{}, Savings: decimal.Zero}
	}

	// first listing wins when duplicates share a (name, store) key
	byKey := make(map[listingKey]Listing, len(listings))
	for _, l := range listings {
		k := listingKey{
			name:  textutil.Normalize(l.Name),
			store: textutil.Normalize(l.Supermarket),
		}
		if _, ok := byKey[k]; !ok {
			byKey[k] = l
		}
	}

	indexByStore := make(map[string]decimal.Decimal, len(stores))
	for _, s := range stores {
		indexByStore[textutil.Normalize(s.Name)] = s.PriceIndex
	}

	one := decimal.NewFromInt(1)
	options := make([]StoreEstimate, 0, len(stores))

	for _, store := range stores {
		if !store.PriceIndex.IsPositive() {
			continue
		}

		est := StoreEstimate{
			StoreName: store.Name,
			Lines:     make([]LineEstimate, 0, len(items)),
		}
		storeKey := textutil.Normalize(store.Name)

		for _, item := range items {
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			qtyDec := decimal.NewFromInt(int64(qty))

			line := LineEstimate{Name: item.Name, Quantity: qty}
			if listing, ok := byKey[listingKey{name: textutil.Normalize(item.Name), store: storeKey}]; ok {
				unit := listing.NormalPrice
				if listing.IsPromo {
					unit = listing.PromoPrice
				}
				line.UnitPrice = unit
				line.LineTotal = unit.Mul(qtyDec)
				line.Confirmed = true
				line.IsPromo = listing.IsPromo

				est.TotalConfirmed = est.TotalConfirmed.Add(line.LineTotal)
				est.ConfirmedCount++
			} else {
				originFactor := one
				if factor, ok := indexByStore[textutil.Normalize(item.OriginalStore)]; ok && factor.IsPositive() {
					originFactor = factor
				}
				unit := item.OriginalPrice.Div(originFactor).Mul(store.PriceIndex)
				line.UnitPrice = unit
				line.LineTotal = unit.Mul(qtyDec)
			}

			est.TotalEstimated = est.TotalEstimated.Add(line.LineTotal)
			est.ItemCount++
			est.Lines = append(est.Lines, line)
		}

		if est.ConfirmedCount > 0 {
			options = append(options, est)
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		cmp := options[i].TotalEstimated.Cmp(options[j].TotalEstimated)
		if cmp != 0 {
			return cmp < 0
		}
		return options[i].StoreName < options[j].StoreName
	})

	if len(options) > maxResults {
		options = options[:maxResults]
	}
	if len(options) > 0 {
		options[0].IsBestOption = true
	}

	savings := decimal.Zero
	if len(options) > 1 {
		savings = options[len(options)-1].TotalEstimated.Sub(options[0].TotalEstimated)
	}

	return Result{Options: options, Savings: savings}
}
