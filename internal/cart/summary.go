package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// buildSummary totals the cart at current product prices. The total is
// rounded to 2 decimals with banker's rounding, matching order totals.
func buildSummary(items []Item) (*Summary, error) {
	if items == nil {
		items = []Item{}
	}
	count := 0
	total := decimal.Zero
	for _, it := range items {
		price, err := decimal.NewFromString(it.Product.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price for product %s: %w", it.ProductID, err)
		}
		count += it.Quantity
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return &Summary{
		Items:      items,
		TotalItems: count,
		TotalPrice: total.RoundBank(2).StringFixed(2),
	}, nil
}
