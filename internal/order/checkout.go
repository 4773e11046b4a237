package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mercadia/storefront/internal/catalog"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrEmptyCart   = errors.New("shopping cart is empty")
	ErrProductGone = errors.New("product no longer exists")
	ErrUnavailable = errors.New("product is not available for purchase")
)

// line is one cart row joined with the product state read inside the
// commit transaction.
type line struct {
	productID string
	name      string
	price     decimal.Decimal
	stock     int
	active    bool
	missing   bool
	quantity  int
}

// checkoutTotal re-validates every cart row against current product
// state and returns the order total. The add-to-cart checks already ran
// once, but time has passed; this commit-time pass is the one that
// matters. The total is rounded to 2 decimals with banker's rounding.
func checkoutTotal(lines []line) (decimal.Decimal, error) {
	if len(lines) == 0 {
		return decimal.Decimal{}, ErrEmptyCart
	}
	total := decimal.Zero
	for _, l := range lines {
		if l.missing {
			return decimal.Decimal{}, fmt.Errorf("product %s: %w", l.productID, ErrProductGone)
		}
		if !l.active {
			return decimal.Decimal{}, fmt.Errorf("product %q: %w", l.name, ErrUnavailable)
		}
		if l.quantity > l.stock {
			return decimal.Decimal{}, &catalog.InsufficientStockError{ProductName: l.name, Available: l.stock}
		}
		total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.quantity))))
	}
	return total.RoundBank(2), nil
}
