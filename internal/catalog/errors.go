package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrConflict         = errors.New("name already exists")
	ErrCategoryInUse    = errors.New("category has associated products")
)

// InsufficientStockError reports a quantity exceeding live stock. It
// carries what user-facing messages need: the product name and how many
// units are actually available.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %q, available: %d", e.ProductName, e.Available)
}

// MissingProductsError aborts a bulk update, naming every id that did
// not resolve.
type MissingProductsError struct {
	IDs []string
}

func (e *MissingProductsError) Error() string {
	return fmt.Sprintf("products not found: %s", strings.Join(e.IDs, ", "))
}
