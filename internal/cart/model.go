package cart

import (
	"time"

	"github.com/mercadia/storefront/internal/catalog"
)

type Item struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
	Product   catalog.Product `json:"product"`
}

// Summary is computed on read from live product prices; it is never
// stored, so it tracks price changes until the order is committed.
type Summary struct {
	Items      []Item `json:"items"`
	TotalItems int    `json:"total_items"`
	TotalPrice string `json:"total_price"`
}
