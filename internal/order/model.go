package order

import "time"

const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

// Order is immutable once created; nothing in this service mutates it
// afterwards.
type Order struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Status  string `json:"status"`
	// NUMERIC -> string
	TotalAmount string    `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	Items       []Item    `json:"items,omitempty"`
}

type Item struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	// nil once the product has been physically deleted
	ProductID *string `json:"product_id"`
	Quantity  int     `json:"quantity"`
	// PriceAtPurchase is frozen at commit time; later catalog price
	// edits never reach it.
	PriceAtPurchase string `json:"price_at_purchase"`
}
