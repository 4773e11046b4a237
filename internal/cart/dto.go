package cart

// AddItemRequest payload for adding or merging a cart item.
type AddItemRequest struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"   example:"2"`
}

// SetQuantityRequest payload for replacing a cart row's quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" example:"3"`
}
