package catalog

import "time"

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price      string    `json:"price"`
	Stock      int       `json:"stock"`
	IsActive   bool      `json:"is_active"`
	CategoryID *string   `json:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Patch carries a partial product update. Nil fields are left untouched.
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Stock       *int    `json:"stock"`
	IsActive    *bool   `json:"is_active"`
	CategoryID  *string `json:"category_id"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Stock == nil && p.IsActive == nil && p.CategoryID == nil
}

// BulkItem is one entry of a bulk update batch, keyed by product id.
type BulkItem struct {
	ProductID string `json:"id"`
	Patch
}

// CreateProductRequest payload of product creation.
type CreateProductRequest struct {
	Name        string  `json:"name"        example:"Mechanical Keyboard"`
	Description string  `json:"description" example:"RGB 60%"`
	Price       string  `json:"price"       example:"199.90"`
	Stock       int     `json:"stock"       example:"10"`
	CategoryID  *string `json:"category_id"`
}

// CreateCategoryRequest payload of category creation.
type CreateCategoryRequest struct {
	Name        string `json:"name"        example:"Peripherals"`
	Description string `json:"description"`
}

// BulkUpdateRequest payload of a bulk product update.
type BulkUpdateRequest struct {
	Updates []BulkItem `json:"updates"`
}

type Query struct {
	Limit  int
	Offset int
	// Active filters by is_active; nil returns everything.
	Active *bool
}
