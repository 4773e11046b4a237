package main

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercadia/storefront/internal/cart"
	"github.com/mercadia/storefront/internal/catalog"
	"github.com/mercadia/storefront/internal/order"
	"github.com/mercadia/storefront/internal/report"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
}

//
// ---------- STUBS & FAKES ----------
//

// memCartRepo implements cart.Repository in memory with the real
// merge/stock semantics, so handler tests exercise actual behavior.
type memCartRepo struct {
	products map[string]catalog.Product
	items    map[string]*cart.Item // owner|productID
}

func newMemCartRepo(products ...catalog.Product) *memCartRepo {
	r := &memCartRepo{
		products: make(map[string]catalog.Product),
		items:    make(map[string]*cart.Item),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func cartKey(owner, productID string) string { return owner + "|" + productID }

func (r *memCartRepo) AddOrMerge(_ context.Context, owner, productID string, quantity int) (*cart.Item, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, cart.ErrProductNotFound
	}
	if !p.IsActive {
		return nil, cart.ErrUnavailable
	}
	newQty := quantity
	if existing, ok := r.items[cartKey(owner, productID)]; ok {
		newQty += existing.Quantity
	}
	if newQty > p.Stock {
		return nil, &catalog.InsufficientStockError{ProductName: p.Name, Available: p.Stock}
	}
	it := &cart.Item{
		ID:        uuid.NewString(),
		OwnerID:   owner,
		ProductID: productID,
		Quantity:  newQty,
		AddedAt:   time.Now(),
		Product:   p,
	}
	r.items[cartKey(owner, productID)] = it
	return it, nil
}

func (r *memCartRepo) List(_ context.Context, owner string) ([]cart.Item, error) {
	var out []cart.Item
	for _, it := range r.items {
		if it.OwnerID == owner {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *memCartRepo) SetQuantity(_ context.Context, owner, productID string, quantity int) (*cart.Item, error) {
	it, ok := r.items[cartKey(owner, productID)]
	if !ok {
		return nil, cart.ErrItemNotFound
	}
	p := r.products[productID]
	if quantity > p.Stock {
		return nil, &catalog.InsufficientStockError{ProductName: p.Name, Available: p.Stock}
	}
	it.Quantity = quantity
	return it, nil
}

func (r *memCartRepo) Remove(_ context.Context, owner, productID string) error {
	if _, ok := r.items[cartKey(owner, productID)]; !ok {
		return cart.ErrItemNotFound
	}
	delete(r.items, cartKey(owner, productID))
	return nil
}

func (r *memCartRepo) Clear(_ context.Context, owner string) error {
	for k, it := range r.items {
		if it.OwnerID == owner {
			delete(r.items, k)
		}
	}
	return nil
}

func (r *memCartRepo) Summary(ctx context.Context, owner string) (*cart.Summary, error) {
	items, _ := r.List(ctx, owner)
	if items == nil {
		items = []cart.Item{}
	}
	count := 0
	total := decimal.Zero
	for _, it := range items {
		price, err := decimal.NewFromString(it.Product.Price)
		if err != nil {
			return nil, err
		}
		count += it.Quantity
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return &cart.Summary{
		Items:      items,
		TotalItems: count,
		TotalPrice: total.RoundBank(2).StringFixed(2),
	}, nil
}

// stubOrderRepo serves canned orders and records commits.
type stubOrderRepo struct {
	order     *order.Order
	createErr error
	created   int
}

func (s *stubOrderRepo) CreateFromCart(_ context.Context, owner string) (*order.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created++
	o := *s.order
	o.OwnerID = owner
	return &o, nil
}

func (s *stubOrderRepo) ListByOwner(_ context.Context, owner string, limit, offset int) ([]order.Order, error) {
	if s.order != nil && s.order.OwnerID == owner {
		return []order.Order{*s.order}, nil
	}
	return []order.Order{}, nil
}

func (s *stubOrderRepo) GetForOwner(_ context.Context, id, owner string) (*order.Order, error) {
	if s.order == nil || s.order.ID != id || s.order.OwnerID != owner {
		return nil, order.ErrNotFound
	}
	return s.order, nil
}

// stubCatalogRepo implements catalog.Repository over a map. BulkUpdate
// follows the real all-or-nothing contract.
type stubCatalogRepo struct {
	products map[string]*catalog.Product
	names    map[string]bool
	applied  []catalog.BulkItem
}

func newStubCatalogRepo(products ...catalog.Product) *stubCatalogRepo {
	r := &stubCatalogRepo{
		products: make(map[string]*catalog.Product),
		names:    make(map[string]bool),
	}
	for i := range products {
		p := products[i]
		r.products[p.ID] = &p
		r.names[p.Name] = true
	}
	return r
}

func (r *stubCatalogRepo) Create(_ context.Context, p *catalog.Product) error {
	if r.names[p.Name] {
		return catalog.ErrConflict
	}
	cp := *p
	r.products[p.ID] = &cp
	r.names[p.Name] = true
	return nil
}

func (r *stubCatalogRepo) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func (r *stubCatalogRepo) List(_ context.Context, q catalog.Query) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if q.Active != nil && p.IsActive != *q.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubCatalogRepo) Update(_ context.Context, id string, patch catalog.Patch) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	return p, nil
}

func (r *stubCatalogRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *stubCatalogRepo) BulkUpdate(_ context.Context, items []catalog.BulkItem) (int, error) {
	var missing []string
	for _, it := range items {
		if _, ok := r.products[it.ProductID]; !ok {
			missing = append(missing, it.ProductID)
		}
	}
	if len(missing) > 0 {
		return 0, &catalog.MissingProductsError{IDs: missing}
	}
	updated := 0
	for _, it := range items {
		if it.Patch.IsEmpty() {
			continue
		}
		r.applied = append(r.applied, it)
		updated++
	}
	return updated, nil
}

// stubCategoryRepo implements catalog.CategoryRepository over a map
// with unique names, mirroring the table constraint.
type stubCategoryRepo struct {
	categories map[string]*catalog.Category
	inUse      map[string]bool // categories with products attached
}

func newStubCategoryRepo(categories ...catalog.Category) *stubCategoryRepo {
	r := &stubCategoryRepo{
		categories: make(map[string]*catalog.Category),
		inUse:      make(map[string]bool),
	}
	for i := range categories {
		c := categories[i]
		r.categories[c.ID] = &c
	}
	return r
}

func (r *stubCategoryRepo) CreateCategory(_ context.Context, c *catalog.Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return catalog.ErrConflict
		}
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) GetCategory(_ context.Context, id string) (*catalog.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) ListCategories(_ context.Context, limit, offset int) ([]catalog.Category, error) {
	var out []catalog.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) UpdateCategory(_ context.Context, id string, name, description *string) (*catalog.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	if name != nil {
		c.Name = *name
	}
	if description != nil {
		c.Description = *description
	}
	return c, nil
}

func (r *stubCategoryRepo) DeleteCategory(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return catalog.ErrCategoryNotFound
	}
	if r.inUse[id] {
		return catalog.ErrCategoryInUse
	}
	delete(r.categories, id)
	return nil
}

// stubReportRepo records the requested range and returns a canned
// summary.
type stubReportRepo struct {
	summary  *report.SalesSummary
	gotStart time.Time
	gotEnd   time.Time
}

func (r *stubReportRepo) SalesSummary(_ context.Context, start, end time.Time) (*report.SalesSummary, error) {
	r.gotStart, r.gotEnd = start, end
	return r.summary, nil
}

func activeProduct(id, name, price string, stock int) catalog.Product {
	return catalog.Product{ID: id, Name: name, Price: price, Stock: stock, IsActive: true}
}
