package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercadia/storefront/internal/catalog"
	"github.com/mercadia/storefront/internal/httpx"
)

func validPrice(s string) bool {
	p, err := decimal.NewFromString(s)
	return err == nil && p.IsPositive()
}

func validPatch(p catalog.Patch) (string, bool) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return "name must not be empty", false
	}
	if p.Price != nil && !validPrice(*p.Price) {
		return "price must be a positive decimal", false
	}
	if p.Stock != nil && *p.Stock < 0 {
		return "stock must be non-negative", false
	}
	if p.CategoryID != nil {
		if _, err := uuid.Parse(*p.CategoryID); err != nil {
			return "category_id must be a valid uuid", false
		}
	}
	return "", true
}

// POST /products
func createProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, "invalid json")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeBadRequest(c, "name is required")
			return
		}
		if !validPrice(req.Price) {
			writeBadRequest(c, "price must be a positive decimal")
			return
		}
		if req.Stock < 0 {
			writeBadRequest(c, "stock must be non-negative")
			return
		}
		if req.CategoryID != nil {
			if _, err := uuid.Parse(*req.CategoryID); err != nil {
				writeBadRequest(c, "category_id must be a valid uuid")
				return
			}
		}
		p := &catalog.Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			IsActive:    true,
			CategoryID:  req.CategoryID,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// GET /products
//
// Regular users see active products; admins can ask for 'inactive' or
// 'all' via the active_status query parameter.
func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		active := true
		q := catalog.Query{Limit: limit, Offset: offset, Active: &active}
		if httpx.IsAdmin(c) {
			switch c.Query("active_status") {
			case "active":
				// already filtered to active
			case "inactive":
				inactive := false
				q.Active = &inactive
			default:
				q.Active = nil
			}
		}

		products, err := repo.List(c.Request.Context(), q)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"items": products, "limit": limit, "offset": offset})
	}
}

// GET /products/:id
func getProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": catalog.ErrNotFound.Error()})
			return
		}
		p, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		if !p.IsActive && !httpx.IsAdmin(c) {
			// deactivated products are invisible to regular users
			c.JSON(http.StatusNotFound, gin.H{"error": catalog.ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// PUT /products/:id
func updateProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": catalog.ErrNotFound.Error()})
			return
		}
		var patch catalog.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			writeBadRequest(c, "invalid json")
			return
		}
		if msg, ok := validPatch(patch); !ok {
			writeBadRequest(c, msg)
			return
		}
		p, err := repo.Update(c.Request.Context(), id, patch)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// PATCH /products/bulk
func bulkUpdateProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.BulkUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, "invalid json")
			return
		}
		if len(req.Updates) == 0 {
			writeBadRequest(c, "no update data provided")
			return
		}
		for _, it := range req.Updates {
			if _, err := uuid.Parse(it.ProductID); err != nil {
				writeBadRequest(c, "every update must carry a valid product uuid")
				return
			}
			if msg, ok := validPatch(it.Patch); !ok {
				writeBadRequest(c, msg)
				return
			}
		}
		updated, err := repo.BulkUpdate(c.Request.Context(), req.Updates)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}

// DELETE /products/:id
func deleteProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": catalog.ErrNotFound.Error()})
			return
		}
		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": catalog.ErrNotFound.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
