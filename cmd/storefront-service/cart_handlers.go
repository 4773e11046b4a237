package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mercadia/storefront/internal/cart"
	"github.com/mercadia/storefront/internal/httpx"
)

// POST /cart/items
func addCartItemHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cart.AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, "invalid json")
			return
		}
		if _, err := uuid.Parse(req.ProductID); err != nil {
			writeBadRequest(c, "product_id must be a valid uuid")
			return
		}
		if req.Quantity <= 0 {
			writeBadRequest(c, "quantity must be positive")
			return
		}
		item, err := repo.AddOrMerge(c.Request.Context(), httpx.Owner(c), req.ProductID, req.Quantity)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// GET /cart
func getCartHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := repo.Summary(c.Request.Context(), httpx.Owner(c))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// PUT /cart/items/:product_id
func setCartItemHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("product_id")
		if _, err := uuid.Parse(productID); err != nil {
			writeBadRequest(c, "product_id must be a valid uuid")
			return
		}
		var req cart.SetQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, "invalid json")
			return
		}
		if req.Quantity <= 0 {
			writeBadRequest(c, "quantity must be positive")
			return
		}
		item, err := repo.SetQuantity(c.Request.Context(), httpx.Owner(c), productID, req.Quantity)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/items/:product_id
func removeCartItemHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("product_id")
		if _, err := uuid.Parse(productID); err != nil {
			writeBadRequest(c, "product_id must be a valid uuid")
			return
		}
		if err := repo.Remove(c.Request.Context(), httpx.Owner(c), productID); err != nil {
			writeDomainError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DELETE /cart
func clearCartHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Clear(c.Request.Context(), httpx.Owner(c)); err != nil {
			writeDomainError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
