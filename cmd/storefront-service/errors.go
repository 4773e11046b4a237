package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercadia/storefront/internal/cart"
	"github.com/mercadia/storefront/internal/catalog"
	"github.com/mercadia/storefront/internal/order"
)

// writeDomainError maps business errors to HTTP responses. Anything
// unrecognized has already rolled back and surfaces as a generic 500.
func writeDomainError(c *gin.Context, err error) {
	var stockErr *catalog.InsufficientStockError
	var missingErr *catalog.MissingProductsError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"product":   stockErr.ProductName,
			"available": stockErr.Available,
		})
	case errors.As(err, &missingErr):
		c.JSON(http.StatusNotFound, gin.H{
			"error":       missingErr.Error(),
			"missing_ids": missingErr.IDs,
		})
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, order.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrUnavailable),
		errors.Is(err, order.ErrUnavailable),
		errors.Is(err, order.ErrProductGone),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, catalog.ErrCategoryInUse):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func writeBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
