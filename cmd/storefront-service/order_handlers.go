package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mercadia/storefront/internal/httpx"
	"github.com/mercadia/storefront/internal/order"
)

// POST /orders
func createOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := repo.CreateFromCart(c.Request.Context(), httpx.Owner(c))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// GET /orders
func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		orders, err := repo.ListByOwner(c.Request.Context(), httpx.Owner(c), limit, offset)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		if orders == nil {
			orders = []order.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"items": orders, "limit": limit, "offset": offset})
	}
}

// GET /orders/:id
func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			// malformed ids behave like absent ones
			c.JSON(http.StatusNotFound, gin.H{"error": order.ErrNotFound.Error()})
			return
		}
		o, err := repo.GetForOwner(c.Request.Context(), id, httpx.Owner(c))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
