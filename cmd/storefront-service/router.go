package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mercadia/storefront/internal/cart"
	"github.com/mercadia/storefront/internal/catalog"
	"github.com/mercadia/storefront/internal/httpx"
	"github.com/mercadia/storefront/internal/order"
	"github.com/mercadia/storefront/internal/report"
)

type repos struct {
	products   catalog.Repository
	categories catalog.CategoryRepository
	carts      cart.Repository
	orders     order.Repository
	reports    report.Repository
}

func newRouter(logger *zerolog.Logger, r repos) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	products := router.Group("/products")
	{
		products.GET("", listProductsHandler(r.products))
		products.GET("/:id", getProductHandler(r.products))
		products.POST("", httpx.RequireAdmin(), createProductHandler(r.products))
		products.PUT("/:id", httpx.RequireAdmin(), updateProductHandler(r.products))
		products.PATCH("/bulk", httpx.RequireAdmin(), bulkUpdateProductsHandler(r.products))
		products.DELETE("/:id", httpx.RequireAdmin(), deleteProductHandler(r.products))
	}

	categories := router.Group("/categories")
	{
		categories.GET("", listCategoriesHandler(r.categories))
		categories.GET("/:id", getCategoryHandler(r.categories))
		categories.POST("", httpx.RequireAdmin(), createCategoryHandler(r.categories))
		categories.PUT("/:id", httpx.RequireAdmin(), updateCategoryHandler(r.categories))
		categories.DELETE("/:id", httpx.RequireAdmin(), deleteCategoryHandler(r.categories))
	}

	cartGroup := router.Group("/cart", httpx.RequireOwner())
	{
		cartGroup.GET("", getCartHandler(r.carts))
		cartGroup.DELETE("", clearCartHandler(r.carts))
		cartGroup.POST("/items", addCartItemHandler(r.carts))
		cartGroup.PUT("/items/:product_id", setCartItemHandler(r.carts))
		cartGroup.DELETE("/items/:product_id", removeCartItemHandler(r.carts))
	}

	orders := router.Group("/orders", httpx.RequireOwner())
	{
		orders.POST("", createOrderHandler(r.orders))
		orders.GET("", listOrdersHandler(r.orders))
		orders.GET("/:id", getOrderHandler(r.orders))
	}

	router.GET("/reports/sales/summary", httpx.RequireAdmin(), salesSummaryHandler(r.reports))

	return router
}
