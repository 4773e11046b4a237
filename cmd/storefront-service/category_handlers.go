package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mercadia/storefront/internal/catalog"
)

// POST /categories
func createCategoryHandler(repo catalog.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, "invalid json")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeBadRequest(c, "name is required")
			return
		}
		cat := &catalog.Category{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
		}
		if err := repo.CreateCategory(c.Request.Context(), cat); err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

// GET /categories
func listCategoriesHandler(repo catalog.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		cats, err := repo.ListCategories(c.Request.Context(), limit, offset)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		if cats == nil {
			cats = []catalog.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"items": cats, "limit": limit, "offset": offset})
	}
}

// GET /categories/:id
func getCategoryHandler(repo catalog.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": catalog.ErrCategoryNotFound.Error()})
			return
		}
		cat, err := repo.GetCategory(c.Request.Context(), id)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// PUT /categories/:id
func updateCategoryHandler(repo catalog.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": catalog.ErrCategoryNotFound.Error()})
			return
		}
		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBadRequest(c, "invalid json")
			return
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			writeBadRequest(c, "name must not be empty")
			return
		}
		cat, err := repo.UpdateCategory(c.Request.Context(), id, req.Name, req.Description)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// DELETE /categories/:id
func deleteCategoryHandler(repo catalog.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": catalog.ErrCategoryNotFound.Error()})
			return
		}
		if err := repo.DeleteCategory(c.Request.Context(), id); err != nil {
			writeDomainError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
