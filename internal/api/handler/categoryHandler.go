package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes. auth is the required-JWT
// middleware; reads stay public.
func (h *CategoryHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	categories := api.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", auth, middleware.Authorize(policy.Catalog{}, policy.ActionCreate), h.Create)
		categories.DELETE("/:slug", auth, middleware.Authorize(policy.Catalog{}, policy.ActionDelete), h.Delete)
	}
}

// List retrieves categories with optional name search.
// GET /api/v1/categories?search=...&page=1&page_size=20
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	categories, err := h.categoryService.List(c.Query("search"), page, pageSize)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Create adds a category.
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Delete removes a category by slug.
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("slug")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
