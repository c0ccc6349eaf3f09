package handler

import (
	"github.com/bauxite/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CategoryHandler exposes product category endpoints
type CategoryHandler struct {
	BaseHandler
	service *catalog.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(service *catalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes mounts category routes on the given group
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/catalog/categories")
	{
		categories.POST("", h.Create)
		categories.GET("", h.List)
		categories.GET("/options", h.Options)
		categories.GET("/stats", h.Stats)
		categories.GET("/:id", h.Get)
		categories.PUT("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /catalog/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderCreated(c, h.service.Create(c.Request.Context(), req))
}

// List handles GET /catalog/categories
func (h *CategoryHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.List(c.Request.Context(), filter))
}

// Options handles GET /catalog/categories/options
func (h *CategoryHandler) Options(c *gin.Context) {
	h.RenderResult(c, h.service.Options(c.Request.Context()))
}

// Stats handles GET /catalog/categories/stats
func (h *CategoryHandler) Stats(c *gin.Context) {
	h.RenderResult(c, h.service.Stats(c.Request.Context()))
}

// Get handles GET /catalog/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Get(c.Request.Context(), id))
}

// Update handles PUT /catalog/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req catalog.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderResult(c, h.service.Update(c.Request.Context(), id, req))
}

// Delete handles DELETE /catalog/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Delete(c.Request.Context(), id))
}
