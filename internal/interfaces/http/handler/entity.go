package handler

import (
	"github.com/bauxite/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// EntityHandler exposes partner entity endpoints
type EntityHandler struct {
	BaseHandler
	service *partner.EntityService
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(service *partner.EntityService) *EntityHandler {
	return &EntityHandler{service: service}
}

// RegisterRoutes mounts partner entity routes on the given group
func (h *EntityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entities := rg.Group("/partner/entities")
	{
		entities.POST("", h.Create)
		entities.GET("", h.List)
		entities.GET("/options", h.Options)
		entities.GET("/code/:code", h.GetByCode)
		entities.GET("/type/:type", h.ByType)
		entities.GET("/:id", h.Get)
		entities.PUT("/:id", h.Update)
		entities.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /partner/entities
func (h *EntityHandler) Create(c *gin.Context) {
	var req partner.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderCreated(c, h.service.Create(c.Request.Context(), req))
}

// List handles GET /partner/entities
func (h *EntityHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.List(c.Request.Context(), filter))
}

// Options handles GET /partner/entities/options
func (h *EntityHandler) Options(c *gin.Context) {
	h.RenderResult(c, h.service.Options(c.Request.Context()))
}

// Get handles GET /partner/entities/:id
func (h *EntityHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Get(c.Request.Context(), id))
}

// GetByCode handles GET /partner/entities/code/:code
func (h *EntityHandler) GetByCode(c *gin.Context) {
	h.RenderResult(c, h.service.GetByCode(c.Request.Context(), c.Param("code")))
}

// ByType handles GET /partner/entities/type/:type
func (h *EntityHandler) ByType(c *gin.Context) {
	h.RenderResult(c, h.service.ByType(c.Request.Context(), c.Param("type")))
}

// Update handles PUT /partner/entities/:id
func (h *EntityHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req partner.UpdateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderResult(c, h.service.Update(c.Request.Context(), id, req))
}

// Delete handles DELETE /partner/entities/:id
func (h *EntityHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Delete(c.Request.Context(), id))
}
