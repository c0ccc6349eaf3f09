package handler

import (
	"github.com/bauxite/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubtypeHandler exposes product subtype endpoints. Subtype listings
// scoped to one parent live under the parent's resource path.
type SubtypeHandler struct {
	BaseHandler
	service *catalog.SubtypeService
}

// NewSubtypeHandler creates a new SubtypeHandler
func NewSubtypeHandler(service *catalog.SubtypeService) *SubtypeHandler {
	return &SubtypeHandler{service: service}
}

// RegisterRoutes mounts subtype routes on the given group
func (h *SubtypeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subtypes := rg.Group("/catalog/subtypes")
	{
		subtypes.POST("", h.Create)
		subtypes.POST("/bulk", h.BulkCreate)
		subtypes.GET("", h.List)
		subtypes.GET("/options", h.Options)
		subtypes.GET("/stats", h.Stats)
		subtypes.GET("/:id", h.Get)
		subtypes.PUT("/:id", h.Update)
		subtypes.DELETE("/:id", h.Delete)
	}
	rg.GET("/catalog/categories/:id/subtypes", h.ByCategory)
	rg.GET("/catalog/mines/:id/subtypes", h.ByMine)
}

// Create handles POST /catalog/subtypes
func (h *SubtypeHandler) Create(c *gin.Context) {
	var req catalog.CreateSubtypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderCreated(c, h.service.Create(c.Request.Context(), req))
}

// BulkCreate handles POST /catalog/subtypes/bulk
func (h *SubtypeHandler) BulkCreate(c *gin.Context) {
	var req catalog.BulkCreateSubtypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderCreated(c, h.service.BulkCreate(c.Request.Context(), req))
}

// List handles GET /catalog/subtypes. The listing optionally narrows to
// one category and/or mine via query parameters.
func (h *SubtypeHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	for _, param := range []string{"category_id", "mine_id"} {
		value := c.Query(param)
		if value == "" {
			continue
		}
		id, err := uuid.Parse(value)
		if err != nil {
			h.BadRequest(c, param+" must be a valid UUID")
			return
		}
		filter.Filters[param] = id
	}
	h.RenderResult(c, h.service.List(c.Request.Context(), filter))
}

// Options handles GET /catalog/subtypes/options
func (h *SubtypeHandler) Options(c *gin.Context) {
	h.RenderResult(c, h.service.Options(c.Request.Context()))
}

// Stats handles GET /catalog/subtypes/stats
func (h *SubtypeHandler) Stats(c *gin.Context) {
	h.RenderResult(c, h.service.Stats(c.Request.Context()))
}

// Get handles GET /catalog/subtypes/:id
func (h *SubtypeHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Get(c.Request.Context(), id))
}

// ByCategory handles GET /catalog/categories/:id/subtypes
func (h *SubtypeHandler) ByCategory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.ByCategory(c.Request.Context(), id))
}

// ByMine handles GET /catalog/mines/:id/subtypes
func (h *SubtypeHandler) ByMine(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.ByMine(c.Request.Context(), id))
}

// Update handles PUT /catalog/subtypes/:id
func (h *SubtypeHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req catalog.UpdateSubtypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderResult(c, h.service.Update(c.Request.Context(), id, req))
}

// Delete handles DELETE /catalog/subtypes/:id
func (h *SubtypeHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Delete(c.Request.Context(), id))
}
