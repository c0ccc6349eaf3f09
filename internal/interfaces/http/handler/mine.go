package handler

import (
	"github.com/bauxite/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// MineHandler exposes mine endpoints
type MineHandler struct {
	BaseHandler
	service *catalog.MineService
}

// NewMineHandler creates a new MineHandler
func NewMineHandler(service *catalog.MineService) *MineHandler {
	return &MineHandler{service: service}
}

// RegisterRoutes mounts mine routes on the given group
func (h *MineHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mines := rg.Group("/catalog/mines")
	{
		mines.POST("", h.Create)
		mines.GET("", h.List)
		mines.GET("/options", h.Options)
		mines.GET("/stats", h.Stats)
		mines.GET("/:id", h.Get)
		mines.PUT("/:id", h.Update)
		mines.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /catalog/mines
func (h *MineHandler) Create(c *gin.Context) {
	var req catalog.CreateMineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderCreated(c, h.service.Create(c.Request.Context(), req))
}

// List handles GET /catalog/mines
func (h *MineHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.List(c.Request.Context(), filter))
}

// Options handles GET /catalog/mines/options
func (h *MineHandler) Options(c *gin.Context) {
	h.RenderResult(c, h.service.Options(c.Request.Context()))
}

// Stats handles GET /catalog/mines/stats
func (h *MineHandler) Stats(c *gin.Context) {
	h.RenderResult(c, h.service.Stats(c.Request.Context()))
}

// Get handles GET /catalog/mines/:id
func (h *MineHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Get(c.Request.Context(), id))
}

// Update handles PUT /catalog/mines/:id
func (h *MineHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req catalog.UpdateMineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderResult(c, h.service.Update(c.Request.Context(), id, req))
}

// Delete handles DELETE /catalog/mines/:id
func (h *MineHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Delete(c.Request.Context(), id))
}
