package handler

import (
	"github.com/bauxite/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartnerHandler exposes partner endpoints
type PartnerHandler struct {
	BaseHandler
	service *partner.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(service *partner.PartnerService) *PartnerHandler {
	return &PartnerHandler{service: service}
}

// RegisterRoutes mounts partner routes on the given group
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partners := rg.Group("/partner/partners")
	{
		partners.POST("", h.Create)
		partners.GET("", h.List)
		partners.GET("/options", h.Options)
		partners.GET("/active", h.Active)
		partners.GET("/:id", h.Get)
		partners.PUT("/:id", h.Update)
		partners.DELETE("/:id", h.Delete)
		partners.POST("/:id/activate", h.Activate)
		partners.POST("/:id/deactivate", h.Deactivate)
		partners.POST("/:id/toggle", h.ToggleActive)
	}
	rg.GET("/partner/entities/:id/partners", h.ByEntity)
}

// Create handles POST /partner/partners
func (h *PartnerHandler) Create(c *gin.Context) {
	var req partner.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderCreated(c, h.service.Create(c.Request.Context(), req))
}

// List handles GET /partner/partners
func (h *PartnerHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.List(c.Request.Context(), filter))
}

// Options handles GET /partner/partners/options
func (h *PartnerHandler) Options(c *gin.Context) {
	h.RenderResult(c, h.service.Options(c.Request.Context()))
}

// Active handles GET /partner/partners/active
func (h *PartnerHandler) Active(c *gin.Context) {
	h.RenderResult(c, h.service.Active(c.Request.Context()))
}

// Get handles GET /partner/partners/:id
func (h *PartnerHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Get(c.Request.Context(), id))
}

// ByEntity handles GET /partner/entities/:id/partners
func (h *PartnerHandler) ByEntity(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.ByEntity(c.Request.Context(), id))
}

// Update handles PUT /partner/partners/:id
func (h *PartnerHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req partner.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderResult(c, h.service.Update(c.Request.Context(), id, req))
}

// Activate handles POST /partner/partners/:id/activate
func (h *PartnerHandler) Activate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Activate(c.Request.Context(), id))
}

// Deactivate handles POST /partner/partners/:id/deactivate
func (h *PartnerHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Deactivate(c.Request.Context(), id))
}

// ToggleActive handles POST /partner/partners/:id/toggle
func (h *PartnerHandler) ToggleActive(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.ToggleActive(c.Request.Context(), id))
}

// Delete handles DELETE /partner/partners/:id
func (h *PartnerHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Delete(c.Request.Context(), id))
}
