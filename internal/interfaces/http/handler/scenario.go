package handler

import (
	"strconv"

	"github.com/bauxite/backend/internal/application/production"
	"github.com/gin-gonic/gin"
)

// ScenarioHandler exposes production scenario endpoints
type ScenarioHandler struct {
	BaseHandler
	service *production.ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler
func NewScenarioHandler(service *production.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

// RegisterRoutes mounts scenario routes on the given group
func (h *ScenarioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scenarios := rg.Group("/production/scenarios")
	{
		scenarios.POST("", h.Create)
		scenarios.GET("", h.List)
		scenarios.GET("/year/:year", h.ByYear)
		scenarios.GET("/year/:year/baseline", h.Baseline)
		scenarios.GET("/status/:status", h.ByStatus)
		scenarios.GET("/:id", h.Get)
		scenarios.GET("/:id/variants", h.Variants)
		scenarios.PUT("/:id", h.Update)
		scenarios.POST("/:id/archive", h.Archive)
		scenarios.POST("/:id/duplicate", h.Duplicate)
		scenarios.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /production/scenarios
func (h *ScenarioHandler) Create(c *gin.Context) {
	var req production.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderCreated(c, h.service.Create(c.Request.Context(), req))
}

// List handles GET /production/scenarios
func (h *ScenarioHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.List(c.Request.Context(), filter))
}

// ByYear handles GET /production/scenarios/year/:year
func (h *ScenarioHandler) ByYear(c *gin.Context) {
	year, ok := h.parseYear(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.ByYear(c.Request.Context(), year))
}

// Baseline handles GET /production/scenarios/year/:year/baseline
func (h *ScenarioHandler) Baseline(c *gin.Context) {
	year, ok := h.parseYear(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Baseline(c.Request.Context(), year))
}

// ByStatus handles GET /production/scenarios/status/:status
func (h *ScenarioHandler) ByStatus(c *gin.Context) {
	h.RenderResult(c, h.service.ByStatus(c.Request.Context(), c.Param("status")))
}

// Get handles GET /production/scenarios/:id
func (h *ScenarioHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Get(c.Request.Context(), id))
}

// Variants handles GET /production/scenarios/:id/variants
func (h *ScenarioHandler) Variants(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Variants(c.Request.Context(), id))
}

// Update handles PUT /production/scenarios/:id
func (h *ScenarioHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req production.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderResult(c, h.service.Update(c.Request.Context(), id, req))
}

// Archive handles POST /production/scenarios/:id/archive
func (h *ScenarioHandler) Archive(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Archive(c.Request.Context(), id))
}

// Duplicate handles POST /production/scenarios/:id/duplicate
func (h *ScenarioHandler) Duplicate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req production.DuplicateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}
	h.RenderCreated(c, h.service.Duplicate(c.Request.Context(), id, req))
}

// Delete handles DELETE /production/scenarios/:id
func (h *ScenarioHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	h.RenderResult(c, h.service.Delete(c.Request.Context(), id))
}

func (h *ScenarioHandler) parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.BadRequest(c, "year must be an integer")
		return 0, false
	}
	return year, true
}
