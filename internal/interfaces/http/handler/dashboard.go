package handler

import (
	"github.com/bauxite/backend/internal/application/dashboard"
	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes dashboard aggregate endpoints
type DashboardHandler struct {
	BaseHandler
	service *dashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes mounts dashboard routes on the given group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stats := rg.Group("/dashboard")
	{
		stats.GET("/summary", h.Summary)
		stats.GET("/subtypes-by-category", h.SubtypesByCategory)
		stats.GET("/subtypes-by-mine", h.SubtypesByMine)
		stats.GET("/partners-by-entity", h.PartnersByEntity)
	}
}

// Summary handles GET /dashboard/summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	h.RenderResult(c, h.service.GetSummary(c.Request.Context()))
}

// SubtypesByCategory handles GET /dashboard/subtypes-by-category
func (h *DashboardHandler) SubtypesByCategory(c *gin.Context) {
	h.RenderResult(c, h.service.SubtypesByCategory(c.Request.Context()))
}

// SubtypesByMine handles GET /dashboard/subtypes-by-mine
func (h *DashboardHandler) SubtypesByMine(c *gin.Context) {
	h.RenderResult(c, h.service.SubtypesByMine(c.Request.Context()))
}

// PartnersByEntity handles GET /dashboard/partners-by-entity
func (h *DashboardHandler) PartnersByEntity(c *gin.Context) {
	h.RenderResult(c, h.service.PartnersByEntity(c.Request.Context()))
}
