package handler

import (
	"net/http"
	"time"

	"github.com/bauxite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping() error
}

// CacheInspector reports query cache occupancy and hit rates
type CacheInspector interface {
	Len() int
	Stats() (hits, misses int64)
}

// SystemHandler exposes health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      Pinger
	cache   CacheInspector
	version string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, cache CacheInspector, version string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		cache:   cache,
		version: version,
		started: time.Now(),
	}
}

// RegisterRoutes mounts system routes on the given group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health handles GET /health. It always answers 200 as long as the
// process serves requests.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", gin.H{
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	}))
}

// Ready handles GET /ready. Readiness requires a reachable database;
// cache statistics ride along for operators.
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse("NOT_READY", "Database unreachable", nil))
		return
	}

	hits, misses := h.cache.Stats()
	c.JSON(http.StatusOK, dto.NewSuccessResponse("ready", gin.H{
		"cache": gin.H{
			"entries": h.cache.Len(),
			"hits":    hits,
			"misses":  misses,
		},
	}))
}
