package router

import (
	"net/http"

	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/bauxite/backend/internal/interfaces/http/dto"
	"github.com/bauxite/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const apiVersion = "v1"

// RouteRegistrar mounts a handler's routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router wraps the gin engine and mounts the API under /api/v1
type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
	root   *gin.RouterGroup
}

// New builds a router with the standard middleware chain applied
func New(cfg config.HTTPConfig, env string, logger *zap.Logger) *Router {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.TrustedProxies)
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.CORSAllowHeaders

	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.MaxBodySize),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound,
			dto.NewErrorResponse(dto.ErrCodeNotFound, "Route not found", nil))
	})

	return &Router{
		engine: engine,
		api:    engine.Group("/api/" + apiVersion),
		root:   engine.Group(""),
	}
}

// Register mounts API handlers under /api/v1
func (r *Router) Register(registrars ...RouteRegistrar) {
	for _, registrar := range registrars {
		registrar.RegisterRoutes(r.api)
	}
}

// RegisterRoot mounts handlers at the server root, outside the
// versioned API prefix. Health and readiness probes live here.
func (r *Router) RegisterRoot(registrars ...RouteRegistrar) {
	for _, registrar := range registrars {
		registrar.RegisterRoutes(r.root)
	}
}

// Engine exposes the underlying gin engine for the HTTP server
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
