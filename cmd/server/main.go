package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/bauxite/backend/internal/application/catalog"
	dashboardapp "github.com/bauxite/backend/internal/application/dashboard"
	partnerapp "github.com/bauxite/backend/internal/application/partner"
	productionapp "github.com/bauxite/backend/internal/application/production"
	"github.com/bauxite/backend/internal/infrastructure/cache"
	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/bauxite/backend/internal/infrastructure/logger"
	"github.com/bauxite/backend/internal/infrastructure/persistence"
	"github.com/bauxite/backend/internal/interfaces/http/handler"
	"github.com/bauxite/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version))

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	queryCache := cache.NewQueryCache(
		cache.WithLogger(log),
		cache.WithCleanupInterval(cfg.Cache.CleanupInterval),
	)
	defer queryCache.Close()

	cacheTTL := cfg.Cache
	if !cfg.Cache.Enabled {
		// zero TTLs make every entry expire on arrival, so reads always
		// go to the database
		cacheTTL.EntityTTL = 0
		cacheTTL.RelationTTL = 0
		cacheTTL.StatsTTL = 0
		log.Info("Query cache disabled")
	}

	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	mineRepo := persistence.NewGormMineRepository(db.DB)
	subtypeRepo := persistence.NewGormSubtypeRepository(db.DB)
	entityRepo := persistence.NewGormEntityRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	scenarioRepo := persistence.NewGormScenarioRepository(db.DB)

	categoryService := catalogapp.NewCategoryService(categoryRepo, queryCache, cacheTTL, log)
	mineService := catalogapp.NewMineService(mineRepo, queryCache, cacheTTL, log)
	subtypeService := catalogapp.NewSubtypeService(subtypeRepo, categoryRepo, mineRepo, queryCache, cacheTTL, log)
	entityService := partnerapp.NewEntityService(entityRepo, queryCache, cacheTTL, log)
	partnerService := partnerapp.NewPartnerService(partnerRepo, entityRepo, queryCache, cacheTTL, log)
	scenarioService := productionapp.NewScenarioService(scenarioRepo, partnerRepo, queryCache, cacheTTL, log)
	dashboardService := dashboardapp.NewDashboardService(
		categoryRepo, mineRepo, subtypeRepo, entityRepo, partnerRepo, scenarioRepo,
		queryCache, cacheTTL, log)

	r := router.New(cfg.HTTP, cfg.App.Env, log)
	r.Register(
		handler.NewCategoryHandler(categoryService),
		handler.NewMineHandler(mineService),
		handler.NewSubtypeHandler(subtypeService),
		handler.NewEntityHandler(entityService),
		handler.NewPartnerHandler(partnerService),
		handler.NewScenarioHandler(scenarioService),
		handler.NewDashboardHandler(dashboardService),
	)
	r.RegisterRoot(handler.NewSystemHandler(db, queryCache, version))

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        r.Engine(),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
