package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	catalogapp "github.com/bauxite/backend/internal/application/catalog"
	dashboardapp "github.com/bauxite/backend/internal/application/dashboard"
	partnerapp "github.com/bauxite/backend/internal/application/partner"
	productionapp "github.com/bauxite/backend/internal/application/production"
	"github.com/bauxite/backend/internal/domain/catalog"
	"github.com/bauxite/backend/internal/domain/partner"
	"github.com/bauxite/backend/internal/domain/production"
	"github.com/bauxite/backend/internal/infrastructure/cache"
	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/bauxite/backend/internal/infrastructure/persistence"
	"github.com/bauxite/backend/internal/interfaces/http/handler"
	"github.com/bauxite/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// app is a fully wired server backed by a throwaway sqlite database
type app struct {
	engine *gin.Engine
	db     *persistence.Database
}

// newApp builds the whole stack the way cmd/server does, swapping
// postgres for a per-test sqlite file
func newApp(t *testing.T) *app {
	t.Helper()

	dbCfg := config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	db, err := persistence.NewDatabase(&dbCfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.DB.AutoMigrate(
		&catalog.ProductCategory{},
		&catalog.Mine{},
		&catalog.ProductSubtype{},
		&partner.PartnerEntity{},
		&partner.Partner{},
		&production.ProductionScenario{},
	))

	queryCache := cache.NewQueryCache(cache.WithCleanupInterval(time.Hour))
	t.Cleanup(func() { _ = queryCache.Close() })
	ttl := config.CacheConfig{
		EntityTTL:   time.Minute,
		RelationTTL: time.Minute,
		StatsTTL:    time.Minute,
	}
	log := zap.NewNop()

	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	mineRepo := persistence.NewGormMineRepository(db.DB)
	subtypeRepo := persistence.NewGormSubtypeRepository(db.DB)
	entityRepo := persistence.NewGormEntityRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	scenarioRepo := persistence.NewGormScenarioRepository(db.DB)

	r := router.New(config.HTTPConfig{MaxBodySize: 1 << 20}, "test", log)
	r.Register(
		handler.NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo, queryCache, ttl, log)),
		handler.NewMineHandler(catalogapp.NewMineService(mineRepo, queryCache, ttl, log)),
		handler.NewSubtypeHandler(catalogapp.NewSubtypeService(subtypeRepo, categoryRepo, mineRepo, queryCache, ttl, log)),
		handler.NewEntityHandler(partnerapp.NewEntityService(entityRepo, queryCache, ttl, log)),
		handler.NewPartnerHandler(partnerapp.NewPartnerService(partnerRepo, entityRepo, queryCache, ttl, log)),
		handler.NewScenarioHandler(productionapp.NewScenarioService(scenarioRepo, partnerRepo, queryCache, ttl, log)),
		handler.NewDashboardHandler(dashboardapp.NewDashboardService(
			categoryRepo, mineRepo, subtypeRepo, entityRepo, partnerRepo, scenarioRepo,
			queryCache, ttl, log)),
	)
	r.RegisterRoot(handler.NewSystemHandler(db, queryCache, "test"))

	return &app{engine: r.Engine(), db: db}
}

// do performs a request against the in-memory server. A non-nil body is
// JSON encoded.
func (a *app) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// envelope is the decoded API response shape
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    []string        `json:"errors"`
	ErrorCode string          `json:"error_code"`
	Meta      map[string]any  `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

// dataField extracts one field from the response data object
func dataField(t *testing.T, w *httptest.ResponseRecorder, field string) any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	return data[field]
}

// mustCreate performs a POST and fails the test unless it returns 201.
// It returns the created resource id.
func (a *app) mustCreate(t *testing.T, path string, body any) string {
	t.Helper()
	w := a.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, "create %s: %s", path, w.Body.String())
	id, ok := dataField(t, w, "id").(string)
	require.True(t, ok, "response data has no id: %s", w.Body.String())
	return id
}
