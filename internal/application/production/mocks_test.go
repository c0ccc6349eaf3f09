package production

import (
	"context"
	"time"

	"github.com/bauxite/backend/internal/domain/partner"
	"github.com/bauxite/backend/internal/domain/production"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/bauxite/backend/internal/infrastructure/cache"
	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func testTTL() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		EntityTTL:   time.Minute,
		RelationTTL: time.Minute,
		StatsTTL:    time.Minute,
	}
}

func newTestCache() *cache.QueryCache {
	return cache.NewQueryCache(cache.WithCleanupInterval(time.Hour))
}

type mockScenarioRepo struct {
	mock.Mock
}

func (m *mockScenarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionScenario, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*production.ProductionScenario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScenarioRepo) FindAll(ctx context.Context, filter domain.Filter) ([]production.ProductionScenario, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]production.ProductionScenario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScenarioRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockScenarioRepo) Create(ctx context.Context, entity *production.ProductionScenario) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockScenarioRepo) Update(ctx context.Context, entity *production.ProductionScenario) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockScenarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockScenarioRepo) FindByCriteria(ctx context.Context, criteria map[string]any, op domain.CriteriaOperator) ([]production.ProductionScenario, error) {
	args := m.Called(ctx, criteria, op)
	if v := args.Get(0); v != nil {
		return v.([]production.ProductionScenario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScenarioRepo) BulkCreate(ctx context.Context, entities []*production.ProductionScenario) error {
	return m.Called(ctx, entities).Error(0)
}

func (m *mockScenarioRepo) GetOrCreate(ctx context.Context, lookup map[string]any, build func() *production.ProductionScenario) (*production.ProductionScenario, bool, error) {
	args := m.Called(ctx, lookup, build)
	if v := args.Get(0); v != nil {
		return v.(*production.ProductionScenario), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockScenarioRepo) UpdateOrCreate(ctx context.Context, lookup map[string]any, build func() *production.ProductionScenario, apply func(*production.ProductionScenario)) (*production.ProductionScenario, bool, error) {
	args := m.Called(ctx, lookup, build, apply)
	if v := args.Get(0); v != nil {
		return v.(*production.ProductionScenario), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockScenarioRepo) FindByYear(ctx context.Context, year int) ([]production.ProductionScenario, error) {
	args := m.Called(ctx, year)
	if v := args.Get(0); v != nil {
		return v.([]production.ProductionScenario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScenarioRepo) FindByStatus(ctx context.Context, status production.ScenarioStatus) ([]production.ProductionScenario, error) {
	args := m.Called(ctx, status)
	if v := args.Get(0); v != nil {
		return v.([]production.ProductionScenario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScenarioRepo) FindVariants(ctx context.Context, parentID uuid.UUID) ([]production.ProductionScenario, error) {
	args := m.Called(ctx, parentID)
	if v := args.Get(0); v != nil {
		return v.([]production.ProductionScenario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScenarioRepo) FindBaseline(ctx context.Context, year int) (*production.ProductionScenario, error) {
	args := m.Called(ctx, year)
	if v := args.Get(0); v != nil {
		return v.(*production.ProductionScenario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScenarioRepo) CountByStatus(ctx context.Context) (map[production.ScenarioStatus]int64, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[production.ScenarioStatus]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPartnerRepo struct {
	mock.Mock
}

func (m *mockPartnerRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*partner.Partner), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) FindAll(ctx context.Context, filter domain.Filter) ([]partner.Partner, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]partner.Partner), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPartnerRepo) Create(ctx context.Context, entity *partner.Partner) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockPartnerRepo) Update(ctx context.Context, entity *partner.Partner) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockPartnerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPartnerRepo) FindByCriteria(ctx context.Context, criteria map[string]any, op domain.CriteriaOperator) ([]partner.Partner, error) {
	args := m.Called(ctx, criteria, op)
	if v := args.Get(0); v != nil {
		return v.([]partner.Partner), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) BulkCreate(ctx context.Context, entities []*partner.Partner) error {
	return m.Called(ctx, entities).Error(0)
}

func (m *mockPartnerRepo) GetOrCreate(ctx context.Context, lookup map[string]any, build func() *partner.Partner) (*partner.Partner, bool, error) {
	args := m.Called(ctx, lookup, build)
	if v := args.Get(0); v != nil {
		return v.(*partner.Partner), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockPartnerRepo) UpdateOrCreate(ctx context.Context, lookup map[string]any, build func() *partner.Partner, apply func(*partner.Partner)) (*partner.Partner, bool, error) {
	args := m.Called(ctx, lookup, build, apply)
	if v := args.Get(0); v != nil {
		return v.(*partner.Partner), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockPartnerRepo) FindByCode(ctx context.Context, code string) (*partner.Partner, error) {
	args := m.Called(ctx, code)
	if v := args.Get(0); v != nil {
		return v.(*partner.Partner), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) FindByEntity(ctx context.Context, entityID uuid.UUID) ([]partner.Partner, error) {
	args := m.Called(ctx, entityID)
	if v := args.Get(0); v != nil {
		return v.([]partner.Partner), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) FindActive(ctx context.Context) ([]partner.Partner, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]partner.Partner), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPartnerRepo) ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPartnerRepo) CountByEntity(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[uuid.UUID]int64), args.Error(1)
	}
	return nil, args.Error(1)
}
