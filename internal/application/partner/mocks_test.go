package partner

import (
	"context"
	"time"

	"github.com/bauxite/backend/internal/domain/partner"
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

type mockEntityRepo struct {
	mock.Mock
}

func (m *mockEntityRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.PartnerEntity, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*partner.PartnerEntity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntityRepo) FindAll(ctx context.Context, filter domain.Filter) ([]partner.PartnerEntity, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]partner.PartnerEntity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntityRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEntityRepo) Create(ctx context.Context, entity *partner.PartnerEntity) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockEntityRepo) Update(ctx context.Context, entity *partner.PartnerEntity) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockEntityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEntityRepo) FindByCriteria(ctx context.Context, criteria map[string]any, op domain.CriteriaOperator) ([]partner.PartnerEntity, error) {
	args := m.Called(ctx, criteria, op)
	if v := args.Get(0); v != nil {
		return v.([]partner.PartnerEntity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntityRepo) BulkCreate(ctx context.Context, entities []*partner.PartnerEntity) error {
	return m.Called(ctx, entities).Error(0)
}

func (m *mockEntityRepo) GetOrCreate(ctx context.Context, lookup map[string]any, build func() *partner.PartnerEntity) (*partner.PartnerEntity, bool, error) {
	args := m.Called(ctx, lookup, build)
	if v := args.Get(0); v != nil {
		return v.(*partner.PartnerEntity), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockEntityRepo) UpdateOrCreate(ctx context.Context, lookup map[string]any, build func() *partner.PartnerEntity, apply func(*partner.PartnerEntity)) (*partner.PartnerEntity, bool, error) {
	args := m.Called(ctx, lookup, build, apply)
	if v := args.Get(0); v != nil {
		return v.(*partner.PartnerEntity), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockEntityRepo) FindByCode(ctx context.Context, code string) (*partner.PartnerEntity, error) {
	args := m.Called(ctx, code)
	if v := args.Get(0); v != nil {
		return v.(*partner.PartnerEntity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntityRepo) FindByType(ctx context.Context, entityType partner.EntityType) ([]partner.PartnerEntity, error) {
	args := m.Called(ctx, entityType)
	if v := args.Get(0); v != nil {
		return v.([]partner.PartnerEntity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntityRepo) ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEntityRepo) CountPartners(ctx context.Context, entityID uuid.UUID) (int64, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEntityRepo) CountActivePartners(ctx context.Context, entityID uuid.UUID) (int64, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).(int64), args.Error(1)
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
