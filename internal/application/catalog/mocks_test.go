package catalog

import (
	"context"
	"time"

	"github.com/bauxite/backend/internal/domain/catalog"
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

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductCategory, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*catalog.ProductCategory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) FindAll(ctx context.Context, filter domain.Filter) ([]catalog.ProductCategory, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]catalog.ProductCategory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCategoryRepo) Create(ctx context.Context, entity *catalog.ProductCategory) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockCategoryRepo) Update(ctx context.Context, entity *catalog.ProductCategory) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryRepo) FindByCriteria(ctx context.Context, criteria map[string]any, op domain.CriteriaOperator) ([]catalog.ProductCategory, error) {
	args := m.Called(ctx, criteria, op)
	if v := args.Get(0); v != nil {
		return v.([]catalog.ProductCategory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) BulkCreate(ctx context.Context, entities []*catalog.ProductCategory) error {
	return m.Called(ctx, entities).Error(0)
}

func (m *mockCategoryRepo) GetOrCreate(ctx context.Context, lookup map[string]any, build func() *catalog.ProductCategory) (*catalog.ProductCategory, bool, error) {
	args := m.Called(ctx, lookup, build)
	if v := args.Get(0); v != nil {
		return v.(*catalog.ProductCategory), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockCategoryRepo) UpdateOrCreate(ctx context.Context, lookup map[string]any, build func() *catalog.ProductCategory, apply func(*catalog.ProductCategory)) (*catalog.ProductCategory, bool, error) {
	args := m.Called(ctx, lookup, build, apply)
	if v := args.Get(0); v != nil {
		return v.(*catalog.ProductCategory), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*catalog.ProductCategory, error) {
	args := m.Called(ctx, name)
	if v := args.Get(0); v != nil {
		return v.(*catalog.ProductCategory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepo) CountSubtypes(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCategoryRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

type mockMineRepo struct {
	mock.Mock
}

func (m *mockMineRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Mine, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Mine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMineRepo) FindAll(ctx context.Context, filter domain.Filter) ([]catalog.Mine, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]catalog.Mine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMineRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMineRepo) Create(ctx context.Context, entity *catalog.Mine) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockMineRepo) Update(ctx context.Context, entity *catalog.Mine) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockMineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMineRepo) FindByCriteria(ctx context.Context, criteria map[string]any, op domain.CriteriaOperator) ([]catalog.Mine, error) {
	args := m.Called(ctx, criteria, op)
	if v := args.Get(0); v != nil {
		return v.([]catalog.Mine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMineRepo) BulkCreate(ctx context.Context, entities []*catalog.Mine) error {
	return m.Called(ctx, entities).Error(0)
}

func (m *mockMineRepo) GetOrCreate(ctx context.Context, lookup map[string]any, build func() *catalog.Mine) (*catalog.Mine, bool, error) {
	args := m.Called(ctx, lookup, build)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Mine), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockMineRepo) UpdateOrCreate(ctx context.Context, lookup map[string]any, build func() *catalog.Mine, apply func(*catalog.Mine)) (*catalog.Mine, bool, error) {
	args := m.Called(ctx, lookup, build, apply)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Mine), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockMineRepo) FindByName(ctx context.Context, name string) (*catalog.Mine, error) {
	args := m.Called(ctx, name)
	if v := args.Get(0); v != nil {
		return v.(*catalog.Mine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMineRepo) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMineRepo) CountSubtypes(ctx context.Context, mineID uuid.UUID) (int64, error) {
	args := m.Called(ctx, mineID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMineRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

type mockSubtypeRepo struct {
	mock.Mock
}

func (m *mockSubtypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductSubtype, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*catalog.ProductSubtype), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubtypeRepo) FindAll(ctx context.Context, filter domain.Filter) ([]catalog.ProductSubtype, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]catalog.ProductSubtype), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubtypeRepo) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubtypeRepo) Create(ctx context.Context, entity *catalog.ProductSubtype) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockSubtypeRepo) Update(ctx context.Context, entity *catalog.ProductSubtype) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockSubtypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSubtypeRepo) FindByCriteria(ctx context.Context, criteria map[string]any, op domain.CriteriaOperator) ([]catalog.ProductSubtype, error) {
	args := m.Called(ctx, criteria, op)
	if v := args.Get(0); v != nil {
		return v.([]catalog.ProductSubtype), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubtypeRepo) BulkCreate(ctx context.Context, entities []*catalog.ProductSubtype) error {
	return m.Called(ctx, entities).Error(0)
}

func (m *mockSubtypeRepo) GetOrCreate(ctx context.Context, lookup map[string]any, build func() *catalog.ProductSubtype) (*catalog.ProductSubtype, bool, error) {
	args := m.Called(ctx, lookup, build)
	if v := args.Get(0); v != nil {
		return v.(*catalog.ProductSubtype), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockSubtypeRepo) UpdateOrCreate(ctx context.Context, lookup map[string]any, build func() *catalog.ProductSubtype, apply func(*catalog.ProductSubtype)) (*catalog.ProductSubtype, bool, error) {
	args := m.Called(ctx, lookup, build, apply)
	if v := args.Get(0); v != nil {
		return v.(*catalog.ProductSubtype), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockSubtypeRepo) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.ProductSubtype, error) {
	args := m.Called(ctx, categoryID)
	if v := args.Get(0); v != nil {
		return v.([]catalog.ProductSubtype), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubtypeRepo) FindByMine(ctx context.Context, mineID uuid.UUID) ([]catalog.ProductSubtype, error) {
	args := m.Called(ctx, mineID)
	if v := args.Get(0); v != nil {
		return v.([]catalog.ProductSubtype), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubtypeRepo) CombinationExists(ctx context.Context, name string, categoryID, mineID, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, categoryID, mineID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubtypeRepo) CountByCategory(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[uuid.UUID]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubtypeRepo) CountByMine(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[uuid.UUID]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubtypeRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}
