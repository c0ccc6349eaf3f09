package persistence

import (
	"context"
	"errors"

	"github.com/bauxite/backend/internal/domain/production"
	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormScenarioRepository implements production.ScenarioRepository using GORM
type GormScenarioRepository struct {
	gormRepository[production.ProductionScenario]
}

// NewGormScenarioRepository creates a new GormScenarioRepository. An
// after-delete hook detaches any variants so they survive their parent
// (mirrors the schema's ON DELETE SET NULL for drivers without FK
// enforcement).
func NewGormScenarioRepository(db *gorm.DB) *GormScenarioRepository {
	r := &GormScenarioRepository{
		gormRepository: newGormRepository[production.ProductionScenario](db, production.ScenarioDescriptor),
	}
	r.hooks.Register(shared.AfterDelete, func(ctx context.Context, scenario *production.ProductionScenario) error {
		return r.db.WithContext(ctx).
			Model(&production.ProductionScenario{}).
			Where("parent_scenario_id = ?", scenario.ID).
			Update("parent_scenario_id", nil).Error
	})
	return r
}

// FindByYear finds scenarios for a contractual year
func (r *GormScenarioRepository) FindByYear(ctx context.Context, year int) ([]production.ProductionScenario, error) {
	var scenarios []production.ProductionScenario
	err := r.db.WithContext(ctx).
		Where("contractual_year = ?", year).
		Order("created_at DESC").
		Find(&scenarios).Error
	if err != nil {
		return nil, err
	}
	return scenarios, nil
}

// FindByStatus finds scenarios in a given status
func (r *GormScenarioRepository) FindByStatus(ctx context.Context, status production.ScenarioStatus) ([]production.ProductionScenario, error) {
	var scenarios []production.ProductionScenario
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&scenarios).Error
	if err != nil {
		return nil, err
	}
	return scenarios, nil
}

// FindVariants finds the scenarios derived from a parent scenario
func (r *GormScenarioRepository) FindVariants(ctx context.Context, parentID uuid.UUID) ([]production.ProductionScenario, error) {
	var scenarios []production.ProductionScenario
	err := r.db.WithContext(ctx).
		Where("parent_scenario_id = ?", parentID).
		Order("created_at ASC").
		Find(&scenarios).Error
	if err != nil {
		return nil, err
	}
	return scenarios, nil
}

// FindBaseline finds the baseline scenario for a contractual year
func (r *GormScenarioRepository) FindBaseline(ctx context.Context, year int) (*production.ProductionScenario, error) {
	var scenario production.ProductionScenario
	err := r.db.WithContext(ctx).
		Where("contractual_year = ? AND is_baseline = ?", year, true).
		First(&scenario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &scenario, nil
}

// CountByStatus returns scenario counts grouped by status
func (r *GormScenarioRepository) CountByStatus(ctx context.Context) (map[production.ScenarioStatus]int64, error) {
	var rows []struct {
		Status production.ScenarioStatus `gorm:"column:status"`
		Count  int64                     `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Model(&production.ProductionScenario{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[production.ScenarioStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Ensure GormScenarioRepository implements ScenarioRepository
var _ production.ScenarioRepository = (*GormScenarioRepository)(nil)
