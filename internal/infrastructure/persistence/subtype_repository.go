package persistence

import (
	"context"
	"errors"

	"github.com/bauxite/backend/internal/domain/catalog"
	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubtypeRepository implements catalog.SubtypeRepository using GORM
type GormSubtypeRepository struct {
	gormRepository[catalog.ProductSubtype]
}

// NewGormSubtypeRepository creates a new GormSubtypeRepository
func NewGormSubtypeRepository(db *gorm.DB) *GormSubtypeRepository {
	return &GormSubtypeRepository{
		gormRepository: newGormRepository[catalog.ProductSubtype](db, catalog.SubtypeDescriptor),
	}
}

// FindByID finds a subtype with its category and mine preloaded
func (r *GormSubtypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductSubtype, error) {
	var subtype catalog.ProductSubtype
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Mine").
		First(&subtype, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &subtype, nil
}

// FindByCategory finds subtypes belonging to a category
func (r *GormSubtypeRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.ProductSubtype, error) {
	var subtypes []catalog.ProductSubtype
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Mine").
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&subtypes).Error
	if err != nil {
		return nil, err
	}
	return subtypes, nil
}

// FindByMine finds subtypes sourced from a mine
func (r *GormSubtypeRepository) FindByMine(ctx context.Context, mineID uuid.UUID) ([]catalog.ProductSubtype, error) {
	var subtypes []catalog.ProductSubtype
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Mine").
		Where("mine_id = ?", mineID).
		Order("name ASC").
		Find(&subtypes).Error
	if err != nil {
		return nil, err
	}
	return subtypes, nil
}

// CombinationExists checks if a (name, category, mine) combination is taken
func (r *GormSubtypeRepository) CombinationExists(ctx context.Context, name string, categoryID, mineID, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&catalog.ProductSubtype{}).
		Where("name = ? AND category_id = ? AND mine_id = ?", name, categoryID, mineID)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByCategory returns subtype counts grouped by category id
func (r *GormSubtypeRepository) CountByCategory(ctx context.Context) (map[uuid.UUID]int64, error) {
	return r.countGrouped(ctx, "category_id")
}

// CountByMine returns subtype counts grouped by mine id
func (r *GormSubtypeRepository) CountByMine(ctx context.Context) (map[uuid.UUID]int64, error) {
	return r.countGrouped(ctx, "mine_id")
}

func (r *GormSubtypeRepository) countGrouped(ctx context.Context, column string) (map[uuid.UUID]int64, error) {
	var rows []struct {
		GroupID uuid.UUID `gorm:"column:group_id"`
		Count   int64     `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Model(&catalog.ProductSubtype{}).
		Select(column + " AS group_id, COUNT(*) AS count").
		Group(column).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupID] = row.Count
	}
	return counts, nil
}

// Ensure GormSubtypeRepository implements SubtypeRepository
var _ catalog.SubtypeRepository = (*GormSubtypeRepository)(nil)
