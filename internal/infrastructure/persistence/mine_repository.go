package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bauxite/backend/internal/domain/catalog"
	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMineRepository implements catalog.MineRepository using GORM
type GormMineRepository struct {
	gormRepository[catalog.Mine]
}

// NewGormMineRepository creates a new GormMineRepository. A before-delete
// hook blocks removal of mines that still own subtypes.
func NewGormMineRepository(db *gorm.DB) *GormMineRepository {
	r := &GormMineRepository{
		gormRepository: newGormRepository[catalog.Mine](db, catalog.MineDescriptor),
	}
	r.hooks.Register(shared.BeforeDelete, func(ctx context.Context, mine *catalog.Mine) error {
		count, err := r.CountSubtypes(ctx, mine.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewIntegrityError("mine",
				fmt.Sprintf("%d product subtypes still reference it", count))
		}
		return nil
	})
	return r
}

// FindByName finds a mine by its exact name
func (r *GormMineRepository) FindByName(ctx context.Context, name string) (*catalog.Mine, error) {
	var mine catalog.Mine
	if err := r.db.WithContext(ctx).First(&mine, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mine, nil
}

// ExistsByName checks if a mine with the given name exists
func (r *GormMineRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&catalog.Mine{}).
		Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountSubtypes counts the subtypes referencing a mine
func (r *GormMineRepository) CountSubtypes(ctx context.Context, mineID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalog.ProductSubtype{}).
		Where("mine_id = ?", mineID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormMineRepository implements MineRepository
var _ catalog.MineRepository = (*GormMineRepository)(nil)
