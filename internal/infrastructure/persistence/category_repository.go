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

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	gormRepository[catalog.ProductCategory]
}

// NewGormCategoryRepository creates a new GormCategoryRepository. A
// before-delete hook blocks removal of categories that still own
// subtypes.
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	r := &GormCategoryRepository{
		gormRepository: newGormRepository[catalog.ProductCategory](db, catalog.CategoryDescriptor),
	}
	r.hooks.Register(shared.BeforeDelete, func(ctx context.Context, category *catalog.ProductCategory) error {
		count, err := r.CountSubtypes(ctx, category.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewIntegrityError("category",
				fmt.Sprintf("%d product subtypes still reference it", count))
		}
		return nil
	})
	return r
}

// FindByName finds a category by its exact name
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.ProductCategory, error) {
	var category catalog.ProductCategory
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// ExistsByName checks if a category with the given name exists
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&catalog.ProductCategory{}).
		Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountSubtypes counts the subtypes referencing a category
func (r *GormCategoryRepository) CountSubtypes(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&catalog.ProductSubtype{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
