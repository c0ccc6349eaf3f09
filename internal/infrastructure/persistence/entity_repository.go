package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bauxite/backend/internal/domain/partner"
	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEntityRepository implements partner.EntityRepository using GORM
type GormEntityRepository struct {
	gormRepository[partner.PartnerEntity]
}

// NewGormEntityRepository creates a new GormEntityRepository. A
// before-delete hook blocks removal of entities that still have active
// partners.
func NewGormEntityRepository(db *gorm.DB) *GormEntityRepository {
	r := &GormEntityRepository{
		gormRepository: newGormRepository[partner.PartnerEntity](db, partner.EntityDescriptor),
	}
	r.hooks.Register(shared.BeforeDelete, func(ctx context.Context, entity *partner.PartnerEntity) error {
		count, err := r.CountActivePartners(ctx, entity.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewIntegrityError("partner entity",
				fmt.Sprintf("%d active partners still belong to it", count))
		}
		return nil
	})
	return r
}

// FindByCode finds an entity by its exact code
func (r *GormEntityRepository) FindByCode(ctx context.Context, code string) (*partner.PartnerEntity, error) {
	var entity partner.PartnerEntity
	if err := r.db.WithContext(ctx).First(&entity, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindByType finds entities of a given type
func (r *GormEntityRepository) FindByType(ctx context.Context, entityType partner.EntityType) ([]partner.PartnerEntity, error) {
	var entities []partner.PartnerEntity
	err := r.db.WithContext(ctx).
		Where("entity_type = ?", entityType).
		Order("name ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// ExistsByCode checks if an entity with the given code exists
func (r *GormEntityRepository) ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&partner.PartnerEntity{}).
		Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountPartners counts the partners referencing an entity
func (r *GormEntityRepository) CountPartners(ctx context.Context, entityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&partner.Partner{}).
		Where("entity_id = ?", entityID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountActivePartners counts the active partners referencing an entity
func (r *GormEntityRepository) CountActivePartners(ctx context.Context, entityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&partner.Partner{}).
		Where("entity_id = ? AND is_active = ?", entityID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormEntityRepository implements EntityRepository
var _ partner.EntityRepository = (*GormEntityRepository)(nil)
