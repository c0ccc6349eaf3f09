package persistence

import (
	"context"
	"errors"

	"github.com/bauxite/backend/internal/domain/partner"
	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnerRepository implements partner.PartnerRepository using GORM
type GormPartnerRepository struct {
	gormRepository[partner.Partner]
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{
		gormRepository: newGormRepository[partner.Partner](db, partner.PartnerDescriptor),
	}
}

// FindByID finds a partner with its entity preloaded
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	var p partner.Partner
	err := r.db.WithContext(ctx).
		Preload("Entity").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByCode finds a partner by its exact code
func (r *GormPartnerRepository) FindByCode(ctx context.Context, code string) (*partner.Partner, error) {
	var p partner.Partner
	if err := r.db.WithContext(ctx).First(&p, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByEntity finds partners belonging to an entity
func (r *GormPartnerRepository) FindByEntity(ctx context.Context, entityID uuid.UUID) ([]partner.Partner, error) {
	var partners []partner.Partner
	err := r.db.WithContext(ctx).
		Preload("Entity").
		Where("entity_id = ?", entityID).
		Order("name ASC").
		Find(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}

// FindActive finds all active partners
func (r *GormPartnerRepository) FindActive(ctx context.Context) ([]partner.Partner, error) {
	var partners []partner.Partner
	err := r.db.WithContext(ctx).
		Preload("Entity").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}

// ExistsByCode checks if a partner with the given code exists
func (r *GormPartnerRepository) ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&partner.Partner{}).
		Where("code = ?", code)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByEntity returns partner counts grouped by entity id
func (r *GormPartnerRepository) CountByEntity(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		GroupID uuid.UUID `gorm:"column:group_id"`
		Count   int64     `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Model(&partner.Partner{}).
		Select("entity_id AS group_id, COUNT(*) AS count").
		Group("entity_id").
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

// Ensure GormPartnerRepository implements PartnerRepository
var _ partner.PartnerRepository = (*GormPartnerRepository)(nil)
