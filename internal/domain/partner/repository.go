package partner

import (
	"context"

	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EntityRepository defines the interface for partner entity persistence
type EntityRepository interface {
	shared.Repository[PartnerEntity]

	// FindByCode finds an entity by its exact code
	FindByCode(ctx context.Context, code string) (*PartnerEntity, error)

	// FindByType finds entities of a given type
	FindByType(ctx context.Context, entityType EntityType) ([]PartnerEntity, error)

	// ExistsByCode checks if an entity with the code exists, optionally
	// excluding one id
	ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)

	// CountPartners counts the partners referencing an entity
	CountPartners(ctx context.Context, entityID uuid.UUID) (int64, error)

	// CountActivePartners counts the active partners referencing an entity
	CountActivePartners(ctx context.Context, entityID uuid.UUID) (int64, error)
}

// PartnerRepository defines the interface for partner persistence
type PartnerRepository interface {
	shared.Repository[Partner]

	// FindByCode finds a partner by its exact code
	FindByCode(ctx context.Context, code string) (*Partner, error)

	// FindByEntity finds partners belonging to an entity
	FindByEntity(ctx context.Context, entityID uuid.UUID) ([]Partner, error)

	// FindActive finds all active partners
	FindActive(ctx context.Context) ([]Partner, error)

	// ExistsByCode checks if a partner with the code exists, optionally
	// excluding one id
	ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)

	// CountByEntity returns partner counts grouped by entity id
	CountByEntity(ctx context.Context) (map[uuid.UUID]int64, error)
}
