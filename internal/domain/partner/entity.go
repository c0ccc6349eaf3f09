package partner

import (
	"time"

	"github.com/bauxite/backend/internal/domain/shared"
)

// EntityType classifies a partner entity's role in the offtake chain
type EntityType string

const (
	EntityTypeHalcoBuyer EntityType = "halco_buyer"
	EntityTypeOfftaker   EntityType = "offtaker"
)

// PartnerEntity is a corporate entity that groups partners
type PartnerEntity struct {
	shared.AuditedEntity
	Name        string     `gorm:"type:varchar(100);not null"`
	Code        string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_partner_entities_code"`
	Description string     `gorm:"type:text"`
	EntityType  EntityType `gorm:"type:varchar(20);not null;index"`

	Partners []Partner `gorm:"foreignKey:EntityID"`
}

// TableName returns the table name for GORM
func (PartnerEntity) TableName() string {
	return "partner_entities"
}

// EntityDescriptor describes the partner entity table for shared query helpers
var EntityDescriptor = shared.EntityDescriptor{
	Table:        "partner_entities",
	SearchFields: []string{"name", "code", "description"},
	SortFields:   []string{"name", "code", "entity_type"},
	DateField:    "created_at",
}

// NewPartnerEntity creates a new partner entity with validated fields
func NewPartnerEntity(name, code, description string, entityType EntityType) (*PartnerEntity, error) {
	if err := validateEntityName(name); err != nil {
		return nil, err
	}
	if err := ValidateCode(code); err != nil {
		return nil, err
	}
	if err := validateEntityType(entityType); err != nil {
		return nil, err
	}
	return &PartnerEntity{
		AuditedEntity: shared.NewAuditedEntity(),
		Name:          name,
		Code:          code,
		Description:   description,
		EntityType:    entityType,
	}, nil
}

// Update replaces the entity's mutable fields
func (e *PartnerEntity) Update(name, code, description string, entityType EntityType) error {
	if err := validateEntityName(name); err != nil {
		return err
	}
	if err := ValidateCode(code); err != nil {
		return err
	}
	if err := validateEntityType(entityType); err != nil {
		return err
	}
	e.Name = name
	e.Code = code
	e.Description = description
	e.EntityType = entityType
	e.UpdatedAt = time.Now()
	return nil
}

// IsHalcoBuyer returns true for halco_buyer entities
func (e *PartnerEntity) IsHalcoBuyer() bool {
	return e.EntityType == EntityTypeHalcoBuyer
}

// IsOfftaker returns true for offtaker entities
func (e *PartnerEntity) IsOfftaker() bool {
	return e.EntityType == EntityTypeOfftaker
}

func validateEntityName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Entity name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Entity name cannot exceed 100 characters")
	}
	return nil
}

func validateEntityType(t EntityType) error {
	switch t {
	case EntityTypeHalcoBuyer, EntityTypeOfftaker:
		return nil
	default:
		return shared.NewDomainError("INVALID_ENTITY_TYPE", "Entity type must be halco_buyer or offtaker")
	}
}

// ValidateCode checks length and allowed characters for entity and
// partner codes
func ValidateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 20 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 20 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
