package partner

import (
	"time"

	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Partner is a contracting counterparty belonging to a partner entity
type Partner struct {
	shared.AuditedEntity
	Name            string           `gorm:"type:varchar(100);not null"`
	Code            string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_partners_code"`
	Description     string           `gorm:"type:text"`
	EntityID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	MinimumVolumeMT *decimal.Decimal `gorm:"type:decimal(14,3)"`
	IsActive        bool             `gorm:"not null;default:true"`

	Entity *PartnerEntity `gorm:"foreignKey:EntityID"`
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// PartnerDescriptor describes the partner table for shared query helpers
var PartnerDescriptor = shared.EntityDescriptor{
	Table:        "partners",
	SearchFields: []string{"name", "code", "description"},
	SortFields:   []string{"name", "code", "entity_id", "is_active", "minimum_volume_mt"},
	DateField:    "created_at",
}

// NewPartner creates a new active partner with validated fields
func NewPartner(name, code, description string, entityID uuid.UUID, minimumVolumeMT *decimal.Decimal) (*Partner, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	if err := ValidateCode(code); err != nil {
		return nil, err
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Partner entity is required")
	}
	if err := validateMinimumVolume(minimumVolumeMT); err != nil {
		return nil, err
	}
	return &Partner{
		AuditedEntity:   shared.NewAuditedEntity(),
		Name:            name,
		Code:            code,
		Description:     description,
		EntityID:        entityID,
		MinimumVolumeMT: minimumVolumeMT,
		IsActive:        true,
	}, nil
}

// Update replaces the partner's mutable fields
func (p *Partner) Update(name, code, description string, entityID uuid.UUID, minimumVolumeMT *decimal.Decimal) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if err := ValidateCode(code); err != nil {
		return err
	}
	if entityID == uuid.Nil {
		return shared.NewDomainError("INVALID_ENTITY", "Partner entity is required")
	}
	if err := validateMinimumVolume(minimumVolumeMT); err != nil {
		return err
	}
	p.Name = name
	p.Code = code
	p.Description = description
	p.EntityID = entityID
	p.MinimumVolumeMT = minimumVolumeMT
	p.UpdatedAt = time.Now()
	return nil
}

// Activate marks the partner as active
func (p *Partner) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// Deactivate marks the partner as inactive
func (p *Partner) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// ToggleActive flips the active flag and returns the new state
func (p *Partner) ToggleActive() bool {
	p.IsActive = !p.IsActive
	p.UpdatedAt = time.Now()
	return p.IsActive
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot exceed 100 characters")
	}
	return nil
}

func validateMinimumVolume(v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return shared.NewDomainError("INVALID_MINIMUM_VOLUME", "Minimum volume cannot be negative")
	}
	return nil
}
