package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch refreshes the update timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AuditedEntity extends BaseEntity with user audit fields
type AuditedEntity struct {
	BaseEntity
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
}

// SetCreatedBy records the user who created this record
func (e *AuditedEntity) SetCreatedBy(userID uuid.UUID) {
	e.CreatedBy = &userID
	e.UpdatedBy = &userID
}

// SetUpdatedBy records the user who last modified this record
func (e *AuditedEntity) SetUpdatedBy(userID uuid.UUID) {
	e.UpdatedBy = &userID
}

// NewAuditedEntity creates a new audited entity with generated ID
func NewAuditedEntity() AuditedEntity {
	return AuditedEntity{BaseEntity: NewBaseEntity()}
}
