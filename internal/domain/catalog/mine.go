package catalog

import (
	"time"

	"github.com/bauxite/backend/internal/domain/shared"
)

// Mine is a bauxite extraction site products are sourced from
type Mine struct {
	shared.AuditedEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_mines_name"`
}

// TableName returns the table name for GORM
func (Mine) TableName() string {
	return "mines"
}

// MineDescriptor describes the mine table for shared query helpers
var MineDescriptor = shared.EntityDescriptor{
	Table:        "mines",
	SearchFields: []string{"name"},
	SortFields:   []string{"name"},
	DateField:    "created_at",
}

// NewMine creates a new mine with a validated name
func NewMine(name string) (*Mine, error) {
	if err := validateMineName(name); err != nil {
		return nil, err
	}
	return &Mine{
		AuditedEntity: shared.NewAuditedEntity(),
		Name:          name,
	}, nil
}

// Rename updates the mine name
func (m *Mine) Rename(name string) error {
	if err := validateMineName(name); err != nil {
		return err
	}
	m.Name = name
	m.UpdatedAt = time.Now()
	return nil
}

func validateMineName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Mine name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Mine name cannot exceed 100 characters")
	}
	return nil
}
