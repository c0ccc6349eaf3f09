package catalog

import (
	"fmt"
	"regexp"
	"time"

	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var subtypeNamePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// ProductSubtype is a saleable product variant tied to a category and a
// source mine. The (name, category, mine) combination is unique.
type ProductSubtype struct {
	shared.AuditedEntity
	Name       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_product_subtypes_combo,priority:1"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_subtypes_combo,priority:2"`
	MineID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_subtypes_combo,priority:3"`

	Category *ProductCategory `gorm:"foreignKey:CategoryID"`
	Mine     *Mine            `gorm:"foreignKey:MineID"`
}

// TableName returns the table name for GORM
func (ProductSubtype) TableName() string {
	return "product_subtypes"
}

// SubtypeDescriptor describes the subtype table for shared query helpers
var SubtypeDescriptor = shared.EntityDescriptor{
	Table:        "product_subtypes",
	SearchFields: []string{"name"},
	SortFields:   []string{"name", "category_id", "mine_id"},
	DateField:    "created_at",
}

// NewProductSubtype creates a new subtype with validated fields
func NewProductSubtype(name string, categoryID, mineID uuid.UUID) (*ProductSubtype, error) {
	if err := ValidateSubtypeName(name); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if mineID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MINE", "Mine is required")
	}
	return &ProductSubtype{
		AuditedEntity: shared.NewAuditedEntity(),
		Name:          name,
		CategoryID:    categoryID,
		MineID:        mineID,
	}, nil
}

// Update replaces the subtype's name and parent references
func (s *ProductSubtype) Update(name string, categoryID, mineID uuid.UUID) error {
	if err := ValidateSubtypeName(name); err != nil {
		return err
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if mineID == uuid.Nil {
		return shared.NewDomainError("INVALID_MINE", "Mine is required")
	}
	s.Name = name
	s.CategoryID = categoryID
	s.MineID = mineID
	s.UpdatedAt = time.Now()
	return nil
}

// DisplayName renders the subtype with its category and mine context
func (s *ProductSubtype) DisplayName() string {
	category := s.CategoryID.String()
	if s.Category != nil {
		category = s.Category.Name
	}
	mine := s.MineID.String()
	if s.Mine != nil {
		mine = s.Mine.Name
	}
	return fmt.Sprintf("%s (%s / %s)", s.Name, category, mine)
}

// ValidateSubtypeName checks length and allowed characters
func ValidateSubtypeName(name string) error {
	if len(name) < 3 {
		return shared.NewDomainError("INVALID_NAME", "Subtype name must be at least 3 characters")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Subtype name cannot exceed 100 characters")
	}
	if !subtypeNamePattern.MatchString(name) {
		return shared.NewDomainError("INVALID_NAME", "Subtype name can only contain letters, numbers, spaces, hyphens, and underscores")
	}
	return nil
}
