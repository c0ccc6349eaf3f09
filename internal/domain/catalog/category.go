package catalog

import (
	"time"

	"github.com/bauxite/backend/internal/domain/shared"
)

// ProductCategory is a top-level grouping for product subtypes
type ProductCategory struct {
	shared.AuditedEntity
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_categories_name"`
}

// TableName returns the table name for GORM
func (ProductCategory) TableName() string {
	return "product_categories"
}

// CategoryDescriptor describes the category table for shared query helpers
var CategoryDescriptor = shared.EntityDescriptor{
	Table:        "product_categories",
	SearchFields: []string{"name"},
	SortFields:   []string{"name"},
	DateField:    "created_at",
}

// NewProductCategory creates a new category with a validated name
func NewProductCategory(name string) (*ProductCategory, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &ProductCategory{
		AuditedEntity: shared.NewAuditedEntity(),
		Name:          name,
	}, nil
}

// Rename updates the category name
func (c *ProductCategory) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 50 characters")
	}
	return nil
}
