package catalog

import (
	"context"
	"time"

	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryRepository defines the interface for product category persistence
type CategoryRepository interface {
	shared.Repository[ProductCategory]

	// FindByName finds a category by its exact name
	FindByName(ctx context.Context, name string) (*ProductCategory, error)

	// ExistsByName checks if a category with the name exists, optionally
	// excluding one id (for update uniqueness checks)
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// CountSubtypes counts the subtypes referencing a category
	CountSubtypes(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// CountCreatedSince counts categories created at or after the instant
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// MineRepository defines the interface for mine persistence
type MineRepository interface {
	shared.Repository[Mine]

	// FindByName finds a mine by its exact name
	FindByName(ctx context.Context, name string) (*Mine, error)

	// ExistsByName checks if a mine with the name exists, optionally
	// excluding one id
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// CountSubtypes counts the subtypes referencing a mine
	CountSubtypes(ctx context.Context, mineID uuid.UUID) (int64, error)

	// CountCreatedSince counts mines created at or after the instant
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// SubtypeRepository defines the interface for product subtype persistence
type SubtypeRepository interface {
	shared.Repository[ProductSubtype]

	// FindByCategory finds subtypes belonging to a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]ProductSubtype, error)

	// FindByMine finds subtypes sourced from a mine
	FindByMine(ctx context.Context, mineID uuid.UUID) ([]ProductSubtype, error)

	// CombinationExists checks if a (name, category, mine) combination is
	// already taken, optionally excluding one id
	CombinationExists(ctx context.Context, name string, categoryID, mineID, excludeID uuid.UUID) (bool, error)

	// CountByCategory returns subtype counts grouped by category id
	CountByCategory(ctx context.Context) (map[uuid.UUID]int64, error)

	// CountByMine returns subtype counts grouped by mine id
	CountByMine(ctx context.Context) (map[uuid.UUID]int64, error)

	// CountCreatedSince counts subtypes created at or after the instant
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
