package production

import (
	"context"

	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ScenarioRepository defines the interface for production scenario persistence
type ScenarioRepository interface {
	shared.Repository[ProductionScenario]

	// FindByYear finds scenarios for a contractual year
	FindByYear(ctx context.Context, year int) ([]ProductionScenario, error)

	// FindByStatus finds scenarios in a given status
	FindByStatus(ctx context.Context, status ScenarioStatus) ([]ProductionScenario, error)

	// FindVariants finds the scenarios derived from a parent scenario
	FindVariants(ctx context.Context, parentID uuid.UUID) ([]ProductionScenario, error)

	// FindBaseline finds the baseline scenario for a contractual year
	FindBaseline(ctx context.Context, year int) (*ProductionScenario, error)

	// CountByStatus returns scenario counts grouped by status
	CountByStatus(ctx context.Context) (map[ScenarioStatus]int64, error)
}
