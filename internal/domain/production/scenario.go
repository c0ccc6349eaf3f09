package production

import (
	"fmt"
	"time"

	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScenarioStatus represents the lifecycle stage of a production scenario
type ScenarioStatus string

const (
	ScenarioStatusDraft     ScenarioStatus = "draft"
	ScenarioStatusPlan      ScenarioStatus = "plan"
	ScenarioStatusForecast  ScenarioStatus = "forecast"
	ScenarioStatusCompleted ScenarioStatus = "completed"
	ScenarioStatusArchived  ScenarioStatus = "archived"
)

// ScenarioStatuses lists the valid statuses in lifecycle order
func ScenarioStatuses() []ScenarioStatus {
	return []ScenarioStatus{
		ScenarioStatusDraft,
		ScenarioStatusPlan,
		ScenarioStatusForecast,
		ScenarioStatusCompleted,
		ScenarioStatusArchived,
	}
}

const (
	// MinContractualYear is the earliest year a scenario may target
	MinContractualYear = 2020
	// MaxYearsAhead bounds the contractual year relative to the current year
	MaxYearsAhead = 30
	// MaxProductionVolumeMT caps a single scenario's volume
	MaxProductionVolumeMT = 1_000_000
)

// DefaultMoisturePercentage is applied when a scenario omits moisture
var DefaultMoisturePercentage = decimal.NewFromFloat(3.0)

// ProductionScenario is a yearly production plan with partner volume
// allocations. A scenario may be a baseline or a variant of a parent
// scenario; baselines cannot have a parent.
type ProductionScenario struct {
	shared.AuditedEntity
	Name               string          `gorm:"type:varchar(200);not null"`
	Description        string          `gorm:"type:text"`
	ContractualYear    int             `gorm:"not null;index"`
	StartDate          time.Time       `gorm:"type:date;not null"`
	EndDate            time.Time       `gorm:"type:date;not null"`
	Status             ScenarioStatus  `gorm:"type:varchar(20);not null;default:'draft';index"`
	ProductionVolume   decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	MoisturePercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:3.0"`
	PartnerAllocations AllocationSet   `gorm:"type:jsonb"`
	IsBaseline         bool            `gorm:"not null;default:false"`
	ParentScenarioID   *uuid.UUID      `gorm:"type:uuid;index"`

	ParentScenario *ProductionScenario `gorm:"foreignKey:ParentScenarioID"`
}

// TableName returns the table name for GORM
func (ProductionScenario) TableName() string {
	return "production_scenarios"
}

// ScenarioDescriptor describes the scenario table for shared query helpers
var ScenarioDescriptor = shared.EntityDescriptor{
	Table:        "production_scenarios",
	SearchFields: []string{"name", "description"},
	SortFields:   []string{"name", "contractual_year", "start_date", "end_date", "status", "production_volume", "is_baseline"},
	DateField:    "created_at",
}

// ScenarioParams carries the fields needed to build or update a scenario
type ScenarioParams struct {
	Name               string
	Description        string
	ContractualYear    int
	StartDate          time.Time
	EndDate            time.Time
	Status             ScenarioStatus
	ProductionVolume   decimal.Decimal
	MoisturePercentage *decimal.Decimal
	PartnerAllocations AllocationSet
	IsBaseline         bool
	ParentScenarioID   *uuid.UUID
}

// NewProductionScenario creates a validated scenario from params
func NewProductionScenario(params ScenarioParams) (*ProductionScenario, error) {
	s := &ProductionScenario{AuditedEntity: shared.NewAuditedEntity()}
	if err := s.apply(params); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the scenario's mutable fields after validation
func (s *ProductionScenario) Update(params ScenarioParams) error {
	if err := s.apply(params); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (s *ProductionScenario) apply(params ScenarioParams) error {
	if err := validateScenarioParams(params); err != nil {
		return err
	}
	moisture := DefaultMoisturePercentage
	if params.MoisturePercentage != nil {
		moisture = *params.MoisturePercentage
	}
	status := params.Status
	if status == "" {
		status = ScenarioStatusDraft
	}
	allocations := params.PartnerAllocations
	if allocations == nil {
		allocations = AllocationSet{}
	}

	s.Name = params.Name
	s.Description = params.Description
	s.ContractualYear = params.ContractualYear
	s.StartDate = params.StartDate
	s.EndDate = params.EndDate
	s.Status = status
	s.ProductionVolume = params.ProductionVolume
	s.MoisturePercentage = moisture
	s.PartnerAllocations = allocations
	s.IsBaseline = params.IsBaseline
	s.ParentScenarioID = params.ParentScenarioID
	return nil
}

// Archive moves the scenario to archived status
func (s *ProductionScenario) Archive() error {
	if s.Status == ScenarioStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Scenario is already archived")
	}
	s.Status = ScenarioStatusArchived
	s.UpdatedAt = time.Now()
	return nil
}

// IsArchived returns true for archived scenarios
func (s *ProductionScenario) IsArchived() bool {
	return s.Status == ScenarioStatusArchived
}

// DuplicateAsVariant builds a new draft scenario derived from this one.
// The copy is never a baseline and points back at the source scenario.
func (s *ProductionScenario) DuplicateAsVariant(name string) (*ProductionScenario, error) {
	if name == "" {
		name = s.Name + " (variant)"
	}
	parentID := s.ID
	return NewProductionScenario(ScenarioParams{
		Name:               name,
		Description:        s.Description,
		ContractualYear:    s.ContractualYear,
		StartDate:          s.StartDate,
		EndDate:            s.EndDate,
		Status:             ScenarioStatusDraft,
		ProductionVolume:   s.ProductionVolume,
		MoisturePercentage: &s.MoisturePercentage,
		PartnerAllocations: s.PartnerAllocations.Clone(),
		IsBaseline:         false,
		ParentScenarioID:   &parentID,
	})
}

// DryVolume returns the production volume net of moisture
func (s *ProductionScenario) DryVolume() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(s.MoisturePercentage.Div(decimal.NewFromInt(100)))
	return s.ProductionVolume.Mul(factor).Round(3)
}

func validateScenarioParams(params ScenarioParams) error {
	if params.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Scenario name cannot be empty")
	}
	if len(params.Name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Scenario name cannot exceed 200 characters")
	}
	maxYear := time.Now().Year() + MaxYearsAhead
	if params.ContractualYear < MinContractualYear || params.ContractualYear > maxYear {
		return shared.NewDomainError("INVALID_YEAR",
			fmt.Sprintf("Contractual year must be between %d and %d", MinContractualYear, maxYear))
	}
	if params.StartDate.IsZero() || params.EndDate.IsZero() {
		return shared.NewDomainError("INVALID_DATES", "Start and end dates are required")
	}
	if !params.StartDate.Before(params.EndDate) {
		return shared.NewDomainError("INVALID_DATES", "Start date must be before end date")
	}
	if params.Status != "" {
		if err := validateScenarioStatus(params.Status); err != nil {
			return err
		}
	}
	if !params.ProductionVolume.IsPositive() {
		return shared.NewDomainError("INVALID_VOLUME", "Production volume must be positive")
	}
	if params.ProductionVolume.GreaterThan(decimal.NewFromInt(MaxProductionVolumeMT)) {
		return shared.NewDomainError("INVALID_VOLUME",
			fmt.Sprintf("Production volume cannot exceed %d MT", MaxProductionVolumeMT))
	}
	if params.MoisturePercentage != nil {
		m := *params.MoisturePercentage
		if m.IsNegative() || m.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_MOISTURE", "Moisture percentage must be between 0 and 100")
		}
	}
	if len(params.PartnerAllocations) > 0 {
		if err := params.PartnerAllocations.Validate(); err != nil {
			return err
		}
	}
	if params.IsBaseline && params.ParentScenarioID != nil {
		return shared.NewDomainError("INVALID_BASELINE", "Baseline scenarios cannot have a parent scenario")
	}
	return nil
}

func validateScenarioStatus(status ScenarioStatus) error {
	for _, s := range ScenarioStatuses() {
		if status == s {
			return nil
		}
	}
	return shared.NewDomainError("INVALID_STATUS",
		fmt.Sprintf("Status must be one of draft, plan, forecast, completed, archived; got %q", status))
}
