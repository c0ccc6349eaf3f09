package production

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bauxite/backend/internal/application/shared"
	"github.com/bauxite/backend/internal/domain/partner"
	"github.com/bauxite/backend/internal/domain/production"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/bauxite/backend/internal/infrastructure/cache"
	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AllocationRequest is one partner's share in a scenario request
type AllocationRequest struct {
	Percentage float64 `json:"percentage" binding:"required,gt=0"`
	VolumeMT   float64 `json:"volume_mt" binding:"gte=0"`
}

// ScenarioRequest carries the fields to create or update a scenario
type ScenarioRequest struct {
	Name               string                          `json:"name" binding:"required,max=200"`
	Description        string                          `json:"description"`
	ContractualYear    int                             `json:"contractual_year" binding:"required"`
	StartDate          time.Time                       `json:"start_date" binding:"required"`
	EndDate            time.Time                       `json:"end_date" binding:"required"`
	Status             string                          `json:"status"`
	ProductionVolume   float64                         `json:"production_volume" binding:"required,gt=0"`
	MoisturePercentage *float64                        `json:"moisture_percentage" binding:"omitempty,gte=0,lte=100"`
	PartnerAllocations map[uuid.UUID]AllocationRequest `json:"partner_allocations"`
	IsBaseline         bool                            `json:"is_baseline"`
	ParentScenarioID   *uuid.UUID                      `json:"parent_scenario_id"`
}

// DuplicateScenarioRequest names the variant copied from a scenario
type DuplicateScenarioRequest struct {
	Name string `json:"name" binding:"max=200"`
}

// ScenarioResponse represents a production scenario in API responses
type ScenarioResponse struct {
	ID                 uuid.UUID                `json:"id"`
	Name               string                   `json:"name"`
	Description        string                   `json:"description,omitempty"`
	ContractualYear    int                      `json:"contractual_year"`
	StartDate          time.Time                `json:"start_date"`
	EndDate            time.Time                `json:"end_date"`
	Status             string                   `json:"status"`
	ProductionVolume   decimal.Decimal          `json:"production_volume"`
	MoisturePercentage decimal.Decimal          `json:"moisture_percentage"`
	DryVolume          decimal.Decimal          `json:"dry_volume"`
	PartnerAllocations production.AllocationSet `json:"partner_allocations"`
	IsBaseline         bool                     `json:"is_baseline"`
	ParentScenarioID   *uuid.UUID               `json:"parent_scenario_id,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// ToScenarioResponse converts a domain ProductionScenario to ScenarioResponse
func ToScenarioResponse(s *production.ProductionScenario) ScenarioResponse {
	return ScenarioResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		ContractualYear:    s.ContractualYear,
		StartDate:          s.StartDate,
		EndDate:            s.EndDate,
		Status:             string(s.Status),
		ProductionVolume:   s.ProductionVolume,
		MoisturePercentage: s.MoisturePercentage,
		DryVolume:          s.DryVolume(),
		PartnerAllocations: s.PartnerAllocations,
		IsBaseline:         s.IsBaseline,
		ParentScenarioID:   s.ParentScenarioID,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ScenarioService handles production scenario business operations.
// Scenario writes validate partner references in allocations, baseline
// uniqueness per contractual year, and parent scenario existence.
type ScenarioService struct {
	scenarios production.ScenarioRepository
	partners  partner.PartnerRepository
	cache     *cache.QueryCache
	ttl       config.CacheConfig
	logger    *zap.Logger
}

// NewScenarioService creates a new ScenarioService
func NewScenarioService(
	scenarios production.ScenarioRepository,
	partners partner.PartnerRepository,
	queryCache *cache.QueryCache,
	ttl config.CacheConfig,
	logger *zap.Logger,
) *ScenarioService {
	return &ScenarioService{
		scenarios: scenarios,
		partners:  partners,
		cache:     queryCache,
		ttl:       ttl,
		logger:    logger,
	}
}

// Create creates a new production scenario
func (s *ScenarioService) Create(ctx context.Context, req ScenarioRequest) shared.Result {
	return shared.SafeOperation(s.logger, "create scenario", func() (shared.Result, error) {
		if errs := s.validateReferences(ctx, req, uuid.Nil); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		scenario, err := production.NewProductionScenario(toParams(req))
		if err != nil {
			return shared.Result{}, err
		}
		if err := s.scenarios.Create(ctx, scenario); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(scenario.ID)
		return shared.OK("Scenario created", ToScenarioResponse(scenario)), nil
	})
}

// Get retrieves a single scenario
func (s *ScenarioService) Get(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "get scenario", func() (shared.Result, error) {
		key := cache.Key("scenario", "get", []any{id}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Scenario retrieved", cached), nil
		}

		scenario, err := s.scenarios.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		response := ToScenarioResponse(scenario)
		s.cache.Put(key, response, s.ttl.EntityTTL)
		return shared.OK("Scenario retrieved", response), nil
	})
}

// List retrieves a paginated, optionally searched scenario listing
func (s *ScenarioService) List(ctx context.Context, filter domain.Filter) shared.Result {
	return shared.SafeOperation(s.logger, "list scenarios", func() (shared.Result, error) {
		kwargs := map[string]any{"search": filter.Search}
		for field, value := range filter.Filters {
			kwargs[field] = value
		}
		key := cache.Key("scenario", "list",
			[]any{filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir}, kwargs)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Scenarios retrieved", cached), nil
		}

		scenarios, err := s.scenarios.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}
		total, err := s.scenarios.Count(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]ScenarioResponse, len(scenarios))
		for i := range scenarios {
			responses[i] = ToScenarioResponse(&scenarios[i])
		}

		page := domain.NewPaginated(responses, total, filter.Page, filter.PageSize)
		s.cache.Put(key, page, s.ttl.EntityTTL)
		return shared.OK("Scenarios retrieved", page), nil
	})
}

// ByYear retrieves the scenarios for a contractual year
func (s *ScenarioService) ByYear(ctx context.Context, year int) shared.Result {
	return shared.SafeOperation(s.logger, "list scenarios by year", func() (shared.Result, error) {
		key := cache.Key("scenario", "by_year", []any{year}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Scenarios retrieved", cached), nil
		}

		scenarios, err := s.scenarios.FindByYear(ctx, year)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]ScenarioResponse, len(scenarios))
		for i := range scenarios {
			responses[i] = ToScenarioResponse(&scenarios[i])
		}
		s.cache.Put(key, responses, s.ttl.RelationTTL)
		return shared.OK("Scenarios retrieved", responses), nil
	})
}

// ByStatus retrieves the scenarios in one lifecycle status
func (s *ScenarioService) ByStatus(ctx context.Context, status string) shared.Result {
	return shared.SafeOperation(s.logger, "list scenarios by status", func() (shared.Result, error) {
		if !validStatus(status) {
			return shared.Invalid([]string{fmt.Sprintf("status must be one of %v", production.ScenarioStatuses())}), nil
		}

		key := cache.Key("scenario", "by_status", []any{status}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Scenarios retrieved", cached), nil
		}

		scenarios, err := s.scenarios.FindByStatus(ctx, production.ScenarioStatus(status))
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]ScenarioResponse, len(scenarios))
		for i := range scenarios {
			responses[i] = ToScenarioResponse(&scenarios[i])
		}
		s.cache.Put(key, responses, s.ttl.RelationTTL)
		return shared.OK("Scenarios retrieved", responses), nil
	})
}

// Baseline retrieves the baseline scenario for a contractual year
func (s *ScenarioService) Baseline(ctx context.Context, year int) shared.Result {
	return shared.SafeOperation(s.logger, "get baseline scenario", func() (shared.Result, error) {
		key := cache.Key("scenario", "baseline", []any{year}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Baseline scenario retrieved", cached), nil
		}

		scenario, err := s.scenarios.FindBaseline(ctx, year)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return shared.Result{}, domain.NewNotFoundError("Baseline scenario for year", fmt.Sprintf("%d", year))
			}
			return shared.Result{}, err
		}

		response := ToScenarioResponse(scenario)
		s.cache.Put(key, response, s.ttl.EntityTTL)
		return shared.OK("Baseline scenario retrieved", response), nil
	})
}

// Variants retrieves the scenarios derived from a parent scenario
func (s *ScenarioService) Variants(ctx context.Context, parentID uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "list scenario variants", func() (shared.Result, error) {
		key := cache.Key("scenario", "variants", []any{parentID}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Scenario variants retrieved", cached), nil
		}

		if _, err := s.scenarios.FindByID(ctx, parentID); err != nil {
			return shared.Result{}, s.asNotFound(err, parentID)
		}

		variants, err := s.scenarios.FindVariants(ctx, parentID)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]ScenarioResponse, len(variants))
		for i := range variants {
			responses[i] = ToScenarioResponse(&variants[i])
		}
		s.cache.Put(key, responses, s.ttl.RelationTTL)
		return shared.OK("Scenario variants retrieved", responses), nil
	})
}

// Update updates a scenario. Archived scenarios are immutable.
func (s *ScenarioService) Update(ctx context.Context, id uuid.UUID, req ScenarioRequest) shared.Result {
	return shared.SafeOperation(s.logger, "update scenario", func() (shared.Result, error) {
		scenario, err := s.scenarios.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		if scenario.IsArchived() {
			return shared.Result{}, domain.NewDomainError("SCENARIO_ARCHIVED", "Archived scenarios cannot be modified")
		}

		if errs := s.validateReferences(ctx, req, id); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		if err := scenario.Update(toParams(req)); err != nil {
			return shared.Result{}, err
		}
		if err := s.scenarios.Update(ctx, scenario); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(id)
		return shared.OK("Scenario updated", ToScenarioResponse(scenario)), nil
	})
}

// Archive moves a scenario to archived status
func (s *ScenarioService) Archive(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "archive scenario", func() (shared.Result, error) {
		scenario, err := s.scenarios.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		if err := scenario.Archive(); err != nil {
			return shared.Result{}, err
		}
		if err := s.scenarios.Update(ctx, scenario); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(id)
		return shared.OK("Scenario archived", ToScenarioResponse(scenario)), nil
	})
}

// Duplicate copies a scenario into a new draft variant pointing back at
// its source
func (s *ScenarioService) Duplicate(ctx context.Context, id uuid.UUID, req DuplicateScenarioRequest) shared.Result {
	return shared.SafeOperation(s.logger, "duplicate scenario", func() (shared.Result, error) {
		source, err := s.scenarios.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		variant, err := source.DuplicateAsVariant(req.Name)
		if err != nil {
			return shared.Result{}, err
		}
		if err := s.scenarios.Create(ctx, variant); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(variant.ID)
		return shared.OK("Scenario duplicated", ToScenarioResponse(variant)), nil
	})
}

// Delete removes a scenario. Variants of the deleted scenario survive
// with their parent reference cleared.
func (s *ScenarioService) Delete(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "delete scenario", func() (shared.Result, error) {
		if err := s.scenarios.Delete(ctx, id); err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		s.invalidate(id)
		return shared.OK("Scenario deleted", nil), nil
	})
}

// validateReferences collects errors for missing allocation partners,
// missing parent scenarios, and baseline conflicts. Field-level
// validation stays in the domain layer.
func (s *ScenarioService) validateReferences(ctx context.Context, req ScenarioRequest, excludeID uuid.UUID) []string {
	var errs []string

	for partnerID := range req.PartnerAllocations {
		if _, err := s.partners.FindByID(ctx, partnerID); errors.Is(err, domain.ErrNotFound) {
			errs = append(errs, fmt.Sprintf("Partner %s does not exist", partnerID))
		}
	}

	if req.ParentScenarioID != nil {
		if _, err := s.scenarios.FindByID(ctx, *req.ParentScenarioID); errors.Is(err, domain.ErrNotFound) {
			errs = append(errs, fmt.Sprintf("Parent scenario %s does not exist", *req.ParentScenarioID))
		}
	}

	if req.IsBaseline {
		baseline, err := s.scenarios.FindBaseline(ctx, req.ContractualYear)
		if err == nil && baseline.ID != excludeID {
			errs = append(errs, fmt.Sprintf("A baseline scenario already exists for year %d", req.ContractualYear))
		}
	}

	return errs
}

func (s *ScenarioService) invalidate(id uuid.UUID) {
	s.cache.InvalidateKeys(cache.Key("scenario", "get", []any{id}, nil))
	s.cache.Invalidate("scenario:list")
	s.cache.Invalidate("scenario:by_year")
	s.cache.Invalidate("scenario:by_status")
	s.cache.Invalidate("scenario:baseline")
	s.cache.Invalidate("scenario:variants")
	s.cache.Invalidate("stats:")
}

func (s *ScenarioService) asNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError("Scenario", id.String())
	}
	return err
}

func toParams(req ScenarioRequest) production.ScenarioParams {
	var moisture *decimal.Decimal
	if req.MoisturePercentage != nil {
		m := decimal.NewFromFloat(*req.MoisturePercentage)
		moisture = &m
	}

	var allocations production.AllocationSet
	if req.PartnerAllocations != nil {
		allocations = make(production.AllocationSet, len(req.PartnerAllocations))
		for partnerID, alloc := range req.PartnerAllocations {
			allocations[partnerID] = production.Allocation{
				Percentage: decimal.NewFromFloat(alloc.Percentage),
				VolumeMT:   decimal.NewFromFloat(alloc.VolumeMT),
			}
		}
	}

	return production.ScenarioParams{
		Name:               req.Name,
		Description:        req.Description,
		ContractualYear:    req.ContractualYear,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Status:             production.ScenarioStatus(req.Status),
		ProductionVolume:   decimal.NewFromFloat(req.ProductionVolume),
		MoisturePercentage: moisture,
		PartnerAllocations: allocations,
		IsBaseline:         req.IsBaseline,
		ParentScenarioID:   req.ParentScenarioID,
	}
}

func validStatus(status string) bool {
	for _, s := range production.ScenarioStatuses() {
		if status == string(s) {
			return true
		}
	}
	return false
}
