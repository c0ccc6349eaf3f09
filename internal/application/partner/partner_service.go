package partner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bauxite/backend/internal/application/shared"
	"github.com/bauxite/backend/internal/domain/partner"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/bauxite/backend/internal/infrastructure/cache"
	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreatePartnerRequest represents a request to create a partner
type CreatePartnerRequest struct {
	Name            string    `json:"name" binding:"required,max=100"`
	Code            string    `json:"code" binding:"required,max=20"`
	Description     string    `json:"description"`
	EntityID        uuid.UUID `json:"entity_id" binding:"required"`
	MinimumVolumeMT *float64  `json:"minimum_volume_mt" binding:"omitempty,gte=0"`
}

// UpdatePartnerRequest represents a request to update a partner
type UpdatePartnerRequest struct {
	Name            string    `json:"name" binding:"required,max=100"`
	Code            string    `json:"code" binding:"required,max=20"`
	Description     string    `json:"description"`
	EntityID        uuid.UUID `json:"entity_id" binding:"required"`
	MinimumVolumeMT *float64  `json:"minimum_volume_mt" binding:"omitempty,gte=0"`
}

// PartnerResponse represents a partner in API responses
type PartnerResponse struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Code            string           `json:"code"`
	Description     string           `json:"description,omitempty"`
	EntityID        uuid.UUID        `json:"entity_id"`
	EntityName      string           `json:"entity_name,omitempty"`
	MinimumVolumeMT *decimal.Decimal `json:"minimum_volume_mt,omitempty"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PartnerOption is the slim shape used by select dropdowns
type PartnerOption struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Code     string    `json:"code"`
	IsActive bool      `json:"is_active"`
}

// ToPartnerResponse converts a domain Partner to PartnerResponse
func ToPartnerResponse(p *partner.Partner) PartnerResponse {
	response := PartnerResponse{
		ID:              p.ID,
		Name:            p.Name,
		Code:            p.Code,
		Description:     p.Description,
		EntityID:        p.EntityID,
		MinimumVolumeMT: p.MinimumVolumeMT,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Entity != nil {
		response.EntityName = p.Entity.Name
	}
	return response
}

var partnerRules = shared.Rules{
	"name": {Required: true, MaxLength: 100},
	"code": {Required: true, MaxLength: 20, Pattern: codePattern, PatternName: "letters, numbers, underscores, and hyphens"},
}

// PartnerService handles partner business operations. Partners belong
// to a partner entity, so writes validate the parent reference.
type PartnerService struct {
	partners partner.PartnerRepository
	entities partner.EntityRepository
	cache    *cache.QueryCache
	ttl      config.CacheConfig
	logger   *zap.Logger
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(
	partners partner.PartnerRepository,
	entities partner.EntityRepository,
	queryCache *cache.QueryCache,
	ttl config.CacheConfig,
	logger *zap.Logger,
) *PartnerService {
	return &PartnerService{
		partners: partners,
		entities: entities,
		cache:    queryCache,
		ttl:      ttl,
		logger:   logger,
	}
}

// Create creates a new partner
func (s *PartnerService) Create(ctx context.Context, req CreatePartnerRequest) shared.Result {
	return shared.SafeOperation(s.logger, "create partner", func() (shared.Result, error) {
		if errs := s.validateRequest(ctx, req.Name, req.Code, req.EntityID, req.MinimumVolumeMT); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		exists, err := s.partners.ExistsByCode(ctx, req.Code, uuid.Nil)
		if err != nil {
			return shared.Result{}, err
		}
		if exists {
			return shared.Result{}, domain.NewDuplicateError("Partner", "code", req.Code)
		}

		p, err := partner.NewPartner(req.Name, req.Code, req.Description, req.EntityID, toVolume(req.MinimumVolumeMT))
		if err != nil {
			return shared.Result{}, err
		}
		if err := s.partners.Create(ctx, p); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(p.ID)
		created, err := s.partners.FindByID(ctx, p.ID)
		if err != nil {
			return shared.Result{}, err
		}
		return shared.OK("Partner created", ToPartnerResponse(created)), nil
	})
}

// Get retrieves a single partner with its entity preloaded
func (s *PartnerService) Get(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "get partner", func() (shared.Result, error) {
		key := cache.Key("partner", "get", []any{id}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partner retrieved", cached), nil
		}

		p, err := s.partners.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		response := ToPartnerResponse(p)
		s.cache.Put(key, response, s.ttl.EntityTTL)
		return shared.OK("Partner retrieved", response), nil
	})
}

// List retrieves a paginated, optionally searched partner listing
func (s *PartnerService) List(ctx context.Context, filter domain.Filter) shared.Result {
	return shared.SafeOperation(s.logger, "list partners", func() (shared.Result, error) {
		kwargs := map[string]any{"search": filter.Search}
		for field, value := range filter.Filters {
			kwargs[field] = value
		}
		key := cache.Key("partner", "list",
			[]any{filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir}, kwargs)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partners retrieved", cached), nil
		}

		partners, err := s.partners.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}
		total, err := s.partners.Count(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]PartnerResponse, len(partners))
		for i := range partners {
			responses[i] = ToPartnerResponse(&partners[i])
		}

		page := domain.NewPaginated(responses, total, filter.Page, filter.PageSize)
		s.cache.Put(key, page, s.ttl.EntityTTL)
		return shared.OK("Partners retrieved", page), nil
	})
}

// ByEntity retrieves the partners belonging to one entity
func (s *PartnerService) ByEntity(ctx context.Context, entityID uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "list partners by entity", func() (shared.Result, error) {
		key := cache.Key("partner", "by_entity", []any{entityID}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partners retrieved", cached), nil
		}

		if _, err := s.entities.FindByID(ctx, entityID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return shared.Result{}, domain.NewNotFoundError("Partner entity", entityID.String())
			}
			return shared.Result{}, err
		}

		partners, err := s.partners.FindByEntity(ctx, entityID)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]PartnerResponse, len(partners))
		for i := range partners {
			responses[i] = ToPartnerResponse(&partners[i])
		}
		s.cache.Put(key, responses, s.ttl.RelationTTL)
		return shared.OK("Partners retrieved", responses), nil
	})
}

// Active retrieves all active partners
func (s *PartnerService) Active(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "list active partners", func() (shared.Result, error) {
		key := cache.Key("partner", "active", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Active partners retrieved", cached), nil
		}

		partners, err := s.partners.FindActive(ctx)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]PartnerResponse, len(partners))
		for i := range partners {
			responses[i] = ToPartnerResponse(&partners[i])
		}
		s.cache.Put(key, responses, s.ttl.RelationTTL)
		return shared.OK("Active partners retrieved", responses), nil
	})
}

// Options retrieves all partners as dropdown options, ordered by name
func (s *PartnerService) Options(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "list partner options", func() (shared.Result, error) {
		key := cache.Key("partner", "options", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partner options retrieved", cached), nil
		}

		filter := domain.Filter{Page: 1, PageSize: optionPageSize, OrderBy: "name", OrderDir: "asc"}
		partners, err := s.partners.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		options := make([]PartnerOption, len(partners))
		for i := range partners {
			options[i] = PartnerOption{
				ID:       partners[i].ID,
				Name:     partners[i].Name,
				Code:     partners[i].Code,
				IsActive: partners[i].IsActive,
			}
		}

		s.cache.Put(key, options, s.ttl.EntityTTL)
		return shared.OK("Partner options retrieved", options), nil
	})
}

// Update updates a partner
func (s *PartnerService) Update(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) shared.Result {
	return shared.SafeOperation(s.logger, "update partner", func() (shared.Result, error) {
		p, err := s.partners.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		if errs := s.validateRequest(ctx, req.Name, req.Code, req.EntityID, req.MinimumVolumeMT); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		exists, err := s.partners.ExistsByCode(ctx, req.Code, id)
		if err != nil {
			return shared.Result{}, err
		}
		if exists {
			return shared.Result{}, domain.NewDuplicateError("Partner", "code", req.Code)
		}

		if err := p.Update(req.Name, req.Code, req.Description, req.EntityID, toVolume(req.MinimumVolumeMT)); err != nil {
			return shared.Result{}, err
		}
		if err := s.partners.Update(ctx, p); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(id)
		updated, err := s.partners.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, err
		}
		return shared.OK("Partner updated", ToPartnerResponse(updated)), nil
	})
}

// Activate marks a partner as active
func (s *PartnerService) Activate(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "activate partner", func() (shared.Result, error) {
		return s.setActive(ctx, id, func(p *partner.Partner) { p.Activate() }, "Partner activated")
	})
}

// Deactivate marks a partner as inactive
func (s *PartnerService) Deactivate(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "deactivate partner", func() (shared.Result, error) {
		return s.setActive(ctx, id, func(p *partner.Partner) { p.Deactivate() }, "Partner deactivated")
	})
}

// ToggleActive flips a partner's active flag
func (s *PartnerService) ToggleActive(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "toggle partner active", func() (shared.Result, error) {
		return s.setActive(ctx, id, func(p *partner.Partner) { p.ToggleActive() }, "")
	})
}

// Delete removes a partner
func (s *PartnerService) Delete(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "delete partner", func() (shared.Result, error) {
		if err := s.partners.Delete(ctx, id); err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		s.invalidate(id)
		return shared.OK("Partner deleted", nil), nil
	})
}

func (s *PartnerService) setActive(ctx context.Context, id uuid.UUID, apply func(*partner.Partner), message string) (shared.Result, error) {
	p, err := s.partners.FindByID(ctx, id)
	if err != nil {
		return shared.Result{}, s.asNotFound(err, id)
	}

	apply(p)
	if err := s.partners.Update(ctx, p); err != nil {
		return shared.Result{}, err
	}

	s.invalidate(id)
	if message == "" {
		if p.IsActive {
			message = "Partner activated"
		} else {
			message = "Partner deactivated"
		}
	}
	return shared.OK(message, ToPartnerResponse(p)), nil
}

// validateRequest collects field rule failures plus a missing-parent
// error naming the absent entity id
func (s *PartnerService) validateRequest(ctx context.Context, name, code string, entityID uuid.UUID, minimumVolume *float64) []string {
	errs := partnerRules.Validate(map[string]any{"name": name, "code": code})

	if entityID == uuid.Nil {
		errs = append(errs, "entity_id is required")
	} else if _, err := s.entities.FindByID(ctx, entityID); errors.Is(err, domain.ErrNotFound) {
		errs = append(errs, fmt.Sprintf("Partner entity %s does not exist", entityID))
	}

	if minimumVolume != nil && *minimumVolume < 0 {
		errs = append(errs, "minimum_volume_mt cannot be negative")
	}

	return errs
}

func (s *PartnerService) invalidate(id uuid.UUID) {
	s.cache.InvalidateKeys(
		cache.Key("partner", "get", []any{id}, nil),
		cache.Key("partner", "options", nil, nil),
		cache.Key("partner", "active", nil, nil),
	)
	s.cache.Invalidate("partner:list")
	s.cache.Invalidate("partner:by_entity")
	s.cache.Invalidate("entity:")
	s.cache.Invalidate("stats:")
}

func (s *PartnerService) asNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError("Partner", id.String())
	}
	return err
}

func toVolume(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
