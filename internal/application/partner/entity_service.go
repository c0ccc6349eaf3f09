package partner

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/bauxite/backend/internal/application/shared"
	"github.com/bauxite/backend/internal/domain/partner"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/bauxite/backend/internal/infrastructure/cache"
	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateEntityRequest represents a request to create a partner entity
type CreateEntityRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description"`
	EntityType  string `json:"entity_type" binding:"required,oneof=halco_buyer offtaker"`
}

// UpdateEntityRequest represents a request to update a partner entity
type UpdateEntityRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description"`
	EntityType  string `json:"entity_type" binding:"required,oneof=halco_buyer offtaker"`
}

// EntityResponse represents a partner entity in API responses
type EntityResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Description  string    `json:"description,omitempty"`
	EntityType   string    `json:"entity_type"`
	PartnerCount int64     `json:"partner_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EntityOption is the slim shape used by select dropdowns
type EntityOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

// ToEntityResponse converts a domain PartnerEntity to EntityResponse
func ToEntityResponse(e *partner.PartnerEntity, partnerCount int64) EntityResponse {
	return EntityResponse{
		ID:           e.ID,
		Name:         e.Name,
		Code:         e.Code,
		Description:  e.Description,
		EntityType:   string(e.EntityType),
		PartnerCount: partnerCount,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// optionPageSize bounds dropdown listings
const optionPageSize = 1000

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var entityRules = shared.Rules{
	"name":        {Required: true, MaxLength: 100},
	"code":        {Required: true, MaxLength: 20, Pattern: codePattern, PatternName: "letters, numbers, underscores, and hyphens"},
	"entity_type": {Required: true, OneOf: []string{string(partner.EntityTypeHalcoBuyer), string(partner.EntityTypeOfftaker)}},
}

// EntityService handles partner entity business operations
type EntityService struct {
	entities partner.EntityRepository
	cache    *cache.QueryCache
	ttl      config.CacheConfig
	logger   *zap.Logger
}

// NewEntityService creates a new EntityService
func NewEntityService(entities partner.EntityRepository, queryCache *cache.QueryCache, ttl config.CacheConfig, logger *zap.Logger) *EntityService {
	return &EntityService{
		entities: entities,
		cache:    queryCache,
		ttl:      ttl,
		logger:   logger,
	}
}

// Create creates a new partner entity
func (s *EntityService) Create(ctx context.Context, req CreateEntityRequest) shared.Result {
	return shared.SafeOperation(s.logger, "create partner entity", func() (shared.Result, error) {
		if errs := entityRules.Validate(entityValues(req.Name, req.Code, req.EntityType)); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		exists, err := s.entities.ExistsByCode(ctx, req.Code, uuid.Nil)
		if err != nil {
			return shared.Result{}, err
		}
		if exists {
			return shared.Result{}, domain.NewDuplicateError("Partner entity", "code", req.Code)
		}

		entity, err := partner.NewPartnerEntity(req.Name, req.Code, req.Description, partner.EntityType(req.EntityType))
		if err != nil {
			return shared.Result{}, err
		}
		if err := s.entities.Create(ctx, entity); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(entity.ID)
		return shared.OK("Partner entity created", ToEntityResponse(entity, 0)), nil
	})
}

// Get retrieves a single partner entity with its partner count
func (s *EntityService) Get(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "get partner entity", func() (shared.Result, error) {
		key := cache.Key("entity", "get", []any{id}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partner entity retrieved", cached), nil
		}

		entity, err := s.entities.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		partnerCount, err := s.entities.CountPartners(ctx, id)
		if err != nil {
			return shared.Result{}, err
		}

		response := ToEntityResponse(entity, partnerCount)
		s.cache.Put(key, response, s.ttl.EntityTTL)
		return shared.OK("Partner entity retrieved", response), nil
	})
}

// GetByCode retrieves a partner entity by its code
func (s *EntityService) GetByCode(ctx context.Context, code string) shared.Result {
	return shared.SafeOperation(s.logger, "get partner entity by code", func() (shared.Result, error) {
		key := cache.Key("entity", "by_code", []any{code}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partner entity retrieved", cached), nil
		}

		entity, err := s.entities.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return shared.Result{}, domain.NewNotFoundError("Partner entity", code)
			}
			return shared.Result{}, err
		}
		partnerCount, err := s.entities.CountPartners(ctx, entity.ID)
		if err != nil {
			return shared.Result{}, err
		}

		response := ToEntityResponse(entity, partnerCount)
		s.cache.Put(key, response, s.ttl.EntityTTL)
		return shared.OK("Partner entity retrieved", response), nil
	})
}

// List retrieves a paginated, optionally searched entity listing
func (s *EntityService) List(ctx context.Context, filter domain.Filter) shared.Result {
	return shared.SafeOperation(s.logger, "list partner entities", func() (shared.Result, error) {
		key := cache.Key("entity", "list",
			[]any{filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir},
			map[string]any{"search": filter.Search})
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partner entities retrieved", cached), nil
		}

		entities, err := s.entities.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}
		total, err := s.entities.Count(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]EntityResponse, len(entities))
		for i := range entities {
			partnerCount, err := s.entities.CountPartners(ctx, entities[i].ID)
			if err != nil {
				return shared.Result{}, err
			}
			responses[i] = ToEntityResponse(&entities[i], partnerCount)
		}

		page := domain.NewPaginated(responses, total, filter.Page, filter.PageSize)
		s.cache.Put(key, page, s.ttl.EntityTTL)
		return shared.OK("Partner entities retrieved", page), nil
	})
}

// ByType retrieves entities of one type
func (s *EntityService) ByType(ctx context.Context, entityType string) shared.Result {
	return shared.SafeOperation(s.logger, "list partner entities by type", func() (shared.Result, error) {
		if entityType != string(partner.EntityTypeHalcoBuyer) && entityType != string(partner.EntityTypeOfftaker) {
			return shared.Invalid([]string{"entity_type must be one of [halco_buyer offtaker]"}), nil
		}

		key := cache.Key("entity", "by_type", []any{entityType}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partner entities retrieved", cached), nil
		}

		entities, err := s.entities.FindByType(ctx, partner.EntityType(entityType))
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]EntityResponse, len(entities))
		for i := range entities {
			responses[i] = ToEntityResponse(&entities[i], 0)
		}
		s.cache.Put(key, responses, s.ttl.RelationTTL)
		return shared.OK("Partner entities retrieved", responses), nil
	})
}

// Options retrieves all entities as dropdown options, ordered by name
func (s *EntityService) Options(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "list partner entity options", func() (shared.Result, error) {
		key := cache.Key("entity", "options", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partner entity options retrieved", cached), nil
		}

		filter := domain.Filter{Page: 1, PageSize: optionPageSize, OrderBy: "name", OrderDir: "asc"}
		entities, err := s.entities.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		options := make([]EntityOption, len(entities))
		for i := range entities {
			options[i] = EntityOption{ID: entities[i].ID, Name: entities[i].Name, Code: entities[i].Code}
		}

		s.cache.Put(key, options, s.ttl.EntityTTL)
		return shared.OK("Partner entity options retrieved", options), nil
	})
}

// Update updates a partner entity
func (s *EntityService) Update(ctx context.Context, id uuid.UUID, req UpdateEntityRequest) shared.Result {
	return shared.SafeOperation(s.logger, "update partner entity", func() (shared.Result, error) {
		if errs := entityRules.Validate(entityValues(req.Name, req.Code, req.EntityType)); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		entity, err := s.entities.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		exists, err := s.entities.ExistsByCode(ctx, req.Code, id)
		if err != nil {
			return shared.Result{}, err
		}
		if exists {
			return shared.Result{}, domain.NewDuplicateError("Partner entity", "code", req.Code)
		}

		if err := entity.Update(req.Name, req.Code, req.Description, partner.EntityType(req.EntityType)); err != nil {
			return shared.Result{}, err
		}
		if err := s.entities.Update(ctx, entity); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(id)
		partnerCount, err := s.entities.CountPartners(ctx, id)
		if err != nil {
			return shared.Result{}, err
		}
		return shared.OK("Partner entity updated", ToEntityResponse(entity, partnerCount)), nil
	})
}

// Delete removes a partner entity. Deletion is refused while active
// partners still belong to it.
func (s *EntityService) Delete(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "delete partner entity", func() (shared.Result, error) {
		if err := s.entities.Delete(ctx, id); err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		s.invalidate(id)
		return shared.OK("Partner entity deleted", nil), nil
	})
}

func (s *EntityService) invalidate(id uuid.UUID) {
	s.cache.InvalidateKeys(
		cache.Key("entity", "get", []any{id}, nil),
		cache.Key("entity", "options", nil, nil),
	)
	s.cache.Invalidate("entity:list")
	s.cache.Invalidate("entity:by_type")
	s.cache.Invalidate("entity:by_code")
	s.cache.Invalidate("partner:")
	s.cache.Invalidate("stats:")
}

func (s *EntityService) asNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError("Partner entity", id.String())
	}
	return err
}

func entityValues(name, code, entityType string) map[string]any {
	return map[string]any{
		"name":        name,
		"code":        code,
		"entity_type": entityType,
	}
}
