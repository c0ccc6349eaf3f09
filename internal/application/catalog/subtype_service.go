package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/bauxite/backend/internal/application/shared"
	"github.com/bauxite/backend/internal/domain/catalog"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/bauxite/backend/internal/infrastructure/cache"
	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSubtypeRequest represents a request to create a product subtype
type CreateSubtypeRequest struct {
	Name       string    `json:"name" binding:"required,min=3,max=100"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	MineID     uuid.UUID `json:"mine_id" binding:"required"`
}

// UpdateSubtypeRequest represents a request to update a product subtype
type UpdateSubtypeRequest struct {
	Name       string    `json:"name" binding:"required,min=3,max=100"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	MineID     uuid.UUID `json:"mine_id" binding:"required"`
}

// BulkCreateSubtypesRequest represents a batch of subtypes to create
// atomically
type BulkCreateSubtypesRequest struct {
	Items []CreateSubtypeRequest `json:"items" binding:"required,min=1,dive"`
}

// SubtypeResponse represents a product subtype in API responses
type SubtypeResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	MineID       uuid.UUID `json:"mine_id"`
	MineName     string    `json:"mine_name,omitempty"`
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubtypeOption is the slim shape used by select dropdowns. Labels carry
// the category and mine context so ambiguous names stay distinguishable.
type SubtypeOption struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

// ToSubtypeResponse converts a domain ProductSubtype to SubtypeResponse
func ToSubtypeResponse(s *catalog.ProductSubtype) SubtypeResponse {
	response := SubtypeResponse{
		ID:          s.ID,
		Name:        s.Name,
		CategoryID:  s.CategoryID,
		MineID:      s.MineID,
		DisplayName: s.DisplayName(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Category != nil {
		response.CategoryName = s.Category.Name
	}
	if s.Mine != nil {
		response.MineName = s.Mine.Name
	}
	return response
}

var subtypeRules = shared.Rules{
	"name": {
		Required:    true,
		MinLength:   3,
		MaxLength:   100,
		Pattern:     regexp.MustCompile(`^[A-Za-z0-9 _-]+$`),
		PatternName: "letters, numbers, spaces, hyphens, and underscores",
	},
}

// SubtypeService handles product subtype business operations. Subtypes
// reference a category and a mine, so writes validate both parents and
// the uniqueness of the (name, category, mine) combination.
type SubtypeService struct {
	subtypes   catalog.SubtypeRepository
	categories catalog.CategoryRepository
	mines      catalog.MineRepository
	cache      *cache.QueryCache
	ttl        config.CacheConfig
	logger     *zap.Logger
}

// NewSubtypeService creates a new SubtypeService
func NewSubtypeService(
	subtypes catalog.SubtypeRepository,
	categories catalog.CategoryRepository,
	mines catalog.MineRepository,
	queryCache *cache.QueryCache,
	ttl config.CacheConfig,
	logger *zap.Logger,
) *SubtypeService {
	return &SubtypeService{
		subtypes:   subtypes,
		categories: categories,
		mines:      mines,
		cache:      queryCache,
		ttl:        ttl,
		logger:     logger,
	}
}

// Create creates a new product subtype
func (s *SubtypeService) Create(ctx context.Context, req CreateSubtypeRequest) shared.Result {
	return shared.SafeOperation(s.logger, "create subtype", func() (shared.Result, error) {
		if errs := s.validateRequest(ctx, req.Name, req.CategoryID, req.MineID); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		taken, err := s.subtypes.CombinationExists(ctx, req.Name, req.CategoryID, req.MineID, uuid.Nil)
		if err != nil {
			return shared.Result{}, err
		}
		if taken {
			return shared.Result{}, domain.NewDuplicateError("Product subtype", "name", req.Name)
		}

		subtype, err := catalog.NewProductSubtype(req.Name, req.CategoryID, req.MineID)
		if err != nil {
			return shared.Result{}, err
		}
		if err := s.subtypes.Create(ctx, subtype); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(subtype.ID)
		created, err := s.subtypes.FindByID(ctx, subtype.ID)
		if err != nil {
			return shared.Result{}, err
		}
		return shared.OK("Subtype created", ToSubtypeResponse(created)), nil
	})
}

// BulkCreate creates a batch of subtypes in one transaction. The whole
// batch is validated before anything is written; any failure reports
// every broken item and inserts nothing.
func (s *SubtypeService) BulkCreate(ctx context.Context, req BulkCreateSubtypesRequest) shared.Result {
	return shared.SafeOperation(s.logger, "bulk create subtypes", func() (shared.Result, error) {
		if len(req.Items) == 0 {
			return shared.Invalid([]string{"items cannot be empty"}), nil
		}

		var errs []string
		seen := make(map[string]int)
		for i, item := range req.Items {
			itemErrs := s.validateRequest(ctx, item.Name, item.CategoryID, item.MineID)
			for _, msg := range itemErrs {
				errs = append(errs, fmt.Sprintf("Item %d: %s", i+1, msg))
			}

			comboKey := fmt.Sprintf("%s|%s|%s", item.Name, item.CategoryID, item.MineID)
			if first, dup := seen[comboKey]; dup {
				errs = append(errs, fmt.Sprintf("Item %d: duplicates item %d", i+1, first+1))
				continue
			}
			seen[comboKey] = i

			if len(itemErrs) > 0 {
				continue
			}
			taken, err := s.subtypes.CombinationExists(ctx, item.Name, item.CategoryID, item.MineID, uuid.Nil)
			if err != nil {
				return shared.Result{}, err
			}
			if taken {
				errs = append(errs, fmt.Sprintf("Item %d: subtype %q already exists for this category and mine", i+1, item.Name))
			}
		}
		if len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		subtypes := make([]*catalog.ProductSubtype, len(req.Items))
		for i, item := range req.Items {
			subtype, err := catalog.NewProductSubtype(item.Name, item.CategoryID, item.MineID)
			if err != nil {
				return shared.Result{}, err
			}
			subtypes[i] = subtype
		}
		if err := s.subtypes.BulkCreate(ctx, subtypes); err != nil {
			return shared.Result{}, err
		}

		s.cache.Invalidate("subtype:")
		s.cache.Invalidate("category:")
		s.cache.Invalidate("mine:")
		s.cache.Invalidate("stats:")
		responses := make([]SubtypeResponse, len(subtypes))
		for i, subtype := range subtypes {
			responses[i] = ToSubtypeResponse(subtype)
		}
		return shared.OKWithMeta("Subtypes created", responses, map[string]any{"created": len(responses)}), nil
	})
}

// Get retrieves a single subtype with its category and mine preloaded
func (s *SubtypeService) Get(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "get subtype", func() (shared.Result, error) {
		key := cache.Key("subtype", "get", []any{id}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Subtype retrieved", cached), nil
		}

		subtype, err := s.subtypes.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		response := ToSubtypeResponse(subtype)
		s.cache.Put(key, response, s.ttl.EntityTTL)
		return shared.OK("Subtype retrieved", response), nil
	})
}

// List retrieves a paginated subtype listing, optionally filtered by
// category and mine
func (s *SubtypeService) List(ctx context.Context, filter domain.Filter) shared.Result {
	return shared.SafeOperation(s.logger, "list subtypes", func() (shared.Result, error) {
		key := cache.Key("subtype", "list",
			[]any{filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir},
			listKwargs(filter))
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Subtypes retrieved", cached), nil
		}

		subtypes, err := s.subtypes.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}
		total, err := s.subtypes.Count(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]SubtypeResponse, len(subtypes))
		for i := range subtypes {
			responses[i] = ToSubtypeResponse(&subtypes[i])
		}

		page := domain.NewPaginated(responses, total, filter.Page, filter.PageSize)
		s.cache.Put(key, page, s.ttl.RelationTTL)
		return shared.OK("Subtypes retrieved", page), nil
	})
}

// ByCategory retrieves the subtypes belonging to one category
func (s *SubtypeService) ByCategory(ctx context.Context, categoryID uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "list subtypes by category", func() (shared.Result, error) {
		key := cache.Key("subtype", "by_category", []any{categoryID}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Subtypes retrieved", cached), nil
		}

		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return shared.Result{}, domain.NewNotFoundError("Product category", categoryID.String())
			}
			return shared.Result{}, err
		}

		subtypes, err := s.subtypes.FindByCategory(ctx, categoryID)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]SubtypeResponse, len(subtypes))
		for i := range subtypes {
			responses[i] = ToSubtypeResponse(&subtypes[i])
		}
		s.cache.Put(key, responses, s.ttl.RelationTTL)
		return shared.OK("Subtypes retrieved", responses), nil
	})
}

// ByMine retrieves the subtypes sourced from one mine
func (s *SubtypeService) ByMine(ctx context.Context, mineID uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "list subtypes by mine", func() (shared.Result, error) {
		key := cache.Key("subtype", "by_mine", []any{mineID}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Subtypes retrieved", cached), nil
		}

		if _, err := s.mines.FindByID(ctx, mineID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return shared.Result{}, domain.NewNotFoundError("Mine", mineID.String())
			}
			return shared.Result{}, err
		}

		subtypes, err := s.subtypes.FindByMine(ctx, mineID)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]SubtypeResponse, len(subtypes))
		for i := range subtypes {
			responses[i] = ToSubtypeResponse(&subtypes[i])
		}
		s.cache.Put(key, responses, s.ttl.RelationTTL)
		return shared.OK("Subtypes retrieved", responses), nil
	})
}

// Options retrieves all subtypes as dropdown options labeled with
// category and mine context
func (s *SubtypeService) Options(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "list subtype options", func() (shared.Result, error) {
		key := cache.Key("subtype", "options", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Subtype options retrieved", cached), nil
		}

		filter := domain.Filter{Page: 1, PageSize: optionPageSize, OrderBy: "name", OrderDir: "asc"}
		subtypes, err := s.subtypes.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		options := make([]SubtypeOption, len(subtypes))
		for i := range subtypes {
			options[i] = SubtypeOption{ID: subtypes[i].ID, Label: subtypes[i].DisplayName()}
		}

		s.cache.Put(key, options, s.ttl.EntityTTL)
		return shared.OK("Subtype options retrieved", options), nil
	})
}

// Stats reports the subtype total, recent creation counts, and counts
// grouped by parent category and mine
func (s *SubtypeService) Stats(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "subtype stats", func() (shared.Result, error) {
		key := cache.Key("subtype", "stats", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Subtype stats retrieved", cached), nil
		}

		creation, err := collectCreationStats(ctx, s.subtypes)
		if err != nil {
			return shared.Result{}, err
		}
		byCategory, err := s.subtypes.CountByCategory(ctx)
		if err != nil {
			return shared.Result{}, err
		}
		byMine, err := s.subtypes.CountByMine(ctx)
		if err != nil {
			return shared.Result{}, err
		}

		stats := SubtypeStats{
			CreationStats: creation,
			ByCategory:    stringKeyed(byCategory),
			ByMine:        stringKeyed(byMine),
		}
		s.cache.Put(key, stats, s.ttl.StatsTTL)
		return shared.OK("Subtype stats retrieved", stats), nil
	})
}

func stringKeyed(counts map[uuid.UUID]int64) map[string]int64 {
	keyed := make(map[string]int64, len(counts))
	for id, count := range counts {
		keyed[id.String()] = count
	}
	return keyed
}

// Update updates a subtype's name and parent references
func (s *SubtypeService) Update(ctx context.Context, id uuid.UUID, req UpdateSubtypeRequest) shared.Result {
	return shared.SafeOperation(s.logger, "update subtype", func() (shared.Result, error) {
		subtype, err := s.subtypes.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		if errs := s.validateRequest(ctx, req.Name, req.CategoryID, req.MineID); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		taken, err := s.subtypes.CombinationExists(ctx, req.Name, req.CategoryID, req.MineID, id)
		if err != nil {
			return shared.Result{}, err
		}
		if taken {
			return shared.Result{}, domain.NewDuplicateError("Product subtype", "name", req.Name)
		}

		if err := subtype.Update(req.Name, req.CategoryID, req.MineID); err != nil {
			return shared.Result{}, err
		}
		if err := s.subtypes.Update(ctx, subtype); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(id)
		updated, err := s.subtypes.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, err
		}
		return shared.OK("Subtype updated", ToSubtypeResponse(updated)), nil
	})
}

// Delete removes a subtype
func (s *SubtypeService) Delete(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "delete subtype", func() (shared.Result, error) {
		if err := s.subtypes.Delete(ctx, id); err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		s.invalidate(id)
		return shared.OK("Subtype deleted", nil), nil
	})
}

// validateRequest collects field rule failures plus missing-parent
// errors naming the absent ids, so the caller sees every problem at
// once.
func (s *SubtypeService) validateRequest(ctx context.Context, name string, categoryID, mineID uuid.UUID) []string {
	errs := subtypeRules.Validate(map[string]any{"name": name})

	if categoryID == uuid.Nil {
		errs = append(errs, "category_id is required")
	} else if _, err := s.categories.FindByID(ctx, categoryID); errors.Is(err, domain.ErrNotFound) {
		errs = append(errs, fmt.Sprintf("Product category %s does not exist", categoryID))
	}

	if mineID == uuid.Nil {
		errs = append(errs, "mine_id is required")
	} else if _, err := s.mines.FindByID(ctx, mineID); errors.Is(err, domain.ErrNotFound) {
		errs = append(errs, fmt.Sprintf("Mine %s does not exist", mineID))
	}

	return errs
}

func (s *SubtypeService) invalidate(id uuid.UUID) {
	s.cache.InvalidateKeys(
		cache.Key("subtype", "get", []any{id}, nil),
		cache.Key("subtype", "options", nil, nil),
		cache.Key("subtype", "stats", nil, nil),
	)
	s.cache.Invalidate("subtype:list")
	s.cache.Invalidate("subtype:by_category")
	s.cache.Invalidate("subtype:by_mine")
	// parent responses embed subtype counts
	s.cache.Invalidate("category:")
	s.cache.Invalidate("mine:")
	s.cache.Invalidate("stats:")
}

func (s *SubtypeService) asNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError("Product subtype", id.String())
	}
	return err
}

func listKwargs(filter domain.Filter) map[string]any {
	kwargs := map[string]any{"search": filter.Search}
	for field, value := range filter.Filters {
		kwargs[field] = value
	}
	return kwargs
}
