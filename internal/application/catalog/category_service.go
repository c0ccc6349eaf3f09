package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/bauxite/backend/internal/application/shared"
	"github.com/bauxite/backend/internal/domain/catalog"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/bauxite/backend/internal/infrastructure/cache"
	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCategoryRequest represents a request to create a product category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// UpdateCategoryRequest represents a request to rename a product category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// CategoryResponse represents a product category in API responses
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	SubtypeCount int64     `json:"subtype_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryOption is the slim shape used by select dropdowns
type CategoryOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ToCategoryResponse converts a domain ProductCategory to CategoryResponse
func ToCategoryResponse(c *catalog.ProductCategory, subtypeCount int64) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		SubtypeCount: subtypeCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// optionPageSize bounds dropdown listings; reference data stays well
// under this in practice.
const optionPageSize = 1000

var categoryRules = shared.Rules{
	"name": {Required: true, MaxLength: 50},
}

// CategoryService handles product category business operations
type CategoryService struct {
	categories catalog.CategoryRepository
	cache      *cache.QueryCache
	ttl        config.CacheConfig
	logger     *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories catalog.CategoryRepository, queryCache *cache.QueryCache, ttl config.CacheConfig, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		cache:      queryCache,
		ttl:        ttl,
		logger:     logger,
	}
}

// Create creates a new product category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) shared.Result {
	return shared.SafeOperation(s.logger, "create category", func() (shared.Result, error) {
		if errs := categoryRules.Validate(map[string]any{"name": req.Name}); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		exists, err := s.categories.ExistsByName(ctx, req.Name, uuid.Nil)
		if err != nil {
			return shared.Result{}, err
		}
		if exists {
			return shared.Result{}, domain.NewDuplicateError("Product category", "name", req.Name)
		}

		category, err := catalog.NewProductCategory(req.Name)
		if err != nil {
			return shared.Result{}, err
		}
		if err := s.categories.Create(ctx, category); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(category.ID)
		return shared.OK("Category created", ToCategoryResponse(category, 0)), nil
	})
}

// Get retrieves a single category with its subtype count
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "get category", func() (shared.Result, error) {
		key := cache.Key("category", "get", []any{id}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Category retrieved", cached), nil
		}

		category, err := s.categories.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		subtypeCount, err := s.categories.CountSubtypes(ctx, id)
		if err != nil {
			return shared.Result{}, err
		}

		response := ToCategoryResponse(category, subtypeCount)
		s.cache.Put(key, response, s.ttl.EntityTTL)
		return shared.OK("Category retrieved", response), nil
	})
}

// List retrieves a paginated, optionally searched category listing
func (s *CategoryService) List(ctx context.Context, filter domain.Filter) shared.Result {
	return shared.SafeOperation(s.logger, "list categories", func() (shared.Result, error) {
		key := cache.Key("category", "list",
			[]any{filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir},
			map[string]any{"search": filter.Search})
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Categories retrieved", cached), nil
		}

		categories, err := s.categories.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}
		total, err := s.categories.Count(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]CategoryResponse, len(categories))
		for i := range categories {
			subtypeCount, err := s.categories.CountSubtypes(ctx, categories[i].ID)
			if err != nil {
				return shared.Result{}, err
			}
			responses[i] = ToCategoryResponse(&categories[i], subtypeCount)
		}

		page := domain.NewPaginated(responses, total, filter.Page, filter.PageSize)
		s.cache.Put(key, page, s.ttl.EntityTTL)
		return shared.OK("Categories retrieved", page), nil
	})
}

// Options retrieves all categories as dropdown options, ordered by name
func (s *CategoryService) Options(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "list category options", func() (shared.Result, error) {
		key := cache.Key("category", "options", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Category options retrieved", cached), nil
		}

		filter := domain.Filter{Page: 1, PageSize: optionPageSize, OrderBy: "name", OrderDir: "asc"}
		categories, err := s.categories.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		options := make([]CategoryOption, len(categories))
		for i := range categories {
			options[i] = CategoryOption{ID: categories[i].ID, Name: categories[i].Name}
		}

		s.cache.Put(key, options, s.ttl.EntityTTL)
		return shared.OK("Category options retrieved", options), nil
	})
}

// Stats reports the category total and recent creation counts
func (s *CategoryService) Stats(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "category stats", func() (shared.Result, error) {
		key := cache.Key("category", "stats", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Category stats retrieved", cached), nil
		}

		stats, err := collectCreationStats(ctx, s.categories)
		if err != nil {
			return shared.Result{}, err
		}

		s.cache.Put(key, stats, s.ttl.StatsTTL)
		return shared.OK("Category stats retrieved", stats), nil
	})
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) shared.Result {
	return shared.SafeOperation(s.logger, "update category", func() (shared.Result, error) {
		if errs := categoryRules.Validate(map[string]any{"name": req.Name}); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		category, err := s.categories.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		exists, err := s.categories.ExistsByName(ctx, req.Name, id)
		if err != nil {
			return shared.Result{}, err
		}
		if exists {
			return shared.Result{}, domain.NewDuplicateError("Product category", "name", req.Name)
		}

		if err := category.Rename(req.Name); err != nil {
			return shared.Result{}, err
		}
		if err := s.categories.Update(ctx, category); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(id)
		subtypeCount, err := s.categories.CountSubtypes(ctx, id)
		if err != nil {
			return shared.Result{}, err
		}
		return shared.OK("Category updated", ToCategoryResponse(category, subtypeCount)), nil
	})
}

// Delete removes a category. Deletion is refused while subtypes still
// reference it.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "delete category", func() (shared.Result, error) {
		if err := s.categories.Delete(ctx, id); err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		s.invalidate(id)
		return shared.OK("Category deleted", nil), nil
	})
}

func (s *CategoryService) invalidate(id uuid.UUID) {
	s.cache.InvalidateKeys(
		cache.Key("category", "get", []any{id}, nil),
		cache.Key("category", "options", nil, nil),
		cache.Key("category", "stats", nil, nil),
	)
	s.cache.Invalidate("category:list")
	s.cache.Invalidate("subtype:")
	s.cache.Invalidate("stats:")
}

func (s *CategoryService) asNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError("Product category", id.String())
	}
	return err
}
