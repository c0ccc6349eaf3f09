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

// CreateMineRequest represents a request to create a mine
type CreateMineRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateMineRequest represents a request to rename a mine
type UpdateMineRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// MineResponse represents a mine in API responses
type MineResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	SubtypeCount int64     `json:"subtype_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MineOption is the slim shape used by select dropdowns
type MineOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ToMineResponse converts a domain Mine to MineResponse
func ToMineResponse(m *catalog.Mine, subtypeCount int64) MineResponse {
	return MineResponse{
		ID:           m.ID,
		Name:         m.Name,
		SubtypeCount: subtypeCount,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

var mineRules = shared.Rules{
	"name": {Required: true, MaxLength: 100},
}

// MineService handles mine business operations
type MineService struct {
	mines  catalog.MineRepository
	cache  *cache.QueryCache
	ttl    config.CacheConfig
	logger *zap.Logger
}

// NewMineService creates a new MineService
func NewMineService(mines catalog.MineRepository, queryCache *cache.QueryCache, ttl config.CacheConfig, logger *zap.Logger) *MineService {
	return &MineService{
		mines:  mines,
		cache:  queryCache,
		ttl:    ttl,
		logger: logger,
	}
}

// Create creates a new mine
func (s *MineService) Create(ctx context.Context, req CreateMineRequest) shared.Result {
	return shared.SafeOperation(s.logger, "create mine", func() (shared.Result, error) {
		if errs := mineRules.Validate(map[string]any{"name": req.Name}); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		exists, err := s.mines.ExistsByName(ctx, req.Name, uuid.Nil)
		if err != nil {
			return shared.Result{}, err
		}
		if exists {
			return shared.Result{}, domain.NewDuplicateError("Mine", "name", req.Name)
		}

		mine, err := catalog.NewMine(req.Name)
		if err != nil {
			return shared.Result{}, err
		}
		if err := s.mines.Create(ctx, mine); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(mine.ID)
		return shared.OK("Mine created", ToMineResponse(mine, 0)), nil
	})
}

// Get retrieves a single mine with its subtype count
func (s *MineService) Get(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "get mine", func() (shared.Result, error) {
		key := cache.Key("mine", "get", []any{id}, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Mine retrieved", cached), nil
		}

		mine, err := s.mines.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		subtypeCount, err := s.mines.CountSubtypes(ctx, id)
		if err != nil {
			return shared.Result{}, err
		}

		response := ToMineResponse(mine, subtypeCount)
		s.cache.Put(key, response, s.ttl.EntityTTL)
		return shared.OK("Mine retrieved", response), nil
	})
}

// List retrieves a paginated, optionally searched mine listing
func (s *MineService) List(ctx context.Context, filter domain.Filter) shared.Result {
	return shared.SafeOperation(s.logger, "list mines", func() (shared.Result, error) {
		key := cache.Key("mine", "list",
			[]any{filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir},
			map[string]any{"search": filter.Search})
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Mines retrieved", cached), nil
		}

		mines, err := s.mines.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}
		total, err := s.mines.Count(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		responses := make([]MineResponse, len(mines))
		for i := range mines {
			subtypeCount, err := s.mines.CountSubtypes(ctx, mines[i].ID)
			if err != nil {
				return shared.Result{}, err
			}
			responses[i] = ToMineResponse(&mines[i], subtypeCount)
		}

		page := domain.NewPaginated(responses, total, filter.Page, filter.PageSize)
		s.cache.Put(key, page, s.ttl.EntityTTL)
		return shared.OK("Mines retrieved", page), nil
	})
}

// Options retrieves all mines as dropdown options, ordered by name
func (s *MineService) Options(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "list mine options", func() (shared.Result, error) {
		key := cache.Key("mine", "options", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Mine options retrieved", cached), nil
		}

		filter := domain.Filter{Page: 1, PageSize: optionPageSize, OrderBy: "name", OrderDir: "asc"}
		mines, err := s.mines.FindAll(ctx, filter)
		if err != nil {
			return shared.Result{}, err
		}

		options := make([]MineOption, len(mines))
		for i := range mines {
			options[i] = MineOption{ID: mines[i].ID, Name: mines[i].Name}
		}

		s.cache.Put(key, options, s.ttl.EntityTTL)
		return shared.OK("Mine options retrieved", options), nil
	})
}

// Stats reports the mine total and recent creation counts
func (s *MineService) Stats(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "mine stats", func() (shared.Result, error) {
		key := cache.Key("mine", "stats", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Mine stats retrieved", cached), nil
		}

		stats, err := collectCreationStats(ctx, s.mines)
		if err != nil {
			return shared.Result{}, err
		}

		s.cache.Put(key, stats, s.ttl.StatsTTL)
		return shared.OK("Mine stats retrieved", stats), nil
	})
}

// Update renames a mine
func (s *MineService) Update(ctx context.Context, id uuid.UUID, req UpdateMineRequest) shared.Result {
	return shared.SafeOperation(s.logger, "update mine", func() (shared.Result, error) {
		if errs := mineRules.Validate(map[string]any{"name": req.Name}); len(errs) > 0 {
			return shared.Invalid(errs), nil
		}

		mine, err := s.mines.FindByID(ctx, id)
		if err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}

		exists, err := s.mines.ExistsByName(ctx, req.Name, id)
		if err != nil {
			return shared.Result{}, err
		}
		if exists {
			return shared.Result{}, domain.NewDuplicateError("Mine", "name", req.Name)
		}

		if err := mine.Rename(req.Name); err != nil {
			return shared.Result{}, err
		}
		if err := s.mines.Update(ctx, mine); err != nil {
			return shared.Result{}, err
		}

		s.invalidate(id)
		subtypeCount, err := s.mines.CountSubtypes(ctx, id)
		if err != nil {
			return shared.Result{}, err
		}
		return shared.OK("Mine updated", ToMineResponse(mine, subtypeCount)), nil
	})
}

// Delete removes a mine. Deletion is refused while subtypes still
// reference it.
func (s *MineService) Delete(ctx context.Context, id uuid.UUID) shared.Result {
	return shared.SafeOperation(s.logger, "delete mine", func() (shared.Result, error) {
		if err := s.mines.Delete(ctx, id); err != nil {
			return shared.Result{}, s.asNotFound(err, id)
		}
		s.invalidate(id)
		return shared.OK("Mine deleted", nil), nil
	})
}

func (s *MineService) invalidate(id uuid.UUID) {
	s.cache.InvalidateKeys(
		cache.Key("mine", "get", []any{id}, nil),
		cache.Key("mine", "options", nil, nil),
		cache.Key("mine", "stats", nil, nil),
	)
	s.cache.Invalidate("mine:list")
	s.cache.Invalidate("subtype:")
	s.cache.Invalidate("stats:")
}

func (s *MineService) asNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError("Mine", id.String())
	}
	return err
}
