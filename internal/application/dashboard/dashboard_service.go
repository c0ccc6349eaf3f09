package dashboard

import (
	"context"
	"errors"
	"sort"

	"github.com/bauxite/backend/internal/application/shared"
	"github.com/bauxite/backend/internal/domain/catalog"
	"github.com/bauxite/backend/internal/domain/partner"
	"github.com/bauxite/backend/internal/domain/production"
	domain "github.com/bauxite/backend/internal/domain/shared"
	"github.com/bauxite/backend/internal/infrastructure/cache"
	"github.com/bauxite/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Summary carries the headline record counts for the admin landing page
type Summary struct {
	Categories     int64            `json:"categories"`
	Mines          int64            `json:"mines"`
	Subtypes       int64            `json:"subtypes"`
	Entities       int64            `json:"entities"`
	Partners       int64            `json:"partners"`
	ActivePartners int64            `json:"active_partners"`
	Scenarios      int64            `json:"scenarios"`
	ScenarioStatus map[string]int64 `json:"scenario_status"`
}

// Breakdown is one named slice of a distribution
type Breakdown struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Count int64     `json:"count"`
}

// DashboardService aggregates counts across the catalog, partner, and
// production domains
type DashboardService struct {
	categories catalog.CategoryRepository
	mines      catalog.MineRepository
	subtypes   catalog.SubtypeRepository
	entities   partner.EntityRepository
	partners   partner.PartnerRepository
	scenarios  production.ScenarioRepository
	cache      *cache.QueryCache
	ttl        config.CacheConfig
	logger     *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	categories catalog.CategoryRepository,
	mines catalog.MineRepository,
	subtypes catalog.SubtypeRepository,
	entities partner.EntityRepository,
	partners partner.PartnerRepository,
	scenarios production.ScenarioRepository,
	queryCache *cache.QueryCache,
	ttl config.CacheConfig,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		categories: categories,
		mines:      mines,
		subtypes:   subtypes,
		entities:   entities,
		partners:   partners,
		scenarios:  scenarios,
		cache:      queryCache,
		ttl:        ttl,
		logger:     logger,
	}
}

// GetSummary retrieves the headline counts
func (s *DashboardService) GetSummary(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "get dashboard summary", func() (shared.Result, error) {
		key := cache.Key("stats", "summary", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Dashboard summary retrieved", cached), nil
		}

		all := domain.Filter{Page: 1, PageSize: 1}
		summary := Summary{ScenarioStatus: make(map[string]int64)}

		var err error
		if summary.Categories, err = s.categories.Count(ctx, all); err != nil {
			return shared.Result{}, err
		}
		if summary.Mines, err = s.mines.Count(ctx, all); err != nil {
			return shared.Result{}, err
		}
		if summary.Subtypes, err = s.subtypes.Count(ctx, all); err != nil {
			return shared.Result{}, err
		}
		if summary.Entities, err = s.entities.Count(ctx, all); err != nil {
			return shared.Result{}, err
		}
		if summary.Partners, err = s.partners.Count(ctx, all); err != nil {
			return shared.Result{}, err
		}

		active, err := s.partners.FindActive(ctx)
		if err != nil {
			return shared.Result{}, err
		}
		summary.ActivePartners = int64(len(active))

		byStatus, err := s.scenarios.CountByStatus(ctx)
		if err != nil {
			return shared.Result{}, err
		}
		for status, count := range byStatus {
			summary.ScenarioStatus[string(status)] = count
			summary.Scenarios += count
		}

		s.cache.Put(key, summary, s.ttl.StatsTTL)
		return shared.OK("Dashboard summary retrieved", summary), nil
	})
}

// SubtypesByCategory retrieves the subtype distribution across categories
func (s *DashboardService) SubtypesByCategory(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "get subtypes by category", func() (shared.Result, error) {
		key := cache.Key("stats", "subtypes_by_category", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Subtype distribution retrieved", cached), nil
		}

		counts, err := s.subtypes.CountByCategory(ctx)
		if err != nil {
			return shared.Result{}, err
		}

		breakdown, err := s.resolveBreakdown(counts, func(id uuid.UUID) (string, error) {
			category, err := s.categories.FindByID(ctx, id)
			if err != nil {
				return "", err
			}
			return category.Name, nil
		})
		if err != nil {
			return shared.Result{}, err
		}

		s.cache.Put(key, breakdown, s.ttl.StatsTTL)
		return shared.OK("Subtype distribution retrieved", breakdown), nil
	})
}

// SubtypesByMine retrieves the subtype distribution across mines
func (s *DashboardService) SubtypesByMine(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "get subtypes by mine", func() (shared.Result, error) {
		key := cache.Key("stats", "subtypes_by_mine", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Subtype distribution retrieved", cached), nil
		}

		counts, err := s.subtypes.CountByMine(ctx)
		if err != nil {
			return shared.Result{}, err
		}

		breakdown, err := s.resolveBreakdown(counts, func(id uuid.UUID) (string, error) {
			mine, err := s.mines.FindByID(ctx, id)
			if err != nil {
				return "", err
			}
			return mine.Name, nil
		})
		if err != nil {
			return shared.Result{}, err
		}

		s.cache.Put(key, breakdown, s.ttl.StatsTTL)
		return shared.OK("Subtype distribution retrieved", breakdown), nil
	})
}

// PartnersByEntity retrieves the partner distribution across entities
func (s *DashboardService) PartnersByEntity(ctx context.Context) shared.Result {
	return shared.SafeOperation(s.logger, "get partners by entity", func() (shared.Result, error) {
		key := cache.Key("stats", "partners_by_entity", nil, nil)
		if cached, ok := s.cache.Get(key); ok {
			return shared.OK("Partner distribution retrieved", cached), nil
		}

		counts, err := s.partners.CountByEntity(ctx)
		if err != nil {
			return shared.Result{}, err
		}

		breakdown, err := s.resolveBreakdown(counts, func(id uuid.UUID) (string, error) {
			entity, err := s.entities.FindByID(ctx, id)
			if err != nil {
				return "", err
			}
			return entity.Name, nil
		})
		if err != nil {
			return shared.Result{}, err
		}

		s.cache.Put(key, breakdown, s.ttl.StatsTTL)
		return shared.OK("Partner distribution retrieved", breakdown), nil
	})
}

// resolveBreakdown turns id keyed counts into named slices. Rows whose
// parent vanished between the two queries are skipped rather than
// failing the whole distribution.
func (s *DashboardService) resolveBreakdown(counts map[uuid.UUID]int64, nameOf func(uuid.UUID) (string, error)) ([]Breakdown, error) {
	breakdown := make([]Breakdown, 0, len(counts))
	for id, count := range counts {
		name, err := nameOf(id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		breakdown = append(breakdown, Breakdown{ID: id, Name: name, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Name < breakdown[j].Name
	})
	return breakdown, nil
}
