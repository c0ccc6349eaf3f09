package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormRepository provides the shared CRUD surface all entity repositories
// embed. Lifecycle hooks registered on it run around create, update, and
// delete; a before-hook error aborts the operation.
type gormRepository[T any] struct {
	db         *gorm.DB
	hooks      *shared.Hooks[T]
	descriptor shared.EntityDescriptor
}

func newGormRepository[T any](db *gorm.DB, descriptor shared.EntityDescriptor) gormRepository[T] {
	return gormRepository[T]{
		db:         db,
		hooks:      shared.NewHooks[T](),
		descriptor: descriptor,
	}
}

// Hooks exposes the lifecycle hook registry
func (r *gormRepository[T]) Hooks() *shared.Hooks[T] {
	return r.hooks
}

// FindByID finds an entity by its ID
func (r *gormRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll finds all entities matching the filter
func (r *gormRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var entities []T
	query := r.applyFilter(r.db.WithContext(ctx).Model(new(T)), filter)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Count counts entities matching the filter
func (r *gormRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(new(T)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCreatedSince counts entities whose date field is at or after since
func (r *gormRepository[T]) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).
		Where(r.descriptor.DateField+" >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts an entity, running before/after create hooks
func (r *gormRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.hooks.Run(ctx, shared.BeforeCreate, entity); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return err
	}
	return r.hooks.Run(ctx, shared.AfterCreate, entity)
}

// Update saves an entity, running before/after update hooks
func (r *gormRepository[T]) Update(ctx context.Context, entity *T) error {
	if err := r.hooks.Run(ctx, shared.BeforeUpdate, entity); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return err
	}
	return r.hooks.Run(ctx, shared.AfterUpdate, entity)
}

// Delete removes an entity by id. The before-delete hook sees the loaded
// entity and may veto the operation with an error.
func (r *gormRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.hooks.Run(ctx, shared.BeforeDelete, entity); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return r.hooks.Run(ctx, shared.AfterDelete, entity)
}

// FindByCriteria finds entities matching exact-value criteria joined by
// AND or OR. Criteria columns are sorted for deterministic SQL.
func (r *gormRepository[T]) FindByCriteria(ctx context.Context, criteria map[string]any, op shared.CriteriaOperator) ([]T, error) {
	var entities []T
	query := r.db.WithContext(ctx).Model(new(T))

	if len(criteria) > 0 {
		columns := make([]string, 0, len(criteria))
		for column := range criteria {
			columns = append(columns, column)
		}
		sort.Strings(columns)

		if op == shared.CriteriaOr {
			clauses := make([]string, 0, len(columns))
			args := make([]any, 0, len(columns))
			for _, column := range columns {
				clauses = append(clauses, column+" = ?")
				args = append(args, criteria[column])
			}
			query = query.Where(strings.Join(clauses, " OR "), args...)
		} else {
			for _, column := range columns {
				query = query.Where(column+" = ?", criteria[column])
			}
		}
	}

	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// BulkCreate inserts all entities in a single transaction, running
// create hooks for each row. Nothing is inserted if any row fails.
func (r *gormRepository[T]) BulkCreate(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entity := range entities {
			if err := r.hooks.Run(ctx, shared.BeforeCreate, entity); err != nil {
				return err
			}
			if err := tx.Create(entity).Error; err != nil {
				return err
			}
		}
		for _, entity := range entities {
			if err := r.hooks.Run(ctx, shared.AfterCreate, entity); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetOrCreate returns the entity matching lookup, creating it via build
// when absent. The second return reports whether a row was created.
func (r *gormRepository[T]) GetOrCreate(ctx context.Context, lookup map[string]any, build func() *T) (*T, bool, error) {
	existing, err := r.findOneBy(ctx, lookup)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	entity := build()
	if createErr := r.Create(ctx, entity); createErr != nil {
		// A concurrent writer may have inserted the same natural key;
		// re-check before reporting the failure.
		if retry, retryErr := r.findOneBy(ctx, lookup); retryErr == nil {
			return retry, false, nil
		}
		return nil, false, createErr
	}
	return entity, true, nil
}

// UpdateOrCreate applies changes to the entity matching lookup, creating
// it via build when absent
func (r *gormRepository[T]) UpdateOrCreate(ctx context.Context, lookup map[string]any, build func() *T, apply func(*T)) (*T, bool, error) {
	existing, err := r.findOneBy(ctx, lookup)
	if err == nil {
		apply(existing)
		if updateErr := r.Update(ctx, existing); updateErr != nil {
			return nil, false, updateErr
		}
		return existing, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	entity := build()
	apply(entity)
	if createErr := r.Create(ctx, entity); createErr != nil {
		return nil, false, createErr
	}
	return entity, true, nil
}

func (r *gormRepository[T]) findOneBy(ctx context.Context, lookup map[string]any) (*T, error) {
	var entity T
	query := r.db.WithContext(ctx)
	columns := make([]string, 0, len(lookup))
	for column := range lookup {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		query = query.Where(column+" = ?", lookup[column])
	}
	if err := query.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// applyFilter applies filter options to the query
func (r *gormRepository[T]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if orderBy := r.descriptor.SortColumn(filter.OrderBy); orderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(orderBy + " " + orderDir)
	}

	return query
}

// applyFilterWithoutPagination applies search and exact-match filters
func (r *gormRepository[T]) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" && r.descriptor.Searchable() {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		clauses := make([]string, 0, len(r.descriptor.SearchFields))
		args := make([]any, 0, len(r.descriptor.SearchFields))
		for _, field := range r.descriptor.SearchFields {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", field))
			args = append(args, pattern)
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	for key, value := range filter.Filters {
		if value == nil {
			query = query.Where(key + " IS NULL")
		} else {
			query = query.Where(key+" = ?", value)
		}
	}

	return query
}
