package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Period granularities for CountByPeriod
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// FieldCount is one bucket of a grouped count
type FieldCount struct {
	Value string `gorm:"column:value"`
	Count int64  `gorm:"column:count"`
}

// Search finds rows whose search fields contain the phrase,
// case-insensitively. An empty phrase or a descriptor without search
// fields yields an empty result, never a full scan.
func Search[T any](ctx context.Context, db *gorm.DB, descriptor shared.EntityDescriptor, phrase string) ([]T, error) {
	results := []T{}
	phrase = strings.TrimSpace(phrase)
	if phrase == "" || !descriptor.Searchable() {
		return results, nil
	}

	pattern := "%" + strings.ToLower(phrase) + "%"
	clauses := make([]string, 0, len(descriptor.SearchFields))
	args := make([]any, 0, len(descriptor.SearchFields))
	for _, field := range descriptor.SearchFields {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", field))
		args = append(args, pattern)
	}

	err := db.WithContext(ctx).
		Table(descriptor.Table).
		Where(strings.Join(clauses, " OR "), args...).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FilterByDateRange finds rows whose date field falls inside [from, to]
func FilterByDateRange[T any](ctx context.Context, db *gorm.DB, descriptor shared.EntityDescriptor, from, to time.Time) ([]T, error) {
	var results []T
	err := db.WithContext(ctx).
		Table(descriptor.Table).
		Where(descriptor.DateField+" BETWEEN ? AND ?", from, to).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FindRecent finds rows created within the last N days
func FindRecent[T any](ctx context.Context, db *gorm.DB, descriptor shared.EntityDescriptor, days int) ([]T, error) {
	since := time.Now().AddDate(0, 0, -days)
	var results []T
	err := db.WithContext(ctx).
		Table(descriptor.Table).
		Where(descriptor.DateField+" >= ?", since).
		Order(descriptor.DateField + " DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FindByAuditUser finds rows whose audit column references the user.
// field must be created_by or updated_by.
func FindByAuditUser[T any](ctx context.Context, db *gorm.DB, descriptor shared.EntityDescriptor, field string, userID uuid.UUID) ([]T, error) {
	if field != "created_by" && field != "updated_by" {
		return nil, fmt.Errorf("unsupported audit field %q", field)
	}
	var results []T
	err := db.WithContext(ctx).
		Table(descriptor.Table).
		Where(field+" = ?", userID).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CountByField returns row counts grouped by a column's values
func CountByField(ctx context.Context, db *gorm.DB, descriptor shared.EntityDescriptor, field string) (map[string]int64, error) {
	var rows []FieldCount
	err := db.WithContext(ctx).
		Table(descriptor.Table).
		Select(fmt.Sprintf("%s AS value, COUNT(*) AS count", field)).
		Group(field).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}

// CountByPeriod returns row counts bucketed by the date field at the
// given granularity. Unknown granularities fall back to day.
func CountByPeriod(ctx context.Context, db *gorm.DB, descriptor shared.EntityDescriptor, period string) (map[string]int64, error) {
	expr := periodExpr(db.Dialector.Name(), descriptor.DateField, period)

	var rows []FieldCount
	err := db.WithContext(ctx).
		Table(descriptor.Table).
		Select(expr + " AS value, COUNT(*) AS count").
		Group(expr).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}

// periodExpr builds the dialect-specific bucketing expression
func periodExpr(dialect, field, period string) string {
	if dialect == "sqlite" {
		format := "%Y-%m-%d"
		switch period {
		case PeriodWeek:
			format = "%Y-%W"
		case PeriodMonth:
			format = "%Y-%m"
		case PeriodYear:
			format = "%Y"
		}
		return fmt.Sprintf("strftime('%s', %s)", format, field)
	}

	format := "YYYY-MM-DD"
	switch period {
	case PeriodWeek:
		format = "IYYY-IW"
	case PeriodMonth:
		format = "YYYY-MM"
	case PeriodYear:
		format = "YYYY"
	}
	return fmt.Sprintf("to_char(%s, '%s')", field, format)
}
