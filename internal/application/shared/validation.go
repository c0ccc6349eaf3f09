package shared

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"
)

// FieldRule is one declarative constraint set for a request field.
// PatternName is the human-readable description surfaced when Pattern
// does not match.
type FieldRule struct {
	Required    bool
	MinLength   int
	MaxLength   int
	Min         *decimal.Decimal
	Max         *decimal.Decimal
	Pattern     *regexp.Regexp
	PatternName string
	OneOf       []string
}

// Rules maps field names to their constraints
type Rules map[string]FieldRule

// Validate checks values against every rule and collects all failures
// instead of stopping at the first. Fields are checked in name order so
// error lists are deterministic.
func (r Rules) Validate(values map[string]any) []string {
	fields := make([]string, 0, len(r))
	for field := range r {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var errs []string
	for _, field := range fields {
		errs = append(errs, r[field].check(field, values[field])...)
	}
	return errs
}

func (f FieldRule) check(field string, value any) []string {
	var errs []string

	str, isStr := value.(string)
	empty := value == nil || (isStr && str == "")

	if empty {
		if f.Required {
			errs = append(errs, fmt.Sprintf("%s is required", field))
		}
		return errs
	}

	if isStr {
		if f.MinLength > 0 && len(str) < f.MinLength {
			errs = append(errs, fmt.Sprintf("%s must be at least %d characters", field, f.MinLength))
		}
		if f.MaxLength > 0 && len(str) > f.MaxLength {
			errs = append(errs, fmt.Sprintf("%s cannot exceed %d characters", field, f.MaxLength))
		}
		if f.Pattern != nil && !f.Pattern.MatchString(str) {
			name := f.PatternName
			if name == "" {
				name = "the required format"
			}
			errs = append(errs, fmt.Sprintf("%s must match %s", field, name))
		}
		if len(f.OneOf) > 0 && !contains(f.OneOf, str) {
			errs = append(errs, fmt.Sprintf("%s must be one of %v", field, f.OneOf))
		}
		return errs
	}

	if num, ok := toDecimal(value); ok {
		if f.Min != nil && num.LessThan(*f.Min) {
			errs = append(errs, fmt.Sprintf("%s must be at least %s", field, f.Min))
		}
		if f.Max != nil && num.GreaterThan(*f.Max) {
			errs = append(errs, fmt.Sprintf("%s cannot exceed %s", field, f.Max))
		}
	}

	return errs
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Zero, false
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// DecimalPtr is a convenience for building rule bounds
func DecimalPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}
