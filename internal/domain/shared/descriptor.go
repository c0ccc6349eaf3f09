package shared

import "strings"

// EntityDescriptor describes the queryable surface of an entity table.
// Shared query helpers (search, date-range filters, grouped counts) are
// free functions parameterized by a descriptor instead of per-entity
// method sets.
type EntityDescriptor struct {
	// Table is the database table name
	Table string
	// SearchFields are the columns searched by free-text queries
	SearchFields []string
	// SortFields are the columns listings may be ordered by, in addition
	// to the base columns every table carries
	SortFields []string
	// DateField is the column used for date-range and recency filters
	DateField string
}

// baseSortFields are sortable on every entity
var baseSortFields = []string{"id", "created_at", "updated_at"}

// Searchable reports whether the descriptor names any search fields
func (d EntityDescriptor) Searchable() bool {
	return len(d.SearchFields) > 0
}

// SortColumn resolves a requested sort column against the sortable set.
// An empty request stays empty; anything not in the set falls back to
// the date field so caller input never reaches the query verbatim.
func (d EntityDescriptor) SortColumn(requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return ""
	}
	for _, field := range baseSortFields {
		if field == requested {
			return requested
		}
	}
	for _, field := range d.SortFields {
		if field == requested {
			return requested
		}
	}
	if d.DateField != "" {
		return d.DateField
	}
	return "created_at"
}
