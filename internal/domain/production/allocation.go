package production

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationTolerance is the accepted deviation when percentages are
// checked against 100
var AllocationTolerance = decimal.NewFromFloat(0.01)

// Allocation is one partner's share of a scenario's production
type Allocation struct {
	Percentage decimal.Decimal `json:"percentage"`
	VolumeMT   decimal.Decimal `json:"volume_mt"`
}

// AllocationSet maps partner ids to their allocations. It is stored as
// a JSON column.
type AllocationSet map[uuid.UUID]Allocation

// Validate checks that every share is positive and the percentages sum
// to 100 within tolerance
func (a AllocationSet) Validate() error {
	total := decimal.Zero
	for partnerID, alloc := range a {
		if !alloc.Percentage.IsPositive() {
			return shared.NewDomainError("INVALID_ALLOCATION",
				fmt.Sprintf("Allocation for partner %s must have a positive percentage", partnerID))
		}
		if alloc.VolumeMT.IsNegative() {
			return shared.NewDomainError("INVALID_ALLOCATION",
				fmt.Sprintf("Allocation for partner %s cannot have a negative volume", partnerID))
		}
		total = total.Add(alloc.Percentage)
	}
	if total.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(AllocationTolerance) {
		return shared.NewDomainError("INVALID_ALLOCATION",
			fmt.Sprintf("Allocation percentages must sum to 100, got %s", total))
	}
	return nil
}

// TotalPercentage sums the allocation percentages
func (a AllocationSet) TotalPercentage() decimal.Decimal {
	total := decimal.Zero
	for _, alloc := range a {
		total = total.Add(alloc.Percentage)
	}
	return total
}

// Clone returns an independent copy of the set
func (a AllocationSet) Clone() AllocationSet {
	if a == nil {
		return nil
	}
	out := make(AllocationSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Value implements driver.Valuer for database storage
func (a AllocationSet) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *AllocationSet) Scan(value any) error {
	if value == nil {
		*a = AllocationSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AllocationSet", value)
	}
	if len(data) == 0 {
		*a = AllocationSet{}
		return nil
	}
	return json.Unmarshal(data, a)
}
