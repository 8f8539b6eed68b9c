package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// MealShare is one member's meal count inside a meal entry.
type MealShare struct {
	MemberID uuid.UUID `json:"member_id"`
	Count    float64   `json:"count"`
}

// MealShares is a per-member count list persisted as JSONB.
type MealShares []MealShare

func (m MealShares) Value() (driver.Value, error) {
	return marshalShares(m)
}

func (m *MealShares) Scan(value any) error {
	return unmarshalShares(value, m, "MealShares")
}

// ExpenseShare is one member's paid amount inside an expense entry.
type ExpenseShare struct {
	MemberID uuid.UUID `json:"member_id"`
	Amount   float64   `json:"amount"`
}

// ExpenseShares is a per-member amount list persisted as JSONB.
type ExpenseShares []ExpenseShare

func (e ExpenseShares) Value() (driver.Value, error) {
	return marshalShares(e)
}

func (e *ExpenseShares) Scan(value any) error {
	return unmarshalShares(value, e, "ExpenseShares")
}

// Total sums the amounts; stored entry totals are always recomputed from this.
func (e ExpenseShares) Total() float64 {
	var total float64
	for _, share := range e {
		total += share.Amount
	}
	return total
}

func marshalShares(v any) (driver.Value, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func unmarshalShares(value any, dest any, name string) error {
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("%s: unsupported scan type %T", name, value)
	}

	return json.Unmarshal(raw, dest)
}
