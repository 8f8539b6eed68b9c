package ledger

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	dbtypes "github.com/nahidhasan/messmate-backend/pkg/db/types"
)

// Amount is a share value that tolerates sloppy client payloads: JSON numbers,
// quoted numbers, null, or garbage all decode, with anything unparseable
// collapsing to zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	raw := string(data)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		raw = s
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// Clamped returns the non-negative value used for persistence.
func (a Amount) Clamped() float64 {
	if a < 0 {
		return 0
	}
	return float64(a)
}

// MealShareInput is one member's meal count as submitted by a client.
type MealShareInput struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Count    Amount    `json:"count"`
}

// ExpenseShareInput is one member's paid amount as submitted by a client.
type ExpenseShareInput struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Amount   Amount    `json:"amount"`
}

// AddMealInput captures a new meal entry.
type AddMealInput struct {
	Date          time.Time        `json:"date" validate:"required"`
	BazarPersonID uuid.UUID        `json:"bazar_person_id" validate:"required"`
	Meals         []MealShareInput `json:"meals" validate:"required,min=1,dive"`
}

// AddExpenseInput captures a new expense entry.
type AddExpenseInput struct {
	Date        time.Time           `json:"date" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Expenses    []ExpenseShareInput `json:"expenses" validate:"required,min=1,dive"`
}

// MealEntryDTO is the transport shape of a meal entry.
type MealEntryDTO struct {
	ID            uuid.UUID          `json:"id"`
	HouseCode     string             `json:"house_code"`
	Date          time.Time          `json:"date"`
	BazarPersonID uuid.UUID          `json:"bazar_person_id"`
	Meals         dbtypes.MealShares `json:"meals"`
	Month         string             `json:"month"`
	CreatedByID   uuid.UUID          `json:"created_by_id"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ExpenseEntryDTO is the transport shape of an expense entry.
type ExpenseEntryDTO struct {
	ID          uuid.UUID             `json:"id"`
	HouseCode   string                `json:"house_code"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	Expenses    dbtypes.ExpenseShares `json:"expenses"`
	TotalAmount float64               `json:"total_amount"`
	Month       string                `json:"month"`
	CreatedByID uuid.UUID             `json:"created_by_id"`
	CreatedAt   time.Time             `json:"created_at"`
}

func mealFromModel(m *models.MealEntry) *MealEntryDTO {
	if m == nil {
		return nil
	}
	return &MealEntryDTO{
		ID:            m.ID,
		HouseCode:     m.HouseCode,
		Date:          m.Date,
		BazarPersonID: m.BazarPersonID,
		Meals:         m.Meals,
		Month:         m.Month,
		CreatedByID:   m.CreatedByID,
		CreatedAt:     m.CreatedAt,
	}
}

func expenseFromModel(m *models.ExpenseEntry) *ExpenseEntryDTO {
	if m == nil {
		return nil
	}
	return &ExpenseEntryDTO{
		ID:          m.ID,
		HouseCode:   m.HouseCode,
		Date:        m.Date,
		Description: m.Description,
		Expenses:    m.Expenses,
		TotalAmount: m.TotalAmount,
		Month:       m.Month,
		CreatedByID: m.CreatedByID,
		CreatedAt:   m.CreatedAt,
	}
}
