package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	dbtypes "github.com/nahidhasan/messmate-backend/pkg/db/types"
	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
)

type entryRepository interface {
	CreateMeal(ctx context.Context, entry *models.MealEntry) error
	FindMealByID(ctx context.Context, id uuid.UUID) (*models.MealEntry, error)
	ListMealsByMonth(ctx context.Context, houseCode, month string) ([]models.MealEntry, error)
	DeleteMeal(ctx context.Context, id uuid.UUID) error
	CreateExpense(ctx context.Context, entry *models.ExpenseEntry) error
	FindExpenseByID(ctx context.Context, id uuid.UUID) (*models.ExpenseEntry, error)
	ListExpensesByMonth(ctx context.Context, houseCode, month string) ([]models.ExpenseEntry, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

type memberResolver interface {
	FindActiveHouseMember(ctx context.Context, id uuid.UUID, houseCode string) (*models.User, error)
	ListActiveByHouse(ctx context.Context, houseCode string) ([]models.User, error)
}

// Service exposes the meal/expense ledger and its monthly stats view.
type Service interface {
	AddMeal(ctx context.Context, houseCode string, createdBy uuid.UUID, input AddMealInput) (*MealEntryDTO, error)
	ListMeals(ctx context.Context, houseCode string, year, month int) ([]MealEntryDTO, error)
	DeleteMeal(ctx context.Context, houseCode string, entryID uuid.UUID) error
	AddExpense(ctx context.Context, houseCode string, createdBy uuid.UUID, input AddExpenseInput) (*ExpenseEntryDTO, error)
	ListExpenses(ctx context.Context, houseCode string, year, month int) ([]ExpenseEntryDTO, error)
	DeleteExpense(ctx context.Context, houseCode string, entryID uuid.UUID) error
	MonthlyStats(ctx context.Context, houseCode string, year, month int) (*MonthlyStats, error)
}

type service struct {
	repo    entryRepository
	members memberResolver
	now     func() time.Time
}

// NewService wires the ledger service. The clock is injectable for the
// today/week stats windows.
func NewService(repo entryRepository, members memberResolver, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if members == nil {
		return nil, fmt.Errorf("member resolver required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, members: members, now: now}, nil
}

// AddMeal records one day's meal counts. The bazar person must be an active
// member of the caller's house; counts are clamped non-negative.
func (s *service) AddMeal(ctx context.Context, houseCode string, createdBy uuid.UUID, input AddMealInput) (*MealEntryDTO, error) {
	if err := s.requireActiveMember(ctx, input.BazarPersonID, houseCode, "bazar person"); err != nil {
		return nil, err
	}
	if len(input.Meals) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meals list is required")
	}

	shares := make(dbtypes.MealShares, 0, len(input.Meals))
	for _, in := range input.Meals {
		if in.MemberID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "meal share member id is required")
		}
		shares = append(shares, dbtypes.MealShare{MemberID: in.MemberID, Count: in.Count.Clamped()})
	}

	entry := &models.MealEntry{
		ID:            uuid.New(),
		HouseCode:     houseCode,
		Date:          input.Date,
		BazarPersonID: input.BazarPersonID,
		Meals:         shares,
		Month:         MonthKeyOf(input.Date),
		CreatedByID:   createdBy,
	}
	if err := s.repo.CreateMeal(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create meal entry")
	}
	return mealFromModel(entry), nil
}

// ListMeals returns the house's meal entries for a month, newest first.
func (s *service) ListMeals(ctx context.Context, houseCode string, year, month int) ([]MealEntryDTO, error) {
	key, err := MonthKey(year, month)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListMealsByMonth(ctx, houseCode, key)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list meal entries")
	}
	out := make([]MealEntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, *mealFromModel(&entries[i]))
	}
	return out, nil
}

// DeleteMeal removes an entry: existence is checked before ownership, so a
// cross-house caller learns the row exists but cannot touch it.
func (s *service) DeleteMeal(ctx context.Context, houseCode string, entryID uuid.UUID) error {
	entry, err := s.repo.FindMealByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "meal entry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup meal entry")
	}
	if entry.HouseCode != houseCode {
		return pkgerrors.New(pkgerrors.CodeForbidden, "entry belongs to a different house")
	}
	if err := s.repo.DeleteMeal(ctx, entryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete meal entry")
	}
	return nil
}

// AddExpense records a shared purchase. The stored total is always recomputed
// from the shares, never trusted from input.
func (s *service) AddExpense(ctx context.Context, houseCode string, createdBy uuid.UUID, input AddExpenseInput) (*ExpenseEntryDTO, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if len(input.Expenses) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expenses list is required")
	}

	shares := make(dbtypes.ExpenseShares, 0, len(input.Expenses))
	for _, in := range input.Expenses {
		if in.MemberID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense share member id is required")
		}
		shares = append(shares, dbtypes.ExpenseShare{MemberID: in.MemberID, Amount: in.Amount.Clamped()})
	}

	entry := &models.ExpenseEntry{
		ID:          uuid.New(),
		HouseCode:   houseCode,
		Date:        input.Date,
		Description: strings.TrimSpace(input.Description),
		Expenses:    shares,
		TotalAmount: shares.Total(),
		Month:       MonthKeyOf(input.Date),
		CreatedByID: createdBy,
	}
	if err := s.repo.CreateExpense(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create expense entry")
	}
	return expenseFromModel(entry), nil
}

// ListExpenses returns the house's expense entries for a month, newest first.
func (s *service) ListExpenses(ctx context.Context, houseCode string, year, month int) ([]ExpenseEntryDTO, error) {
	key, err := MonthKey(year, month)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListExpensesByMonth(ctx, houseCode, key)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expense entries")
	}
	out := make([]ExpenseEntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, *expenseFromModel(&entries[i]))
	}
	return out, nil
}

// DeleteExpense mirrors DeleteMeal's existence-then-ownership ordering.
func (s *service) DeleteExpense(ctx context.Context, houseCode string, entryID uuid.UUID) error {
	entry, err := s.repo.FindExpenseByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "expense entry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup expense entry")
	}
	if entry.HouseCode != houseCode {
		return pkgerrors.New(pkgerrors.CodeForbidden, "entry belongs to a different house")
	}
	if err := s.repo.DeleteExpense(ctx, entryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expense entry")
	}
	return nil
}

// MonthlyStats derives the month's balance sheet. Read-only and idempotent;
// repeated calls never change state.
func (s *service) MonthlyStats(ctx context.Context, houseCode string, year, month int) (*MonthlyStats, error) {
	key, err := MonthKey(year, month)
	if err != nil {
		return nil, err
	}

	members, err := s.members.ListActiveByHouse(ctx, houseCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list house members")
	}
	meals, err := s.repo.ListMealsByMonth(ctx, houseCode, key)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list meal entries")
	}
	expenses, err := s.repo.ListExpensesByMonth(ctx, houseCode, key)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expense entries")
	}

	stats := ComputeMonthlyStats(key, members, meals, expenses, s.now())
	return &stats, nil
}

func (s *service) requireActiveMember(ctx context.Context, id uuid.UUID, houseCode, label string) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, label+" is required")
	}
	if _, err := s.members.FindActiveHouseMember(ctx, id, houseCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, label+" must be an active member of your house")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup "+label)
	}
	return nil
}
