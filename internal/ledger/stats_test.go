package ledger

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
	dbtypes "github.com/nahidhasan/messmate-backend/pkg/db/types"
	"github.com/nahidhasan/messmate-backend/pkg/enums"
)

const tolerance = 1e-9

func member(name string, role enums.HouseRole) models.User {
	return models.User{ID: uuid.New(), FullName: name, Role: role, HouseCode: "AB12CD34", IsActive: true}
}

func mealEntry(date time.Time, shares dbtypes.MealShares) models.MealEntry {
	return models.MealEntry{
		ID:        uuid.New(),
		HouseCode: "AB12CD34",
		Date:      date,
		Meals:     shares,
		Month:     MonthKeyOf(date),
	}
}

func expenseEntry(date time.Time, shares dbtypes.ExpenseShares) models.ExpenseEntry {
	return models.ExpenseEntry{
		ID:          uuid.New(),
		HouseCode:   "AB12CD34",
		Date:        date,
		Description: "bazar",
		Expenses:    shares,
		TotalAmount: shares.Total(),
		Month:       MonthKeyOf(date),
	}
}

// Three members, uneven meals and payments over a month.
func TestComputeMonthlyStatsTypicalMonth(t *testing.T) {
	alice := member("Alice", enums.HouseRoleManager)
	bob := member("Bob", enums.HouseRoleMember)
	carol := member("Carol", enums.HouseRoleMember)
	members := []models.User{alice, bob, carol}

	day := func(d int) time.Time { return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC) }

	meals := []models.MealEntry{
		mealEntry(day(1), dbtypes.MealShares{
			{MemberID: alice.ID, Count: 2},
			{MemberID: bob.ID, Count: 3},
			{MemberID: carol.ID, Count: 1},
		}),
		mealEntry(day(2), dbtypes.MealShares{
			{MemberID: alice.ID, Count: 1.5},
			{MemberID: bob.ID, Count: 2},
			{MemberID: carol.ID, Count: 0.5},
		}),
	}
	expenses := []models.ExpenseEntry{
		expenseEntry(day(1), dbtypes.ExpenseShares{{MemberID: alice.ID, Amount: 600}}),
		expenseEntry(day(3), dbtypes.ExpenseShares{{MemberID: bob.ID, Amount: 400}}),
	}

	stats := ComputeMonthlyStats("2025-03", members, meals, expenses, day(15))

	if math.Abs(stats.TotalMeals-10) > tolerance {
		t.Fatalf("expected 10 total meals, got %v", stats.TotalMeals)
	}
	if math.Abs(stats.TotalExpenses-1000) > tolerance {
		t.Fatalf("expected 1000 total expenses, got %v", stats.TotalExpenses)
	}
	if math.Abs(stats.PerMealCost-100) > tolerance {
		t.Fatalf("expected per-meal cost 100, got %v", stats.PerMealCost)
	}

	byID := map[uuid.UUID]MemberStat{}
	for _, m := range stats.Members {
		byID[m.UserID] = m
	}

	// Alice: 3.5 meals = 350 bill, paid 600 → +250 Give.
	if got := byID[alice.ID]; math.Abs(got.Balance-250) > tolerance || got.Status != StatusGive {
		t.Fatalf("alice: expected +250 Give, got %v %s", got.Balance, got.Status)
	}
	// Bob: 5 meals = 500 bill, paid 400 → -100 Pay.
	if got := byID[bob.ID]; math.Abs(got.Balance+100) > tolerance || got.Status != StatusPay {
		t.Fatalf("bob: expected -100 Pay, got %v %s", got.Balance, got.Status)
	}
	// Carol: 1.5 meals = 150 bill, paid 0 → -150 Pay.
	if got := byID[carol.ID]; math.Abs(got.Balance+150) > tolerance || got.Status != StatusPay {
		t.Fatalf("carol: expected -150 Pay, got %v %s", got.Balance, got.Status)
	}
}

// When every share belongs to a current member, balances sum to zero.
func TestComputeMonthlyStatsBalancesSumToZero(t *testing.T) {
	a := member("A", enums.HouseRoleManager)
	b := member("B", enums.HouseRoleMember)
	c := member("C", enums.HouseRoleMember)
	members := []models.User{a, b, c}

	day := func(d int) time.Time { return time.Date(2025, time.June, d, 9, 0, 0, 0, time.UTC) }

	meals := []models.MealEntry{
		mealEntry(day(1), dbtypes.MealShares{
			{MemberID: a.ID, Count: 1.25},
			{MemberID: b.ID, Count: 2.75},
			{MemberID: c.ID, Count: 3},
		}),
		mealEntry(day(4), dbtypes.MealShares{
			{MemberID: a.ID, Count: 2},
			{MemberID: c.ID, Count: 0.5},
		}),
	}
	expenses := []models.ExpenseEntry{
		expenseEntry(day(2), dbtypes.ExpenseShares{
			{MemberID: a.ID, Amount: 123.45},
			{MemberID: b.ID, Amount: 67.89},
		}),
		expenseEntry(day(5), dbtypes.ExpenseShares{{MemberID: c.ID, Amount: 300.10}}),
	}

	stats := ComputeMonthlyStats("2025-06", members, meals, expenses, day(10))

	var sum float64
	for _, m := range stats.Members {
		sum += m.Balance
	}
	if math.Abs(sum) > 1e-6 {
		t.Fatalf("expected balances to sum to zero, got %v", sum)
	}
}

// Month with expenses but no meals: per-meal cost is zero and balances reduce
// to raw expenses.
func TestComputeMonthlyStatsZeroMeals(t *testing.T) {
	a := member("A", enums.HouseRoleManager)
	b := member("B", enums.HouseRoleMember)
	members := []models.User{a, b}

	day := time.Date(2025, time.April, 10, 10, 0, 0, 0, time.UTC)
	expenses := []models.ExpenseEntry{
		expenseEntry(day, dbtypes.ExpenseShares{{MemberID: a.ID, Amount: 500}}),
	}

	stats := ComputeMonthlyStats("2025-04", members, nil, expenses, day)

	if stats.PerMealCost != 0 {
		t.Fatalf("expected zero per-meal cost, got %v", stats.PerMealCost)
	}

	byID := map[uuid.UUID]MemberStat{}
	for _, m := range stats.Members {
		byID[m.UserID] = m
	}
	if got := byID[a.ID]; math.Abs(got.Balance-500) > tolerance || got.Status != StatusGive {
		t.Fatalf("a: expected +500 Give, got %v %s", got.Balance, got.Status)
	}
	if got := byID[b.ID]; got.Balance != 0 || got.Status != StatusSettled {
		t.Fatalf("b: expected settled zero, got %v %s", got.Balance, got.Status)
	}
}

// Removed members keep contributing their shares to house totals without
// appearing in the member list.
func TestComputeMonthlyStatsExcludesRemovedMembers(t *testing.T) {
	current := member("Current", enums.HouseRoleManager)
	removed := uuid.New()

	day := time.Date(2025, time.May, 3, 8, 0, 0, 0, time.UTC)
	meals := []models.MealEntry{
		mealEntry(day, dbtypes.MealShares{
			{MemberID: current.ID, Count: 2},
			{MemberID: removed, Count: 2},
		}),
	}
	expenses := []models.ExpenseEntry{
		expenseEntry(day, dbtypes.ExpenseShares{{MemberID: removed, Amount: 400}}),
	}

	stats := ComputeMonthlyStats("2025-05", []models.User{current}, meals, expenses, day)

	if math.Abs(stats.TotalMeals-4) > tolerance {
		t.Fatalf("expected removed member's meals in totals, got %v", stats.TotalMeals)
	}
	if math.Abs(stats.TotalExpenses-400) > tolerance {
		t.Fatalf("expected removed member's expenses in totals, got %v", stats.TotalExpenses)
	}
	if len(stats.Members) != 1 || stats.Members[0].UserID != current.ID {
		t.Fatalf("expected only current members enumerated, got %+v", stats.Members)
	}
}

func TestComputeMonthlyStatsTodayAndWeekWindows(t *testing.T) {
	a := member("A", enums.HouseRoleManager)
	members := []models.User{a}

	// 2025-03-12 is a Wednesday; the Sunday-start week runs 03-09 .. 03-15.
	now := time.Date(2025, time.March, 12, 18, 30, 0, 0, time.UTC)

	entries := []models.ExpenseEntry{
		expenseEntry(time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC),
			dbtypes.ExpenseShares{{MemberID: a.ID, Amount: 50}}), // today
		expenseEntry(time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
			dbtypes.ExpenseShares{{MemberID: a.ID, Amount: 70}}), // week start boundary
		expenseEntry(time.Date(2025, time.March, 8, 23, 59, 0, 0, time.UTC),
			dbtypes.ExpenseShares{{MemberID: a.ID, Amount: 90}}), // previous week
		expenseEntry(time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC),
			dbtypes.ExpenseShares{{MemberID: a.ID, Amount: 110}}), // later in month
	}

	stats := ComputeMonthlyStats("2025-03", members, nil, entries, now)

	if math.Abs(stats.TodayExpenses-50) > tolerance {
		t.Fatalf("expected today=50, got %v", stats.TodayExpenses)
	}
	if math.Abs(stats.WeekExpenses-120) > tolerance {
		t.Fatalf("expected week=120, got %v", stats.WeekExpenses)
	}
	if math.Abs(stats.TotalExpenses-320) > tolerance {
		t.Fatalf("expected total=320, got %v", stats.TotalExpenses)
	}
}

func TestAmountUnmarshalVariants(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `3.5`, 3.5},
		{"quoted", `"2.25"`, 2.25},
		{"garbage", `"abc"`, 0},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"negative passes through", `-4`, -4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
				t.Fatalf("unmarshal %q: %v", tc.in, err)
			}
			if float64(a) != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, float64(a))
			}
		})
	}

	var neg Amount = -4
	if neg.Clamped() != 0 {
		t.Fatalf("expected negative amount clamped to zero, got %v", neg.Clamped())
	}
}
