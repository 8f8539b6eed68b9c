package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/nahidhasan/messmate-backend/pkg/db/models"
)

// Balance statuses derived from the exact sign of a member's balance.
const (
	StatusGive    = "Give"
	StatusPay     = "Pay"
	StatusSettled = "Settled"
)

// MemberStat is one active member's slice of the monthly ledger.
type MemberStat struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Meals    float64   `json:"meals"`
	Expenses float64   `json:"expenses"`
	MealBill float64   `json:"meal_bill"`
	Balance  float64   `json:"balance"`
	Status   string    `json:"status"`
}

// MonthlyStats is the derived, read-side view of a house month.
type MonthlyStats struct {
	Month         string       `json:"month"`
	TotalMeals    float64      `json:"total_meals"`
	TotalExpenses float64      `json:"total_expenses"`
	PerMealCost   float64      `json:"per_meal_cost"`
	TodayExpenses float64      `json:"today_expenses"`
	WeekExpenses  float64      `json:"week_expenses"`
	Members       []MemberStat `json:"members"`
}

// ComputeMonthlyStats derives the month's totals and per-member balances.
// Only the provided members are enumerated; shares belonging to removed users
// still count toward the house totals. The clock drives the today/week
// sub-totals, with weeks starting on Sunday.
func ComputeMonthlyStats(month string, members []models.User, meals []models.MealEntry, expenses []models.ExpenseEntry, now time.Time) MonthlyStats {
	stats := MonthlyStats{Month: month, Members: make([]MemberStat, 0, len(members))}

	mealsByMember := make(map[uuid.UUID]float64)
	for _, entry := range meals {
		for _, share := range entry.Meals {
			stats.TotalMeals += share.Count
			mealsByMember[share.MemberID] += share.Count
		}
	}

	expensesByMember := make(map[uuid.UUID]float64)
	todayStart := startOfDay(now)
	weekStart := startOfWeek(now)
	for _, entry := range expenses {
		total := entry.Expenses.Total()
		stats.TotalExpenses += total
		for _, share := range entry.Expenses {
			expensesByMember[share.MemberID] += share.Amount
		}
		if !entry.Date.Before(todayStart) && entry.Date.Before(todayStart.AddDate(0, 0, 1)) {
			stats.TodayExpenses += total
		}
		if !entry.Date.Before(weekStart) && entry.Date.Before(weekStart.AddDate(0, 0, 7)) {
			stats.WeekExpenses += total
		}
	}

	if stats.TotalMeals > 0 {
		stats.PerMealCost = stats.TotalExpenses / stats.TotalMeals
	}

	for i := range members {
		m := &members[i]
		memberMeals := mealsByMember[m.ID]
		memberExpenses := expensesByMember[m.ID]
		mealBill := memberMeals * stats.PerMealCost
		balance := memberExpenses - mealBill

		status := StatusSettled
		switch {
		case balance > 0:
			status = StatusGive
		case balance < 0:
			status = StatusPay
		}

		stats.Members = append(stats.Members, MemberStat{
			UserID:   m.ID,
			Name:     m.DisplayName(),
			Role:     m.Role.String(),
			Meals:    memberMeals,
			Expenses: memberExpenses,
			MealBill: mealBill,
			Balance:  balance,
			Status:   status,
		})
	}

	return stats
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Sunday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
