package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/nahidhasan/messmate-backend/pkg/db/types"
)

// MealEntry records one day's meal counts for a house. Month is the derived
// "YYYY-MM" grouping key for all time-windowed queries.
type MealEntry struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	HouseCode     string             `gorm:"column:house_code;type:varchar(8);not null;index:idx_meal_entries_house_month,priority:1"`
	Date          time.Time          `gorm:"column:date;not null"`
	BazarPersonID uuid.UUID          `gorm:"column:bazar_person_id;type:uuid;not null"`
	Meals         dbtypes.MealShares `gorm:"column:meals;type:jsonb;not null"`
	Month         string             `gorm:"column:month;type:varchar(7);not null;index:idx_meal_entries_house_month,priority:2"`
	CreatedByID   uuid.UUID          `gorm:"column:created_by_id;type:uuid;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
