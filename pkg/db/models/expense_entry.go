package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/nahidhasan/messmate-backend/pkg/db/types"
)

// ExpenseEntry records a shared purchase. TotalAmount is recomputed from the
// shares on every save; aggregation reads the shares, never this cache.
type ExpenseEntry struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	HouseCode   string                `gorm:"column:house_code;type:varchar(8);not null;index:idx_expense_entries_house_month,priority:1"`
	Date        time.Time             `gorm:"column:date;not null"`
	Description string                `gorm:"column:description;type:text;not null"`
	Expenses    dbtypes.ExpenseShares `gorm:"column:expenses;type:jsonb;not null"`
	TotalAmount float64               `gorm:"column:total_amount;not null"`
	Month       string                `gorm:"column:month;type:varchar(7);not null;index:idx_expense_entries_house_month,priority:2"`
	CreatedByID uuid.UUID             `gorm:"column:created_by_id;type:uuid;not null"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
