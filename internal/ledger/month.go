package ledger

import (
	"fmt"
	"time"

	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
)

const (
	minYear = 2020
	maxYear = 2030
)

// MonthKey validates a year/month pair and renders the zero-padded "YYYY-MM"
// grouping key. Out-of-range input fails before any query runs.
func MonthKey(year, month int) (string, error) {
	if year < minYear || year > maxYear {
		return "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("year must be between %d and %d", minYear, maxYear))
	}
	if month < 1 || month > 12 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}
	return fmt.Sprintf("%04d-%02d", year, month), nil
}

// MonthKeyOf derives the grouping key from a date.
func MonthKeyOf(t time.Time) string {
	return t.Format("2006-01")
}
