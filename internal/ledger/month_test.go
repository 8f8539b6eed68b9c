package ledger

import (
	"testing"
	"time"

	pkgerrors "github.com/nahidhasan/messmate-backend/pkg/errors"
)

func TestMonthKeyZeroPads(t *testing.T) {
	key, err := MonthKey(2025, 3)
	if err != nil {
		t.Fatalf("month key: %v", err)
	}
	if key != "2025-03" {
		t.Fatalf("expected 2025-03, got %q", key)
	}
}

func TestMonthKeyRange(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month int
	}{
		{"year too low", 2019, 5},
		{"year too high", 2031, 5},
		{"month zero", 2025, 0},
		{"month thirteen", 2025, 13},
		{"month negative", 2025, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MonthKey(tc.year, tc.month)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestMonthKeyBoundsInclusive(t *testing.T) {
	for _, pair := range [][2]int{{2020, 1}, {2030, 12}} {
		if _, err := MonthKey(pair[0], pair[1]); err != nil {
			t.Fatalf("expected %d-%d to be accepted, got %v", pair[0], pair[1], err)
		}
	}
}

func TestMonthKeyOf(t *testing.T) {
	d := time.Date(2025, time.February, 7, 13, 4, 0, 0, time.UTC)
	if got := MonthKeyOf(d); got != "2025-02" {
		t.Fatalf("expected 2025-02, got %q", got)
	}
}
