package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-5); got != DefaultLimit {
		t.Fatalf("expected default limit for negatives, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(7); got != 7 {
		t.Fatalf("expected passthrough, got %d", got)
	}
	if got := LimitWithBuffer(7); got != 8 {
		t.Fatalf("expected limit+1, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	in := Cursor{CreatedAt: time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC), ID: uuid.New()}

	out, err := Parse(Encode(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out == nil {
		t.Fatal("expected cursor, got nil")
	}
	if !out.CreatedAt.Equal(in.CreatedAt) || out.ID != in.ID {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestParseEmptyTokenMeansTop(t *testing.T) {
	cursor, err := Parse("  ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cursor != nil {
		t.Fatalf("expected nil cursor, got %+v", cursor)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not-base64!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := Parse("aGVsbG8="); err == nil {
		t.Fatal("expected error for non-cursor payload")
	}
}
