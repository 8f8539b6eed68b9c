package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nahidhasan/messmate-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestCoreSchemaMigrationContainsTables(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_core_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no core schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE users",
		"CREATE UNIQUE INDEX idx_users_email ON users (email)",
		"CREATE TABLE houses",
		"CREATE UNIQUE INDEX idx_houses_code ON houses (code)",
		"CREATE TABLE meal_entries",
		"CREATE INDEX idx_meal_entries_house_month ON meal_entries (house_code, month)",
		"CREATE TABLE expense_entries",
		"CREATE TABLE notifications",
		"CREATE INDEX idx_notifications_to_read ON notifications (to_user_id, read)",
		"DROP TABLE users",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
