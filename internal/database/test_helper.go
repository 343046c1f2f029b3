package database

import (
	"fmt"
	"testing"

	"leadhub/internal/config"
	"leadhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestLead(t *testing.T, db *DB, email string) *models.Lead {
	t.Helper()

	lead := &models.Lead{
		TrainerName: "Test Trainer",
		MemberName:  "Test Member",
		Email:       email,
		Phone:       "555-0100",
		Status:      models.LeadStatusNew,
		Source:      "website",
	}

	if err := db.Create(lead).Error; err != nil {
		t.Fatalf("failed to create test lead: %v", err)
	}

	return lead
}

// UniqueTestEmail returns an email address unlikely to collide across tests.
func UniqueTestEmail(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("lead-%s@example.com", uuid.New().String()[:8])
}
