package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/optima-labs/optima-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.RefreshToken{},
		&models.Process{},
		&models.SupportTicket{},
		&models.TicketMessage{},
		&models.AdminAction{},
		&models.SystemSetting{},
		&models.SystemNotification{},
		&models.APIUsageLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, email string, role models.Role) *models.Profile {
	t.Helper()
	p := models.Profile{
		ID:               uuid.New(),
		Email:            email,
		Password:         "x",
		APIKey:           "optima_" + email,
		Role:             role,
		SubscriptionTier: models.TierFree,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profile %s: %v", email, err)
	}
	return &p
}
