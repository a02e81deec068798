package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/models"
)

// NotificationService manages system-wide dashboard notifications.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// List returns the most recent notifications, newest first.
func (s *NotificationService) List(limit int) ([]models.SystemNotification, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var notifications []models.SystemNotification
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) Create(title, message, level string, createdBy uuid.UUID) (*models.SystemNotification, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(message) == "" {
		return nil, errors.New("title and message are required")
	}
	if level == "" {
		level = "info"
	}

	notification := models.SystemNotification{
		ID:        uuid.New(),
		Title:     title,
		Message:   message,
		Level:     level,
		CreatedBy: &createdBy,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return &notification, nil
}
