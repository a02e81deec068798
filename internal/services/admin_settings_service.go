package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/models"
)

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrSettingExists   = errors.New("setting already exists")
)

// AdminSettingsService is the only write path for system_settings.
type AdminSettingsService struct {
	db *gorm.DB
}

func NewAdminSettingsService(db *gorm.DB) *AdminSettingsService {
	return &AdminSettingsService{db: db}
}

func (s *AdminSettingsService) GetSettings() ([]models.SystemSetting, error) {
	var settings []models.SystemSetting
	if err := s.db.Order("setting_key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// UpdateSetting replaces the value and stamps the editor.
func (s *AdminSettingsService) UpdateSetting(key, value string, updatedBy uuid.UUID) (*models.SystemSetting, error) {
	var setting models.SystemSetting
	if err := s.db.Where("setting_key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&setting).Updates(map[string]interface{}{
		"value":      value,
		"updated_by": updatedBy,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return nil, fmt.Errorf("update setting: %w", err)
	}
	return &setting, nil
}

func (s *AdminSettingsService) CreateSetting(key, value, description string, createdBy uuid.UUID) (*models.SystemSetting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("key is required")
	}

	var existing models.SystemSetting
	if err := s.db.Where("setting_key = ?", key).First(&existing).Error; err == nil {
		return nil, ErrSettingExists
	}

	setting := models.SystemSetting{
		ID:          uuid.New(),
		SettingKey:  key,
		Value:       value,
		Description: description,
		UpdatedBy:   &createdBy,
	}
	if err := s.db.Create(&setting).Error; err != nil {
		return nil, fmt.Errorf("create setting: %w", err)
	}
	return &setting, nil
}
