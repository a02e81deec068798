package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemSetting is a key/value configuration entry edited from the admin
// settings page. UpdatedBy records the last editor.
type SystemSetting struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SettingKey  string     `gorm:"not null;size:100;uniqueIndex" json:"setting_key"`
	Value       string     `gorm:"type:text;not null" json:"setting_value"`
	Description string     `gorm:"size:500" json:"description"`
	UpdatedBy   *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
