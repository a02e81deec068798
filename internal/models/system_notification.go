package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemNotification is a broadcast message shown on user dashboards.
type SystemNotification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"not null;size:255" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Level     string     `gorm:"size:20;default:'info'" json:"level"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (SystemNotification) TableName() string {
	return "system_notifications"
}
