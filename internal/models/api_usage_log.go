package models

import (
	"time"

	"github.com/google/uuid"
)

// APIUsageLog is one row per observed API call, read back only as aggregates
// by the analytics service.
type APIUsageLog struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Endpoint       string     `gorm:"not null;size:255;index" json:"endpoint"`
	Method         string     `gorm:"size:10" json:"method"`
	StatusCode     int        `gorm:"index" json:"status_code"`
	ResponseTimeMs *int       `json:"response_time_ms"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
}

func (APIUsageLog) TableName() string {
	return "api_usage_logs"
}
