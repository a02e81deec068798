package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProcessStatus is the lifecycle state of a tracked business process.
type ProcessStatus string

const (
	ProcessActive     ProcessStatus = "active"
	ProcessPaused     ProcessStatus = "paused"
	ProcessOptimizing ProcessStatus = "optimizing"
	ProcessCompleted  ProcessStatus = "completed"
)

func (s ProcessStatus) Valid() bool {
	switch s {
	case ProcessActive, ProcessPaused, ProcessOptimizing, ProcessCompleted:
		return true
	}
	return false
}

// Process is a user-owned business process with a mocked optimization score.
// Steps and Insights are opaque JSON payloads owned by the playground UI.
type Process struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name              string         `gorm:"not null;size:255" json:"name"`
	Description       *string        `gorm:"size:1000" json:"description,omitempty"`
	Status            ProcessStatus  `gorm:"size:20;default:'active'" json:"status"`
	OptimizationScore int            `gorm:"default:0" json:"optimization_score"`
	Steps             datatypes.JSON `gorm:"type:jsonb" json:"steps,omitempty"`
	Insights          datatypes.JSON `gorm:"type:jsonb" json:"insights,omitempty"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	User              Profile        `gorm:"foreignKey:UserID" json:"-"`
}

func (Process) TableName() string {
	return "processes"
}
