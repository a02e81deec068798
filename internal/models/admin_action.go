package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminAction is an append-only audit record of an admin-performed mutation.
// Rows are never updated or deleted by the application.
type AdminAction struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"admin_id"`
	ActionType   string         `gorm:"not null;size:100" json:"action_type"`
	TargetUserID *uuid.UUID     `gorm:"type:uuid;index" json:"target_user_id"`
	Details      datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	Admin        Profile        `gorm:"foreignKey:AdminID" json:"admin"`
	TargetUser   *Profile       `gorm:"foreignKey:TargetUserID" json:"target_user,omitempty"`
}

func (AdminAction) TableName() string {
	return "admin_actions"
}
