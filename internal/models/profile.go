package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role governs access to /admin routes. Stored as a plain string column but
// compared through the typed constants so handlers never match raw literals.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants access to the admin back-office.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// SubscriptionTier is the billing plan attached to a profile.
type SubscriptionTier string

const (
	TierFree           SubscriptionTier = "free"
	TierProfessional   SubscriptionTier = "professional"
	TierEnterprise     SubscriptionTier = "enterprise"
	TierEnterprisePlus SubscriptionTier = "enterprise_plus"
)

func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierFree, TierProfessional, TierEnterprise, TierEnterprisePlus:
		return true
	}
	return false
}

// Profile is one platform account. The ID doubles as the auth identity.
type Profile struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string           `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password         string           `gorm:"not null" json:"-"`
	FullName         *string          `gorm:"size:255" json:"full_name"`
	AvatarURL        *string          `gorm:"size:500" json:"avatar_url"`
	APIKey           string           `gorm:"size:64;uniqueIndex" json:"api_key"`
	SubscriptionTier SubscriptionTier `gorm:"size:32;default:'free'" json:"subscription_tier"`
	Role             Role             `gorm:"size:20;default:'user';index" json:"role"`
	APICallsUsed     int              `gorm:"default:0" json:"api_calls_used"`
	APICallsLimit    int              `gorm:"default:1000" json:"api_calls_limit"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}
