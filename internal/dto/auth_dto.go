package dto

import (
	"github.com/google/uuid"

	"github.com/optima-labs/optima-api/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID               uuid.UUID               `json:"id"`
	Email            string                  `json:"email"`
	FullName         *string                 `json:"full_name"`
	Role             models.Role             `json:"role"`
	SubscriptionTier models.SubscriptionTier `json:"subscription_tier"`
}

// MeResponse mirrors what the admin UI derives from the caller's profile.
type MeResponse struct {
	Profile      *models.Profile `json:"profile"`
	IsAdmin      bool            `json:"is_admin"`
	IsSuperAdmin bool            `json:"is_super_admin"`
}
