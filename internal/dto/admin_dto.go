package dto

import (
	"github.com/google/uuid"

	"github.com/optima-labs/optima-api/internal/models"
)

// UpdateUserRequest carries the fields an admin may change on a profile.
// Nil pointers are left untouched.
type UpdateUserRequest struct {
	FullName         *string                  `json:"full_name"`
	AvatarURL        *string                  `json:"avatar_url"`
	Role             *models.Role             `json:"role"`
	SubscriptionTier *models.SubscriptionTier `json:"subscription_tier"`
	APICallsLimit    *int                     `json:"api_calls_limit"`
}

type UserListResponse struct {
	Users      []models.Profile `json:"users"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type UserStatsResponse struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
	AdminUsers  int64 `json:"admin_users"`
}

type TicketListResponse struct {
	Tickets    []models.SupportTicket `json:"tickets"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    models.TicketPriority `json:"priority"`
}

type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *models.TicketStatus   `json:"status"`
	Priority    *models.TicketPriority `json:"priority"`
	AssignedTo  *uuid.UUID             `json:"assigned_to"`
}

type AddTicketMessageRequest struct {
	Message    string `json:"message"`
	IsInternal bool   `json:"is_internal"`
}

type UpdateSettingRequest struct {
	Value string `json:"value"`
}

type CreateSettingRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type ActionListResponse struct {
	Actions    []models.AdminAction `json:"actions"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

type CreateNotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Level   string `json:"level"`
}
