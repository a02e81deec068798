package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/metrics"
	"github.com/optima-labs/optima-api/internal/models"
)

// AdminActionsService reads and appends the admin audit log.
type AdminActionsService struct {
	db      *gorm.DB
	metrics *metrics.Metrics // optional
}

func NewAdminActionsService(db *gorm.DB, m *metrics.Metrics) *AdminActionsService {
	return &AdminActionsService{db: db, metrics: m}
}

// Log appends one audit row. It is a no-op when the actor is not currently
// an admin, and a failed insert is logged and swallowed: the audit trail is
// a best-effort side channel, never a reason to fail the triggering action.
func (s *AdminActionsService) Log(adminID uuid.UUID, actionType string, targetUserID *uuid.UUID, details map[string]interface{}) {
	var actor models.Profile
	if err := s.db.Select("id", "role").First(&actor, "id = ?", adminID).Error; err != nil {
		return
	}
	if !actor.Role.IsAdmin() {
		return
	}

	action := models.AdminAction{
		ID:           uuid.New(),
		AdminID:      adminID,
		ActionType:   actionType,
		TargetUserID: targetUserID,
	}
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			action.Details = datatypes.JSON(b)
		}
	}

	if err := s.db.Create(&action).Error; err != nil {
		slog.Error("admin action log failed", "action", actionType, "admin_id", adminID, "error", err)
		if s.metrics != nil {
			s.metrics.AuditFailures.Inc()
		}
		return
	}

	if s.metrics != nil {
		s.metrics.AdminActions.WithLabelValues(actionType).Inc()
	}
}

// GetAdminActions returns one page of the audit log, newest first, with
// acting admin and target user resolved.
func (s *AdminActionsService) GetAdminActions(page, limit int) (*dto.ActionListResponse, error) {
	page, limit = clampPage(page, limit)

	var total int64
	if err := s.db.Model(&models.AdminAction{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count admin actions: %w", err)
	}

	var actions []models.AdminAction
	if err := s.db.
		Preload("Admin").
		Preload("TargetUser").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&actions).Error; err != nil {
		return nil, fmt.Errorf("list admin actions: %w", err)
	}

	return &dto.ActionListResponse{
		Actions:    actions,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
