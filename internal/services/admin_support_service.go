package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/models"
)

var (
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrInvalidStatus    = errors.New("invalid ticket status")
	ErrInvalidPriority  = errors.New("invalid ticket priority")
	ErrAssigneeNotAdmin = errors.New("assignee must have an admin role")
	ErrEmptyMessage     = errors.New("message is required")
)

// AdminSupportService backs the admin support-ticket pages.
type AdminSupportService struct {
	db *gorm.DB
}

func NewAdminSupportService(db *gorm.DB) *AdminSupportService {
	return &AdminSupportService{db: db}
}

// GetTickets returns one page of tickets, newest first, with owner and
// assignee profiles resolved. status filters exactly; "" or "all" disables
// the filter.
func (s *AdminSupportService) GetTickets(page, limit int, status string) (*dto.TicketListResponse, error) {
	page, limit = clampPage(page, limit)

	query := s.db.Model(&models.SupportTicket{})
	if status != "" && status != "all" {
		if !models.TicketStatus(status).Valid() {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	var tickets []models.SupportTicket
	if err := query.
		Preload("User").
		Preload("Assignee").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	return &dto.TicketListResponse{
		Tickets:    tickets,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// CreateTicket opens a ticket on behalf of a user.
func (s *AdminSupportService) CreateTicket(userID uuid.UUID, title, description string, priority models.TicketPriority) (*models.SupportTicket, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title is required")
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	ticket := models.SupportTicket{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      models.TicketOpen,
		Priority:    priority,
	}
	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return &ticket, nil
}

// UpdateTicket applies the non-nil fields and returns the updated row.
// Assigning validates that the assignee holds an admin role; the schema
// itself does not enforce that.
func (s *AdminSupportService) UpdateTicket(id uuid.UUID, req *dto.UpdateTicketRequest) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := s.db.First(&ticket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *req.Priority
	}
	if req.AssignedTo != nil {
		var assignee models.Profile
		if err := s.db.First(&assignee, "id = ?", *req.AssignedTo).Error; err != nil {
			return nil, ErrAssigneeNotAdmin
		}
		if !assignee.Role.IsAdmin() {
			return nil, ErrAssigneeNotAdmin
		}
		updates["assigned_to"] = *req.AssignedTo
	}

	if len(updates) > 0 {
		if err := s.db.Model(&ticket).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update ticket: %w", err)
		}
	}

	if err := s.db.Preload("User").Preload("Assignee").First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTicketMessages returns the full thread oldest first with senders
// resolved. Internal notes are included; filtering them for non-admin
// viewers is the presentation layer's responsibility.
func (s *AdminSupportService) GetTicketMessages(ticketID uuid.UUID) ([]models.TicketMessage, error) {
	var messages []models.TicketMessage
	if err := s.db.
		Preload("Sender").
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list ticket messages: %w", err)
	}
	return messages, nil
}

// AddTicketMessage appends one message to a ticket's thread.
func (s *AdminSupportService) AddTicketMessage(ticketID, senderID uuid.UUID, message string, isInternal bool) (*models.TicketMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	var ticket models.SupportTicket
	if err := s.db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	msg := models.TicketMessage{
		ID:         uuid.New(),
		TicketID:   ticketID,
		SenderID:   senderID,
		Message:    message,
		IsInternal: isInternal,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("add ticket message: %w", err)
	}
	return &msg, nil
}
