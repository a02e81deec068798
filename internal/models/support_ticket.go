package models

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// SupportTicket is a help request owned by one profile. AssignedTo, when set,
// must reference a profile with an admin role; the support service enforces
// this, the schema does not.
type SupportTicket struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"not null;size:255" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      TicketStatus   `gorm:"size:20;default:'open';index" json:"status"`
	Priority    TicketPriority `gorm:"size:20;default:'medium'" json:"priority"`
	AssignedTo  *uuid.UUID     `gorm:"type:uuid;index" json:"assigned_to"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	User        Profile        `gorm:"foreignKey:UserID" json:"user"`
	Assignee    *Profile       `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

// TicketMessage is one entry in a ticket's conversation thread. Internal
// messages are admin-only notes; hiding them from the ticket owner is the
// presentation layer's job.
type TicketMessage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TicketID   uuid.UUID `gorm:"type:uuid;not null;index" json:"ticket_id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsInternal bool      `gorm:"default:false" json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
	Sender     Profile   `gorm:"foreignKey:SenderID" json:"sender"`
}

func (TicketMessage) TableName() string {
	return "support_ticket_messages"
}
