package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/models"
)

func TestGetTicketsStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminSupportService(db)
	owner := seedProfile(t, db, "owner@example.com", models.RoleUser)

	if _, err := svc.CreateTicket(owner.ID, "First", "desc", models.PriorityLow); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.CreateTicket(owner.ID, "Second", "desc", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if second.Priority != models.PriorityMedium {
		t.Fatalf("expected default priority medium, got %s", second.Priority)
	}
	closed := models.TicketClosed
	if _, err := svc.UpdateTicket(second.ID, &dto.UpdateTicketRequest{Status: &closed}); err != nil {
		t.Fatalf("close: %v", err)
	}

	open, err := svc.GetTickets(1, 20, "open")
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if open.Total != 1 {
		t.Fatalf("expected 1 open ticket, got %d", open.Total)
	}

	all, err := svc.GetTickets(1, 20, "all")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("expected 2 tickets, got %d", all.Total)
	}
	if all.Tickets[0].User.Email != "owner@example.com" {
		t.Fatalf("expected owner preloaded, got %+v", all.Tickets[0].User)
	}

	if _, err := svc.GetTickets(1, 20, "escalated"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestGetTicketsOrderedNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminSupportService(db)
	owner := seedProfile(t, db, "owner@example.com", models.RoleUser)

	now := time.Now()
	titles := []string{"Oldest", "Middle", "Newest"}
	for i, title := range titles {
		ticket, err := svc.CreateTicket(owner.ID, title, "desc", models.PriorityLow)
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		db.Model(ticket).Update("created_at", now.AddDate(0, 0, i-len(titles)))
	}

	resp, err := svc.GetTickets(1, 20, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(resp.Tickets))
	}
	if resp.Tickets[0].Title != "Newest" || resp.Tickets[2].Title != "Oldest" {
		t.Fatalf("expected newest first, got %q, %q, %q",
			resp.Tickets[0].Title, resp.Tickets[1].Title, resp.Tickets[2].Title)
	}
}

func TestUpdateTicketAssigneeMustBeAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminSupportService(db)
	owner := seedProfile(t, db, "owner@example.com", models.RoleUser)
	regular := seedProfile(t, db, "user@example.com", models.RoleUser)
	admin := seedProfile(t, db, "admin@example.com", models.RoleAdmin)

	ticket, err := svc.CreateTicket(owner.ID, "Help", "desc", models.PriorityHigh)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateTicket(ticket.ID, &dto.UpdateTicketRequest{AssignedTo: &regular.ID}); !errors.Is(err, ErrAssigneeNotAdmin) {
		t.Fatalf("expected ErrAssigneeNotAdmin, got %v", err)
	}
	ghost := uuid.New()
	if _, err := svc.UpdateTicket(ticket.ID, &dto.UpdateTicketRequest{AssignedTo: &ghost}); !errors.Is(err, ErrAssigneeNotAdmin) {
		t.Fatalf("expected ErrAssigneeNotAdmin for unknown assignee, got %v", err)
	}

	updated, err := svc.UpdateTicket(ticket.ID, &dto.UpdateTicketRequest{AssignedTo: &admin.ID})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != admin.ID {
		t.Fatalf("expected assignment to admin, got %+v", updated.AssignedTo)
	}
	if updated.Assignee == nil || updated.Assignee.Email != "admin@example.com" {
		t.Fatalf("expected assignee preloaded, got %+v", updated.Assignee)
	}
}

func TestUpdateTicketValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminSupportService(db)
	owner := seedProfile(t, db, "owner@example.com", models.RoleUser)

	ticket, err := svc.CreateTicket(owner.ID, "Help", "desc", models.PriorityLow)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := models.TicketStatus("on_hold")
	if _, err := svc.UpdateTicket(ticket.ID, &dto.UpdateTicketRequest{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	badPrio := models.TicketPriority("critical")
	if _, err := svc.UpdateTicket(ticket.ID, &dto.UpdateTicketRequest{Priority: &badPrio}); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if _, err := svc.UpdateTicket(uuid.New(), &dto.UpdateTicketRequest{}); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketMessageThread(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminSupportService(db)
	owner := seedProfile(t, db, "owner@example.com", models.RoleUser)
	admin := seedProfile(t, db, "admin@example.com", models.RoleAdmin)

	ticket, err := svc.CreateTicket(owner.ID, "Help", "desc", models.PriorityLow)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddTicketMessage(ticket.ID, admin.ID, "   ", false); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := svc.AddTicketMessage(uuid.New(), admin.ID, "hello", false); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}

	if _, err := svc.AddTicketMessage(ticket.ID, owner.ID, "it is broken", false); err != nil {
		t.Fatalf("add message: %v", err)
	}
	if _, err := svc.AddTicketMessage(ticket.ID, admin.ID, "internal note", true); err != nil {
		t.Fatalf("add message: %v", err)
	}

	messages, err := svc.GetTicketMessages(ticket.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Message != "it is broken" {
		t.Fatalf("expected oldest first, got %q", messages[0].Message)
	}
	if !messages[1].IsInternal {
		t.Fatal("expected internal flag preserved")
	}
	if messages[0].Sender.Email != "owner@example.com" {
		t.Fatalf("expected sender preloaded, got %+v", messages[0].Sender)
	}
}
