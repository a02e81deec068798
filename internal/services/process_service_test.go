package services

import (
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/models"
)

func TestProcessCRUDScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProcessService(db)
	owner := seedProfile(t, db, "owner@example.com", models.RoleUser)
	other := seedProfile(t, db, "other@example.com", models.RoleUser)

	created, err := svc.Create(owner.ID, &dto.CreateProcessRequest{
		Name:  "User Onboarding",
		Steps: datatypes.JSON(`[{"name":"Account Creation"},{"name":"Email Verification"}]`),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != models.ProcessActive {
		t.Fatalf("expected active status, got %s", created.Status)
	}

	if _, err := svc.Get(other.ID, created.ID); !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("expected ErrProcessNotFound for other user, got %v", err)
	}
	got, err := svc.Get(owner.ID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "User Onboarding" {
		t.Fatalf("unexpected name %q", got.Name)
	}

	paused := models.ProcessPaused
	updated, err := svc.Update(owner.ID, created.ID, &dto.UpdateProcessRequest{Status: &paused})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.ProcessPaused {
		t.Fatalf("expected paused, got %s", updated.Status)
	}

	bad := models.ProcessStatus("archived")
	if _, err := svc.Update(owner.ID, created.ID, &dto.UpdateProcessRequest{Status: &bad}); err == nil {
		t.Fatal("expected error for invalid status")
	}

	if err := svc.Delete(other.ID, created.ID); !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("expected ErrProcessNotFound deleting as other user, got %v", err)
	}
	if err := svc.Delete(owner.ID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(owner.ID, created.ID); !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("expected ErrProcessNotFound on second delete, got %v", err)
	}
}

func TestProcessListPerUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProcessService(db)
	owner := seedProfile(t, db, "owner@example.com", models.RoleUser)
	other := seedProfile(t, db, "other@example.com", models.RoleUser)

	for _, name := range []string{"A", "B", "C"} {
		if _, err := svc.Create(owner.ID, &dto.CreateProcessRequest{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if _, err := svc.Create(other.ID, &dto.CreateProcessRequest{Name: "Theirs"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, err := svc.List(owner.ID, 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("expected 3 processes, got %d", resp.Total)
	}
	for _, p := range resp.Processes {
		if p.UserID != owner.ID {
			t.Fatalf("foreign process leaked into listing: %+v", p)
		}
	}

	if _, err := svc.Create(owner.ID, &dto.CreateProcessRequest{Name: "  "}); err == nil {
		t.Fatal("expected error for blank name")
	}
}
