package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/models"
)

func TestGetUsersSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminUserService(db)

	seedProfile(t, db, "alice@example.com", models.RoleUser)
	bob := seedProfile(t, db, "bob@example.com", models.RoleUser)
	name := "Alina Smith"
	db.Model(bob).Update("full_name", name)
	seedProfile(t, db, "carol@example.com", models.RoleAdmin)

	resp, err := svc.GetUsers(1, 20, "ALI")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// alice by email, bob by full name, case-insensitively.
	if resp.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", resp.Total)
	}

	all, err := svc.GetUsers(1, 20, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Total != 3 {
		t.Fatalf("expected 3 users, got %d", all.Total)
	}
}

func TestGetUsersOrderedNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminUserService(db)

	oldest := seedProfile(t, db, "oldest@example.com", models.RoleUser)
	middle := seedProfile(t, db, "middle@example.com", models.RoleUser)
	newest := seedProfile(t, db, "newest@example.com", models.RoleUser)
	now := time.Now()
	db.Model(oldest).Update("created_at", now.AddDate(0, 0, -3))
	db.Model(middle).Update("created_at", now.AddDate(0, 0, -2))
	db.Model(newest).Update("created_at", now.AddDate(0, 0, -1))

	first, err := svc.GetUsers(1, 2, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if first.Users[0].Email != "newest@example.com" || first.Users[1].Email != "middle@example.com" {
		t.Fatalf("expected newest first, got %s then %s", first.Users[0].Email, first.Users[1].Email)
	}

	last, err := svc.GetUsers(2, 2, "")
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(last.Users) != 1 || last.Users[0].Email != "oldest@example.com" {
		t.Fatalf("expected oldest on the last page, got %+v", last.Users)
	}
}

func TestGetUsersClampsPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminUserService(db)

	for i := 0; i < 3; i++ {
		seedProfile(t, db, string(rune('a'+i))+"@example.com", models.RoleUser)
	}

	resp, err := svc.GetUsers(0, 500, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Page != 1 || resp.Limit != 20 {
		t.Fatalf("expected clamped page=1 limit=20, got page=%d limit=%d", resp.Page, resp.Limit)
	}
	if resp.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", resp.TotalPages)
	}

	two, err := svc.GetUsers(1, 2, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(two.Users) != 2 || two.TotalPages != 2 {
		t.Fatalf("expected 2 users over 2 pages, got %d users %d pages", len(two.Users), two.TotalPages)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminUserService(db)
	p := seedProfile(t, db, "edit@example.com", models.RoleUser)

	role := models.RoleAdmin
	updated, err := svc.UpdateUser(p.ID, &dto.UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Fatalf("expected role admin, got %s", updated.Role)
	}
	if updated.Email != "edit@example.com" {
		t.Fatalf("email changed unexpectedly: %s", updated.Email)
	}

	badRole := models.Role("owner")
	if _, err := svc.UpdateUser(p.ID, &dto.UpdateUserRequest{Role: &badRole}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	badTier := models.SubscriptionTier("gold")
	if _, err := svc.UpdateUser(p.ID, &dto.UpdateUserRequest{SubscriptionTier: &badTier}); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}

	if _, err := svc.UpdateUser(uuid.New(), &dto.UpdateUserRequest{Role: &role}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUserSoftDeletes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminUserService(db)
	p := seedProfile(t, db, "gone@example.com", models.RoleUser)

	if err := svc.DeleteUser(p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetUserByID(p.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := svc.DeleteUser(p.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}

	// The row survives as a soft-deleted record.
	var count int64
	if err := db.Unscoped().Model(&models.Profile{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected soft-deleted row to remain, got %d", count)
	}
}

func TestGetUserStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminUserService(db)

	seedProfile(t, db, "one@example.com", models.RoleUser)
	seedProfile(t, db, "two@example.com", models.RoleAdmin)
	seedProfile(t, db, "three@example.com", models.RoleSuperAdmin)

	stats, err := svc.GetUserStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 3 {
		t.Fatalf("expected 3 total, got %d", stats.TotalUsers)
	}
	if stats.AdminUsers != 2 {
		t.Fatalf("expected 2 admins, got %d", stats.AdminUsers)
	}
	// All three were just touched, so all count as active.
	if stats.ActiveUsers != 3 {
		t.Fatalf("expected 3 active, got %d", stats.ActiveUsers)
	}
}
