package services

import (
	"errors"
	"testing"

	"github.com/optima-labs/optima-api/internal/models"
)

func TestSettingsLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminSettingsService(db)
	super := seedProfile(t, db, "root@example.com", models.RoleSuperAdmin)

	if _, err := svc.CreateSetting("maintenance_mode", "off", "Toggles the maintenance banner", super.ID); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateSetting("maintenance_mode", "on", "", super.ID); !errors.Is(err, ErrSettingExists) {
		t.Fatalf("expected ErrSettingExists, got %v", err)
	}
	if _, err := svc.CreateSetting("  ", "x", "", super.ID); err == nil {
		t.Fatal("expected error for blank key")
	}

	if _, err := svc.UpdateSetting("missing_key", "x", super.ID); !errors.Is(err, ErrSettingNotFound) {
		t.Fatalf("expected ErrSettingNotFound, got %v", err)
	}

	updated, err := svc.UpdateSetting("maintenance_mode", "on", super.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Value != "on" {
		t.Fatalf("expected value on, got %q", updated.Value)
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != super.ID {
		t.Fatalf("expected editor stamped, got %+v", updated.UpdatedBy)
	}

	if _, err := svc.CreateSetting("api_rate_limit", "60", "", super.ID); err != nil {
		t.Fatalf("create: %v", err)
	}
	settings, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(settings) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(settings))
	}
	if settings[0].SettingKey != "api_rate_limit" {
		t.Fatalf("expected key-ordered listing, got %q first", settings[0].SettingKey)
	}
}
