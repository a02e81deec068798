package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/optima-labs/optima-api/internal/config"
	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/models"
	"github.com/optima-labs/optima-api/internal/services"
)

func setupAuthApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:         "handler-secret",
		JWTAccessExpiry:   15 * time.Minute,
		JWTRefreshExpiry:  24 * time.Hour,
		SessionCookieName: "optima_session",
	}

	h := NewAuthHandler(services.NewAuthService(db, cfg), cfg)
	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	return app, cfg
}

func sessionCookieFrom(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegisterSetsSessionCookie(t *testing.T) {
	app, cfg := setupAuthApp(t)

	body := `{"email":"new@example.com","password":"password123","full_name":"New User"}`
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var auth dto.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if auth.AccessToken == "" || auth.User.Email != "new@example.com" {
		t.Fatalf("unexpected auth response: %+v", auth)
	}

	cookie := sessionCookieFrom(resp, cfg.SessionCookieName)
	if cookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if cookie.Value != auth.AccessToken {
		t.Fatal("session cookie should carry the access token")
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, cfg := setupAuthApp(t)

	reg := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{"email":"u@example.com","password":"password123"}`))
	reg.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	bad := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"u@example.com","password":"nope"}`))
	bad.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(bad)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if cookie := sessionCookieFrom(resp, cfg.SessionCookieName); cookie != nil {
		t.Fatal("failed login must not set a session cookie")
	}

	good := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"u@example.com","password":"password123"}`))
	good.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(good)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cookie := sessionCookieFrom(resp, cfg.SessionCookieName); cookie == nil {
		t.Fatal("expected session cookie on login")
	}
}
