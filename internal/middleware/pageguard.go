package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/config"
	"github.com/optima-labs/optima-api/internal/models"
)

// PageGuard gates the browser-facing /dashboard and /admin routes using the
// session cookie. Unauthenticated callers bounce to the sign-in page with the
// original path preserved; authenticated non-admins bounce off /admin to
// /dashboard; /admin/system stays super-admin only.
func PageGuard(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		userID, err := parseSessionCookie(c.Cookies(cfg.SessionCookieName), cfg.JWTSecret)
		if err != nil {
			return c.Redirect("/auth?redirectTo="+path, fiber.StatusFound)
		}

		if strings.HasPrefix(path, "/admin") {
			var profile models.Profile
			if err := db.Select("id", "role").First(&profile, "id = ?", userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.Redirect("/dashboard", fiber.StatusFound)
				}
				// Role lookup failed: treat as unauthorized.
				return c.Redirect("/auth", fiber.StatusFound)
			}

			if !profile.Role.IsAdmin() {
				return c.Redirect("/dashboard", fiber.StatusFound)
			}
			if strings.HasPrefix(path, "/admin/system") && !profile.Role.IsSuperAdmin() {
				return c.Redirect("/admin", fiber.StatusFound)
			}
		}

		c.Locals("session_user_id", userID)
		return c.Next()
	}
}

// SessionUserID returns the identity PageGuard resolved for this request.
func SessionUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("session_user_id").(uuid.UUID)
	return id, ok
}

func parseSessionCookie(cookie, secret string) (uuid.UUID, error) {
	if cookie == "" {
		return uuid.Nil, errors.New("no session cookie")
	}

	token, err := jwt.Parse(cookie, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.New("invalid session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}
