package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	// AdminCookieName holds the signed admin session token (httpOnly).
	AdminCookieName = "admin_token"
	// AdminSessionTTL matches the cookie max-age.
	AdminSessionTTL = 7 * 24 * time.Hour

	adminSubject = "admin"
)

// SignAdminToken issues the session JWT placed in the admin cookie.
func SignAdminToken(secret string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(AdminSessionTTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// VerifyAdminToken reports whether raw is a valid, unexpired admin session.
func VerifyAdminToken(secret, raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return false
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	return ok && claims.Subject == adminSubject
}

// AdminAuth gates admin routes on the session cookie. login/logout/me are
// mounted before this middleware and stay open.
func AdminAuth(secret string) fiber.Handler {
	if strings.TrimSpace(secret) == "" {
		panic("AdminAuth: secret is required")
	}
	return func(c *fiber.Ctx) error {
		if !VerifyAdminToken(secret, c.Cookies(AdminCookieName)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success":    false,
				"message":    "Unauthorized",
				"error_code": "UNAUTHORIZED",
			})
		}
		c.Locals("is_admin", true)
		return c.Next()
	}
}
