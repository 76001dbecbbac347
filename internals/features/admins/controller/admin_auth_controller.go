package controller

import (
	"crypto/subtle"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"dosirak_backend/internals/configs"
	"dosirak_backend/internals/features/admins/dto"
	helper "dosirak_backend/internals/helpers"
	"dosirak_backend/internals/middlewares"
)

var validateAdmin = validator.New()

type AdminAuthController struct{}

func NewAdminAuthController() *AdminAuthController {
	return &AdminAuthController{}
}

// passwordOK prefers the bcrypt hash; the plaintext ADMIN_PASS fallback exists
// for local setups and is compared in constant time.
func passwordOK(password string) bool {
	if configs.AdminPassHash != "" {
		return bcrypt.CompareHashAndPassword(
			[]byte(configs.AdminPassHash), []byte(password)) == nil
	}
	if configs.AdminPass == "" {
		return false
	}
	return subtle.ConstantTimeCompare(
		[]byte(configs.AdminPass), []byte(password)) == 1
}

func (ctrl *AdminAuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAdmin.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	userOK := subtle.ConstantTimeCompare(
		[]byte(configs.AdminUser), []byte(body.Username)) == 1
	if !userOK || !passwordOK(body.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := middlewares.SignAdminToken(configs.AdminSecret, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create session")
	}

	cookie := &fiber.Cookie{
		Name:     middlewares.AdminCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(middlewares.AdminSessionTTL.Seconds()),
		HTTPOnly: true,
	}
	if configs.IsProd() {
		// cross-site admin SPA needs SameSite=None, which requires Secure
		cookie.SameSite = fiber.CookieSameSiteNoneMode
		cookie.Secure = true
	} else {
		cookie.SameSite = fiber.CookieSameSiteLaxMode
	}
	c.Cookie(cookie)

	return helper.JsonOK(c, "logged in", fiber.Map{"authenticated": true})
}

func (ctrl *AdminAuthController) Logout(c *fiber.Ctx) error {
	cookie := &fiber.Cookie{
		Name:     middlewares.AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
	}
	if configs.IsProd() {
		cookie.SameSite = fiber.CookieSameSiteNoneMode
		cookie.Secure = true
	} else {
		cookie.SameSite = fiber.CookieSameSiteLaxMode
	}
	c.Cookie(cookie)
	return helper.JsonOK(c, "logged out", fiber.Map{"authenticated": false})
}

// Me is intentionally ungated: the SPA probes it on load to decide whether to
// show the login form.
func (ctrl *AdminAuthController) Me(c *fiber.Ctx) error {
	ok := middlewares.VerifyAdminToken(configs.AdminSecret,
		c.Cookies(middlewares.AdminCookieName))
	return helper.JsonOK(c, "ok", fiber.Map{"authenticated": ok})
}
