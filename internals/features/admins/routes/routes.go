package routes

import (
	"github.com/gofiber/fiber/v2"

	"dosirak_backend/internals/features/admins/controller"
	"dosirak_backend/internals/middlewares"
)

// AdminAuthRoutes must be mounted before the AdminAuth gate so login and the
// session probe stay reachable without a cookie.
func AdminAuthRoutes(admin fiber.Router) {
	ctrl := controller.NewAdminAuthController()

	admin.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	admin.Post("/logout", ctrl.Logout)
	admin.Get("/me", ctrl.Me)
}
