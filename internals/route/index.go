package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dosirak_backend/internals/configs"
	adminRoutes "dosirak_backend/internals/features/admins/routes"
	menuRoutes "dosirak_backend/internals/features/menus/routes"
	orderRoutes "dosirak_backend/internals/features/orders/routes"
	policyRoutes "dosirak_backend/internals/features/policy/routes"
	smsRoutes "dosirak_backend/internals/features/sms/routes"
	studentRoutes "dosirak_backend/internals/features/students/routes"
	"dosirak_backend/internals/middlewares"
)

// SetupRoutes mounts the whole API surface: public endpoints under /api, then
// the admin group where auth routes precede the cookie gate.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// public
	policyRoutes.PolicyPublicRoutes(api, db)
	orderRoutes.OrderPublicRoutes(api, db)
	menuRoutes.MenuPublicRoutes(api, db)
	smsRoutes.SMSPublicRoutes(api, db)

	// admin
	admin := api.Group("/admin")
	adminRoutes.AdminAuthRoutes(admin)
	admin.Use(middlewares.AdminAuth(configs.AdminSecret))

	studentRoutes.StudentAdminRoutes(admin, db)
	policyRoutes.PolicyAdminRoutes(admin, db)
	orderRoutes.OrderAdminRoutes(admin, db)
	menuRoutes.MenuAdminRoutes(admin, db)
}
