package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dosirak_backend/internals/features/policy/controller"
)

// PolicyPublicRoutes: student-facing policy resolution.
func PolicyPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPolicyController(db)
	api.Get("/policy/active", ctrl.ActivePolicy)
}

// PolicyAdminRoutes: global policy + blackout management.
func PolicyAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPolicyController(db)

	admin.Get("/policy", ctrl.GetPolicy)
	admin.Post("/policy", ctrl.SetPolicy)

	days := admin.Group("/no-service-days")
	days.Get("/", ctrl.ListBlackouts)
	days.Post("/", ctrl.AddBlackout)
	days.Delete("/:id", ctrl.DeleteBlackout)
}
