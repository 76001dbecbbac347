package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dosirak_backend/internals/features/menus/controller"
)

func MenuPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMenuImageController(db)
	api.Get("/menu-images", ctrl.ListLatest)
}

func MenuAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMenuImageController(db)

	images := admin.Group("/menu-images")
	images.Get("/", ctrl.ListAll)
	images.Post("/", ctrl.Upload)
	images.Delete("/:id", ctrl.Delete)
}
