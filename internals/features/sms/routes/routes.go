package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dosirak_backend/internals/configs"
	"dosirak_backend/internals/features/sms/controller"
	"dosirak_backend/internals/features/sms/service"
)

func SMSPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSMSController(db,
		service.NewClient(configs.SMSAPIKey, configs.SMSAPISecret),
		configs.SMSSender)
	api.Post("/sms/summary", ctrl.SendSummary)
}
