package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dosirak_backend/internals/configs"
	"dosirak_backend/internals/features/orders/controller"
	"dosirak_backend/internals/features/orders/service"
)

// OrderPublicRoutes mounts the student-facing order flow and the gateway
// confirm callback under the public /api group.
func OrderPublicRoutes(api fiber.Router, db *gorm.DB) {
	orderCtrl := controller.NewOrderController(db)
	payCtrl := controller.NewPaymentController(db, service.NewTossClient(configs.TossSecretKey))

	api.Post("/orders/commit", orderCtrl.CommitOrders)
	api.Get("/student/orders/:code", orderCtrl.StudentOrders)
	api.Post("/payments/toss/confirm", payCtrl.ConfirmPayment)
}

// OrderAdminRoutes mounts order management, reconciliation and reports under
// the cookie-gated /api/admin group.
func OrderAdminRoutes(admin fiber.Router, db *gorm.DB) {
	orderCtrl := controller.NewOrderController(db)
	payCtrl := controller.NewPaymentController(db, service.NewTossClient(configs.TossSecretKey))
	reportCtrl := controller.NewReportController(db)

	orders := admin.Group("/orders")
	orders.Get("/", orderCtrl.AdminListOrders)
	orders.Post("/cancel-student", orderCtrl.CancelStudentOrders)
	orders.Delete("/:id", orderCtrl.DeleteOrder)

	admin.Post("/reset-orders", orderCtrl.ResetOrders)

	admin.Get("/applicants-range", payCtrl.ApplicantsRange)
	admin.Post("/payments/mark-range", payCtrl.MarkRange)
	admin.Get("/applicants", payCtrl.ApplicantsByDate)
	admin.Post("/payments/mark", payCtrl.MarkByDate)

	admin.Get("/weekly-summary", reportCtrl.WeeklySummary)
	admin.Get("/attendance.csv", reportCtrl.AttendanceCSV)
	admin.Get("/print", reportCtrl.PrintView)
}
