package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dosirak_backend/internals/features/students/controller"
)

func StudentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentController(db)

	students := admin.Group("/students")
	students.Get("/", ctrl.ListStudents)
	students.Post("/", ctrl.UpsertStudent)
	students.Post("/bulk-upsert", ctrl.BulkUpsert)
	students.Post("/import", ctrl.ImportCSV)
	students.Get("/export", ctrl.ExportCSV)
	students.Post("/preview-excel", ctrl.PreviewExcel)
	students.Post("/import-excel", ctrl.ImportExcel)
	students.Get("/export-excel", ctrl.ExportExcel)
	students.Put("/:id", ctrl.UpdateStudent)
	students.Delete("/:id", ctrl.DeleteStudent)

	// per-student policy override lives beside the roster
	admin.Post("/student-policy/:id", ctrl.SetStudentPolicy)
}
