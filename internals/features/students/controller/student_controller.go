package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dosirak_backend/internals/features/students/dto"
	"dosirak_backend/internals/features/students/model"
	helper "dosirak_backend/internals/helpers"
)

var validateStudent = validator.New()

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// =======================
// List
// =======================
func (ctrl *StudentController) ListStudents(c *fiber.Ctx) error {
	var students []model.StudentModel
	if err := ctrl.DB.Order("name ASC").Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list students")
	}
	return helper.JsonOK(c, "ok", students)
}

// =======================
// Upsert by code
// =======================
func (ctrl *StudentController) UpsertStudent(c *fiber.Ctx) error {
	var body dto.UpsertStudentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStudent.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	st := model.StudentModel{
		Code:        strings.TrimSpace(body.Code),
		Name:        strings.TrimSpace(body.Name),
		Phone:       strings.TrimSpace(body.Phone),
		ParentPhone: strings.TrimSpace(body.ParentPhone),
	}
	err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "parent_phone"}),
	}).Create(&st).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save student")
	}
	return helper.JsonOK(c, "saved", st)
}

// =======================
// Update by id
// =======================
func (ctrl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id := c.Params("id")
	var body dto.UpdateStudentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStudent.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res := ctrl.DB.Model(&model.StudentModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":         strings.TrimSpace(body.Name),
			"code":         strings.TrimSpace(body.Code),
			"phone":        strings.TrimSpace(body.Phone),
			"parent_phone": strings.TrimSpace(body.ParentPhone),
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	return helper.JsonUpdated(c, "student updated", fiber.Map{"id": id})
}

// =======================
// Delete (orders cascade)
// =======================
func (ctrl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id := c.Params("id")
	res := ctrl.DB.Delete(&model.StudentModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student")
	}
	return helper.JsonDeleted(c, "student deleted", fiber.Map{
		"id":      id,
		"deleted": res.RowsAffected,
	})
}

// =======================
// Bulk upsert
// =======================
func (ctrl *StudentController) BulkUpsert(c *fiber.Ctx) error {
	var body dto.BulkUpsertRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(body.Students) == 0 {
		return helper.JsonOK(c, "nothing to save", fiber.Map{"inserted": 0, "updated": 0})
	}

	inserted, updated := 0, 0
	for _, raw := range body.Students {
		name := strings.TrimSpace(raw.Name)
		code := strings.TrimSpace(raw.Code)
		if name == "" || code == "" {
			continue
		}

		var existing int64
		if err := ctrl.DB.Model(&model.StudentModel{}).
			Where("code = ?", code).Count(&existing).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save students")
		}

		st := model.StudentModel{
			Code:        code,
			Name:        name,
			Phone:       strings.TrimSpace(raw.Phone),
			ParentPhone: strings.TrimSpace(raw.ParentPhone),
		}
		err := ctrl.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "parent_phone"}),
		}).Create(&st).Error
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save students")
		}
		if existing > 0 {
			updated++
		} else {
			inserted++
		}
	}
	return helper.JsonOK(c, "saved", fiber.Map{"inserted": inserted, "updated": updated})
}

// =======================
// Per-student policy override
// =======================
func (ctrl *StudentController) SetStudentPolicy(c *fiber.Ctx) error {
	id := c.Params("id")
	var body dto.StudentPolicyRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var weekdays *string
	if body.AllowedWeekdays != nil {
		if canon := helper.JoinWeekdays(strings.Split(*body.AllowedWeekdays, ",")); canon != "" {
			weekdays = &canon
		}
	}

	res := ctrl.DB.Model(&model.StudentModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"allowed_weekdays": weekdays,
			"start_date":       emptyToNil(body.StartDate),
			"end_date":         emptyToNil(body.EndDate),
			"price_override":   body.PriceOverride,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student policy")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	return helper.JsonUpdated(c, "student policy updated", fiber.Map{"id": id})
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
