package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dosirak_backend/internals/features/policy/dto"
	"dosirak_backend/internals/features/policy/model"
	"dosirak_backend/internals/features/policy/service"
	studentModel "dosirak_backend/internals/features/students/model"
	helper "dosirak_backend/internals/helpers"
)

var validatePolicy = validator.New()

type PolicyController struct {
	DB *gorm.DB
}

func NewPolicyController(db *gorm.DB) *PolicyController {
	return &PolicyController{DB: db}
}

// =======================
// Admin: get / set global policy
// =======================
func (ctrl *PolicyController) GetPolicy(c *fiber.Ctx) error {
	p, err := model.LoadPolicy(ctrl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load policy")
	}
	return helper.JsonOK(c, "ok", p)
}

func (ctrl *PolicyController) SetPolicy(c *fiber.Ctx) error {
	var body dto.SetPolicyRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validatePolicy.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	weekdays := helper.JoinWeekdays(strings.Split(body.AllowedWeekdays, ","))
	if weekdays == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "allowed_weekdays has no valid tokens")
	}

	p := model.PolicyModel{
		BasePrice:       body.BasePrice,
		AllowedWeekdays: weekdays,
		StartDate:       trimToNil(body.StartDate),
		EndDate:         trimToNil(body.EndDate),
		SMSExtraText:    body.SMSExtraText,
	}
	if err := model.SavePolicy(ctrl.DB, p); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save policy")
	}
	return helper.JsonUpdated(c, "policy updated", p)
}

// =======================
// Student-facing: active policy by code
// =======================
func (ctrl *PolicyController) ActivePolicy(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "code is required")
	}

	var st studentModel.StudentModel
	if err := ctrl.DB.First(&st, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}

	global, err := model.LoadPolicy(ctrl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load policy")
	}

	var blackouts []model.BlackoutModel
	if err := ctrl.DB.Order("date ASC, slot ASC").Find(&blackouts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load blackout days")
	}

	eff := service.Resolve(global, st)
	return helper.JsonOK(c, "ok", dto.ActivePolicyResponse{
		BasePrice:       eff.BasePrice,
		AllowedWeekdays: eff.AllowedWeekdays,
		StartDate:       eff.StartDate,
		EndDate:         eff.EndDate,
		NoServiceDays:   blackouts,
		Student:         dto.ActiveStudent{ID: st.ID, Name: st.Name, Code: st.Code},
		SMSExtraText:    global.SMSExtraText,
	})
}

func trimToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
