package controller

import (
	"github.com/gofiber/fiber/v2"

	"dosirak_backend/internals/features/policy/dto"
	"dosirak_backend/internals/features/policy/model"
	helper "dosirak_backend/internals/helpers"
)

// =======================
// Blackout (no-service) days
// =======================

func (ctrl *PolicyController) ListBlackouts(c *fiber.Ctx) error {
	var rows []model.BlackoutModel
	if err := ctrl.DB.Order("date ASC, slot ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list blackout days")
	}
	return helper.JsonOK(c, "ok", rows)
}

func (ctrl *PolicyController) AddBlackout(c *fiber.Ctx) error {
	var body dto.AddBlackoutRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validatePolicy.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := model.BlackoutModel{Date: body.Date, Slot: body.Slot}
	if err := ctrl.DB.Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add blackout day")
	}
	return helper.JsonCreated(c, "blackout day added", row)
}

func (ctrl *PolicyController) DeleteBlackout(c *fiber.Ctx) error {
	id := c.Params("id")
	res := ctrl.DB.Delete(&model.BlackoutModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete blackout day")
	}
	return helper.JsonDeleted(c, "blackout day deleted", fiber.Map{
		"id":      id,
		"deleted": res.RowsAffected,
	})
}
