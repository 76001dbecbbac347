package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dosirak_backend/internals/configs"
	"dosirak_backend/internals/features/menus/model"
	helper "dosirak_backend/internals/helpers"
)

type MenuImageController struct {
	DB *gorm.DB
}

func NewMenuImageController(db *gorm.DB) *MenuImageController {
	return &MenuImageController{DB: db}
}

// =======================
// Public: latest menu photos
// =======================
func (ctrl *MenuImageController) ListLatest(c *fiber.Ctx) error {
	var rows []model.MenuImageModel
	if err := ctrl.DB.
		Order("uploaded_at DESC, id DESC").
		Limit(5).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load menu images")
	}
	return helper.JsonOK(c, "ok", rows)
}

// =======================
// Admin
// =======================

func (ctrl *MenuImageController) ListAll(c *fiber.Ctx) error {
	var rows []model.MenuImageModel
	if err := ctrl.DB.
		Order("uploaded_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load menu images")
	}
	return helper.JsonOK(c, "ok", rows)
}

// Upload converts the image to webp, caps its dimensions and stores it under
// the upload dir. The DB row only holds the public URL.
func (ctrl *MenuImageController) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "image file is required")
	}

	filename, err := helper.SaveMenuImage(configs.UploadDir, fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unsupported or corrupt image")
	}

	row := model.MenuImageModel{URL: "/uploads/" + filename}
	if err := ctrl.DB.Create(&row).Error; err != nil {
		helper.RemoveUpload(configs.UploadDir, filename)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save menu image")
	}
	return helper.JsonCreated(c, "menu image uploaded", row)
}

func (ctrl *MenuImageController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var row model.MenuImageModel
	if err := ctrl.DB.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Menu image not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load menu image")
	}

	if err := ctrl.DB.Delete(&model.MenuImageModel{}, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete menu image")
	}
	// file removal is best effort; a missing file should not fail the delete
	helper.RemoveUpload(configs.UploadDir, row.URL)

	return helper.JsonDeleted(c, "menu image deleted", fiber.Map{"id": row.ID})
}
