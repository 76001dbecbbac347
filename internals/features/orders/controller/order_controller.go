package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dosirak_backend/internals/features/orders/dto"
	"dosirak_backend/internals/features/orders/model"
	studentModel "dosirak_backend/internals/features/students/model"
	helper "dosirak_backend/internals/helpers"
)

var validateOrder = validator.New()

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

func (ctrl *OrderController) findStudentByCode(code string) (*studentModel.StudentModel, error) {
	var st studentModel.StudentModel
	err := ctrl.DB.First(&st, "code = ?", strings.TrimSpace(code)).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// =======================
// Commit selection
// =======================
// One SELECTED row per valid item. A (student,date,slot) triple that already
// exists is left untouched — the unique index plus DO NOTHING makes the
// commit idempotent. Malformed items are skipped, not fatal.
func (ctrl *OrderController) CommitOrders(c *fiber.Ctx) error {
	var body dto.CommitRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateOrder.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	st, err := ctrl.findStudentByCode(body.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}

	inserted, skipped := 0, 0
	for _, it := range body.Items {
		if strings.TrimSpace(it.Date) == "" || !model.ValidSlot(it.Slot) {
			skipped++
			continue
		}
		row := model.OrderModel{
			StudentID: st.ID,
			Date:      it.Date,
			Slot:      it.Slot,
			Price:     it.Price,
			Status:    model.StatusSelected,
		}
		res := ctrl.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}, {Name: "slot"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit orders")
		}
		if res.RowsAffected > 0 {
			inserted++
		} else {
			skipped++
		}
	}

	return helper.JsonOK(c, "orders committed", fiber.Map{
		"inserted": inserted,
		"skipped":  skipped,
	})
}

// =======================
// Student order history
// =======================
func (ctrl *OrderController) StudentOrders(c *fiber.Ctx) error {
	code := c.Params("code")
	st, err := ctrl.findStudentByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}

	var rows []model.OrderModel
	if err := ctrl.DB.
		Where("student_id = ?", st.ID).
		Order("date ASC, slot ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load orders")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"student": fiber.Map{"id": st.ID, "name": st.Name},
		"count":   len(rows),
		"orders":  rows,
	})
}

// =======================
// Admin: order list (range + name/code search, with per-student groups)
// =======================

type adminOrderRow struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	Price     int    `json:"price"`
	Status    string `json:"status"`
	StudentID uint   `json:"student_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
}

type adminOrderGroup struct {
	StudentID   uint        `json:"student_id"`
	Name        string      `json:"name"`
	Code        string      `json:"code"`
	TotalAmount int         `json:"total_amount"`
	Count       int         `json:"count"`
	Items       []fiber.Map `json:"items"`
}

func (ctrl *OrderController) AdminListOrders(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")
	q := strings.TrimSpace(c.Query("q"))

	tx := ctrl.DB.Table("orders o").
		Select("o.id, o.date, o.slot, o.price, o.status, s.id AS student_id, s.name, s.code").
		Joins("JOIN students s ON s.id = o.student_id").
		Where("o.status IN ?", []string{model.StatusSelected, model.StatusPaid})
	if start != "" {
		tx = tx.Where("o.date >= ?", start)
	}
	if end != "" {
		tx = tx.Where("o.date <= ?", end)
	}
	if q != "" {
		tx = tx.Where("s.name LIKE ? OR s.code LIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var rows []adminOrderRow
	if err := tx.Order("s.name ASC, o.date ASC, o.slot ASC").Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list orders")
	}

	groupIdx := map[uint]int{}
	groups := []adminOrderGroup{}
	for _, r := range rows {
		i, ok := groupIdx[r.StudentID]
		if !ok {
			i = len(groups)
			groupIdx[r.StudentID] = i
			groups = append(groups, adminOrderGroup{
				StudentID: r.StudentID,
				Name:      r.Name,
				Code:      r.Code,
				Items:     []fiber.Map{},
			})
		}
		groups[i].Items = append(groups[i].Items, fiber.Map{
			"id": r.ID, "date": r.Date, "slot": r.Slot, "price": r.Price, "status": r.Status,
		})
		groups[i].Count++
		groups[i].TotalAmount += r.Price
	}

	return helper.JsonOK(c, "ok", fiber.Map{"rows": rows, "groups": groups})
}

// =======================
// Admin: cancellations
// =======================

// Single-row cancel; deleting an id that is already gone is not an error.
func (ctrl *OrderController) DeleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	res := ctrl.DB.Delete(&model.OrderModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete order")
	}
	return helper.JsonDeleted(c, "order deleted", fiber.Map{"deleted": res.RowsAffected})
}

// Bulk cancel for one student, optionally narrowed by date range and slot.
// Deletion ignores status: PAID rows go too (refunds are handled outside).
func (ctrl *OrderController) CancelStudentOrders(c *fiber.Ctx) error {
	var body dto.CancelStudentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateOrder.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	st, err := ctrl.findStudentByCode(body.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}

	tx := ctrl.DB.Where("student_id = ?", st.ID)
	if body.Start != "" {
		tx = tx.Where("date >= ?", body.Start)
	}
	if body.End != "" {
		tx = tx.Where("date <= ?", body.End)
	}
	if model.ValidSlot(body.Slot) {
		tx = tx.Where("slot = ?", body.Slot)
	}

	res := tx.Delete(&model.OrderModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to cancel orders")
	}
	return helper.JsonDeleted(c, "orders cancelled", fiber.Map{"deleted": res.RowsAffected})
}

// Full reset, gated behind confirm=true.
func (ctrl *OrderController) ResetOrders(c *fiber.Ctx) error {
	var body dto.ResetOrdersRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if !body.Confirm {
		return helper.JsonError(c, fiber.StatusBadRequest, "CONFIRM_REQUIRED")
	}

	res := ctrl.DB.Where("1 = 1").Delete(&model.OrderModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reset orders")
	}
	return helper.JsonDeleted(c, "all orders reset", fiber.Map{"deleted": res.RowsAffected})
}
