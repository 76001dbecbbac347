package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dosirak_backend/internals/features/orders/dto"
	"dosirak_backend/internals/features/orders/model"
	"dosirak_backend/internals/features/orders/service"
	studentModel "dosirak_backend/internals/features/students/model"
	helper "dosirak_backend/internals/helpers"
)

type PaymentController struct {
	DB   *gorm.DB
	Toss *service.TossClient
}

func NewPaymentController(db *gorm.DB, toss *service.TossClient) *PaymentController {
	return &PaymentController{DB: db, Toss: toss}
}

// =======================
// Gateway confirmation
// =======================
// The gateway call comes first; only a confirmed payment marks rows PAID.
// The receipt is persisted regardless of how many rows the update matches,
// so a charge that races an admin cancellation stays reconcilable.
func (ctrl *PaymentController) ConfirmPayment(c *fiber.Ctx) error {
	var body dto.ConfirmRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateOrder.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	receipt, err := ctrl.Toss.Confirm(c.UserContext(), body.PaymentKey, body.OrderID, body.Amount)
	if err != nil {
		var rejected *service.TossConfirmError
		if errors.As(err, &rejected) {
			return helper.JsonErrorWithDetail(c, fiber.StatusBadRequest,
				"confirm_failed", json.RawMessage(rejected.Detail))
		}
		return helper.JsonErrorWithDetail(c, fiber.StatusBadRequest,
			"confirm_failed", err.Error())
	}

	rec := model.PaymentReceiptModel{
		OrderRef:   body.OrderID,
		PaymentKey: body.PaymentKey,
		Amount:     body.Amount,
		Receipt:    []byte(receipt),
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_ref"}},
		DoNothing: true,
	}).Create(&rec).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store receipt")
	}

	var updated int64
	var st studentModel.StudentModel
	err = ctrl.DB.First(&st, "code = ?", strings.TrimSpace(body.Code)).Error
	if err == nil {
		for _, ds := range body.DateSlots {
			if strings.TrimSpace(ds.Date) == "" || !model.ValidSlot(ds.Slot) {
				continue
			}
			n, err := service.MarkOrders(ctrl.DB, st.ID, ds.Date, ds.Date, ds.Slot, true)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark orders paid")
			}
			updated += n
		}
	}
	// unknown code: the charge already happened at the gateway — keep the
	// receipt and report zero updated rows instead of failing

	return helper.JsonOK(c, "payment confirmed", fiber.Map{
		"receipt": json.RawMessage(receipt),
		"updated": updated,
	})
}

// =======================
// Reconciliation: applicants over a range
// =======================
func (ctrl *PaymentController) ApplicantsRange(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "start and end are required")
	}

	type row struct {
		ID           uint
		Name         string
		Code         string
		AppliedCount int
		PaidCount    int
		TotalAmount  int
	}
	var rows []row
	err := ctrl.DB.Raw(`
		SELECT
			s.id,
			s.name,
			s.code,
			SUM(CASE WHEN o.status IN ('SELECTED','PAID') THEN 1 ELSE 0 END) AS applied_count,
			SUM(CASE WHEN o.status = 'PAID' THEN 1 ELSE 0 END)              AS paid_count,
			SUM(CASE WHEN o.status IN ('SELECTED','PAID') THEN o.price ELSE 0 END) AS total_amount
		FROM orders o
		JOIN students s ON s.id = o.student_id
		WHERE o.date BETWEEN ? AND ?
		GROUP BY s.id, s.name, s.code
		ORDER BY s.name ASC
	`, start, end).Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to aggregate applicants")
	}

	list := make([]dto.ApplicantRangeRow, 0, len(rows))
	for _, r := range rows {
		list = append(list, dto.ApplicantRangeRow{
			ID:           r.ID,
			Name:         r.Name,
			Code:         r.Code,
			AppliedCount: r.AppliedCount,
			PaidCount:    r.PaidCount,
			TotalAmount:  r.TotalAmount,
			Paid:         r.AppliedCount > 0 && r.PaidCount == r.AppliedCount,
		})
	}
	return helper.JsonOK(c, "ok", list)
}

// =======================
// Reconciliation: bulk mark over a range
// =======================
// Unresolvable codes are skipped, not fatal; the response carries total rows
// affected across the batch.
func (ctrl *PaymentController) MarkRange(c *fiber.Ctx) error {
	var body dto.MarkRangeRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateOrder.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if len(body.Items) == 0 {
		return helper.JsonOK(c, "nothing to mark", fiber.Map{"updated": 0})
	}

	var updated int64
	for _, it := range body.Items {
		code := strings.TrimSpace(it.Code)
		if code == "" {
			continue
		}
		var st studentModel.StudentModel
		if err := ctrl.DB.First(&st, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark payments")
		}
		n, err := service.MarkOrders(ctrl.DB, st.ID, body.Start, body.End,
			strings.ToUpper(strings.TrimSpace(it.Slot)), it.Paid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark payments")
		}
		updated += n
	}
	return helper.JsonOK(c, "payments marked", fiber.Map{"updated": updated})
}

// =======================
// Reconciliation: applicants for one date (per-slot state)
// =======================
func (ctrl *PaymentController) ApplicantsByDate(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "date is required")
	}

	type row struct {
		ID            uint
		Name          string
		Code          string
		LunchApplied  int
		DinnerApplied int
		LunchPaidCnt  int
		DinnerPaidCnt int
	}
	var rows []row
	err := ctrl.DB.Raw(`
		SELECT
			s.id, s.name, s.code,
			SUM(CASE WHEN o.slot = 'LUNCH'  THEN 1 ELSE 0 END) AS lunch_applied,
			SUM(CASE WHEN o.slot = 'DINNER' THEN 1 ELSE 0 END) AS dinner_applied,
			SUM(CASE WHEN o.slot = 'LUNCH'  AND o.status = 'PAID' THEN 1 ELSE 0 END) AS lunch_paid_cnt,
			SUM(CASE WHEN o.slot = 'DINNER' AND o.status = 'PAID' THEN 1 ELSE 0 END) AS dinner_paid_cnt
		FROM orders o
		JOIN students s ON s.id = o.student_id
		WHERE o.date = ? AND o.status IN ('SELECTED','PAID')
		GROUP BY s.id, s.name, s.code
		ORDER BY s.name ASC
	`, date).Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to aggregate applicants")
	}

	list := make([]dto.ApplicantDayRow, 0, len(rows))
	for _, r := range rows {
		lunchApplied := r.LunchApplied > 0
		dinnerApplied := r.DinnerApplied > 0
		list = append(list, dto.ApplicantDayRow{
			ID:   r.ID,
			Name: r.Name,
			Code: r.Code,
			Lunch: dto.SlotState{
				Applied: lunchApplied,
				Paid:    lunchApplied && r.LunchPaidCnt == r.LunchApplied,
			},
			Dinner: dto.SlotState{
				Applied: dinnerApplied,
				Paid:    dinnerApplied && r.DinnerPaidCnt == r.DinnerApplied,
			},
		})
	}
	return helper.JsonOK(c, "ok", list)
}

// =======================
// Reconciliation: per-(date,slot) mark (backward compatible)
// =======================
func (ctrl *PaymentController) MarkByDate(c *fiber.Ctx) error {
	var body dto.MarkRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateOrder.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if len(body.Items) == 0 {
		return helper.JsonOK(c, "nothing to mark", fiber.Map{"updated": 0})
	}

	var updated int64
	for _, it := range body.Items {
		code := strings.TrimSpace(it.Code)
		slot := strings.ToUpper(strings.TrimSpace(it.Slot))
		if code == "" || !model.ValidSlot(slot) {
			continue
		}
		var st studentModel.StudentModel
		if err := ctrl.DB.First(&st, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark payments")
		}
		n, err := service.MarkOrders(ctrl.DB, st.ID, body.Date, body.Date, slot, it.Paid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark payments")
		}
		updated += n
	}
	return helper.JsonOK(c, "payments marked", fiber.Map{"updated": updated})
}
