package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dosirak_backend/internals/features/orders/dto"
	"dosirak_backend/internals/features/orders/model"
	studentModel "dosirak_backend/internals/features/students/model"
	helper "dosirak_backend/internals/helpers"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// =======================
// Weekly summary (PAID only)
// =======================
// Cross product of every student against every day in range, split into
// applied/not-applied per day so the front desk can chase stragglers.
func (ctrl *ReportController) WeeklySummary(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "start and end are required")
	}
	startT, err := time.Parse("2006-01-02", start)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "start must be YYYY-MM-DD")
	}
	endT, err := time.Parse("2006-01-02", end)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "end must be YYYY-MM-DD")
	}

	days := []string{}
	for d := startT; !d.After(endT); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format("2006-01-02"))
	}

	var students []studentModel.StudentModel
	if err := ctrl.DB.Order("name ASC").Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}

	var paid []model.OrderModel
	if err := ctrl.DB.
		Where("date BETWEEN ? AND ? AND status = ?", start, end, model.StatusPaid).
		Find(&paid).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load orders")
	}

	type key struct {
		studentID uint
		date      string
		slot      string
	}
	has := map[key]bool{}
	for _, o := range paid {
		has[key{o.StudentID, o.Date, o.Slot}] = true
	}

	type dayCell struct {
		Date   string `json:"date"`
		Lunch  bool   `json:"lunch"`
		Dinner bool   `json:"dinner"`
	}
	type summaryRow struct {
		ID      uint      `json:"id"`
		Name    string    `json:"name"`
		Code    string    `json:"code"`
		Days    []dayCell `json:"days"`
		Applied bool      `json:"applied"`
	}

	rows := make([]summaryRow, 0, len(students))
	applied, notApplied := 0, 0
	for _, st := range students {
		row := summaryRow{ID: st.ID, Name: st.Name, Code: st.Code, Days: make([]dayCell, 0, len(days))}
		for _, d := range days {
			cell := dayCell{
				Date:   d,
				Lunch:  has[key{st.ID, d, model.SlotLunch}],
				Dinner: has[key{st.ID, d, model.SlotDinner}],
			}
			if cell.Lunch || cell.Dinner {
				row.Applied = true
			}
			row.Days = append(row.Days, cell)
		}
		if row.Applied {
			applied++
		} else {
			notApplied++
		}
		rows = append(rows, row)
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"days":        days,
		"rows":        rows,
		"applied":     applied,
		"not_applied": notApplied,
	})
}

// =======================
// Kitchen print view
// =======================
// One entry per student per slot. A student with any PAID row for the
// (date,slot) shows as PAID even if other rows are still SELECTED, hence the
// MAX(CASE ...) collapse. Paid entries sort first so the kitchen checks them
// off top-down.
func (ctrl *ReportController) PrintView(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "date is required")
	}

	fetch := func(slot string) ([]dto.PrintEntry, error) {
		type row struct {
			ID     uint
			Name   string
			Code   string
			IsPaid int
		}
		var rows []row
		err := ctrl.DB.Raw(`
			SELECT
				s.id, s.name, s.code,
				MAX(CASE WHEN o.status = 'PAID' THEN 1 ELSE 0 END) AS is_paid
			FROM orders o
			JOIN students s ON s.id = o.student_id
			WHERE o.date = ? AND o.slot = ? AND o.status IN ('SELECTED','PAID')
			GROUP BY s.id, s.name, s.code
			ORDER BY is_paid DESC, s.name ASC
		`, date, slot).Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		out := make([]dto.PrintEntry, 0, len(rows))
		for _, r := range rows {
			status := model.StatusSelected
			if r.IsPaid == 1 {
				status = model.StatusPaid
			}
			out = append(out, dto.PrintEntry{ID: r.ID, Name: r.Name, Code: r.Code, Status: status})
		}
		return out, nil
	}

	lunch, err := fetch(model.SlotLunch)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build print view")
	}
	dinner, err := fetch(model.SlotDinner)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build print view")
	}

	countPaid := func(entries []dto.PrintEntry) int {
		n := 0
		for _, e := range entries {
			if e.Status == model.StatusPaid {
				n++
			}
		}
		return n
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"date":   date,
		"lunch":  fiber.Map{"total": len(lunch), "paid": countPaid(lunch), "entries": lunch},
		"dinner": fiber.Map{"total": len(dinner), "paid": countPaid(dinner), "entries": dinner},
	})
}

// =======================
// Attendance CSV (PAID only)
// =======================
func (ctrl *ReportController) AttendanceCSV(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "date is required")
	}

	fetch := func(slot string) ([]string, error) {
		var names []string
		err := ctrl.DB.Table("orders o").
			Joins("JOIN students s ON s.id = o.student_id").
			Where("o.date = ? AND o.slot = ? AND o.status = ?", date, slot, model.StatusPaid).
			Order("s.name ASC").
			Distinct().
			Pluck("s.name", &names).Error
		return names, err
	}

	lunch, err := fetch(model.SlotLunch)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build attendance list")
	}
	dinner, err := fetch(model.SlotDinner)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build attendance list")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"date", "slot", "name"})
	for _, n := range lunch {
		_ = w.Write([]string{date, model.SlotLunch, n})
	}
	for _, n := range dinner {
		_ = w.Write([]string{date, model.SlotDinner, n})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to write CSV")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="attendance_%s.csv"`, date))
	return c.Send(buf.Bytes())
}
