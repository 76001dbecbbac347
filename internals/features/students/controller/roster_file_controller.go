package controller

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"dosirak_backend/internals/features/students/model"
	"dosirak_backend/internals/features/students/service"
	helper "dosirak_backend/internals/helpers"
)

// =======================
// CSV import (admin bulk roster, policy columns included)
// Expected header: name,code,allowed_weekdays,start_date,end_date,price_override
// =======================
func (ctrl *StudentController) ImportCSV(c *fiber.Ctx) error {
	r := csv.NewReader(bytes.NewReader(c.Body()))
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid CSV: "+err.Error())
	}
	if len(rows) < 2 {
		return helper.JsonOK(c, "imported", fiber.Map{"imported": 0})
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	imported := 0
	for _, row := range rows[1:] {
		code := cell(row, "code")
		name := cell(row, "name")
		if code == "" || name == "" {
			continue
		}
		st := model.StudentModel{
			Code:      code,
			Name:      name,
			StartDate: strToNil(cell(row, "start_date")),
			EndDate:   strToNil(cell(row, "end_date")),
		}
		if wd := helper.JoinWeekdays(strings.Split(cell(row, "allowed_weekdays"), ",")); wd != "" {
			st.AllowedWeekdays = &wd
		}
		if v := cell(row, "price_override"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				st.PriceOverride = &n
			}
		}
		err := ctrl.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "allowed_weekdays", "start_date", "end_date", "price_override",
			}),
		}).Create(&st).Error
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to import students")
		}
		imported++
	}
	return helper.JsonOK(c, "imported", fiber.Map{"imported": imported})
}

// =======================
// CSV export
// =======================
func (ctrl *StudentController) ExportCSV(c *fiber.Ctx) error {
	var students []model.StudentModel
	if err := ctrl.DB.Order("name ASC").Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export students")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"name", "code", "phone", "parent_phone"})
	for _, s := range students {
		_ = w.Write([]string{s.Name, s.Code, s.Phone, s.ParentPhone})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export students")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="students.csv"`)
	return c.Send(buf.Bytes())
}

// =======================
// Excel preview (parse only)
// =======================
func (ctrl *StudentController) PreviewExcel(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "failed to open upload")
	}
	defer f.Close()

	records, err := service.ParseWorkbook(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonOK(c, "parsed", fiber.Map{"students": records})
}

// =======================
// Excel import (new rows only)
// Existing (name,code) pairs are skipped; a code reused under a different
// name is reported as a conflict, not overwritten.
// =======================
func (ctrl *StudentController) ImportExcel(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "failed to open upload")
	}
	defer f.Close()

	records, err := service.ParseWorkbook(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var existing []model.StudentModel
	if err := ctrl.DB.Select("name", "code").Find(&existing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read roster")
	}
	byCode := make(map[string]string, len(existing))
	byNameCode := make(map[string]bool, len(existing))
	for _, s := range existing {
		byCode[strings.TrimSpace(s.Code)] = strings.TrimSpace(s.Name)
		byNameCode[strings.TrimSpace(s.Name)+"|"+strings.TrimSpace(s.Code)] = true
	}

	imported := 0
	skippedExisting := []fiber.Map{}
	skippedConflict := []fiber.Map{}

	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		code := strings.TrimSpace(rec.Code)
		if name == "" || code == "" {
			continue
		}
		key := name + "|" + code
		if byNameCode[key] {
			skippedExisting = append(skippedExisting, fiber.Map{"name": name, "code": code})
			continue
		}
		if prev, ok := byCode[code]; ok && prev != "" && prev != name {
			skippedConflict = append(skippedConflict, fiber.Map{
				"name": name, "code": code, "exists_as": prev,
			})
			continue
		}

		st := model.StudentModel{
			Code:        code,
			Name:        name,
			Phone:       strings.TrimSpace(rec.StudentPhone),
			ParentPhone: strings.TrimSpace(rec.ParentPhone),
		}
		if err := ctrl.DB.Create(&st).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to import students")
		}
		imported++
		byCode[code] = name
		byNameCode[key] = true
	}

	return helper.JsonOK(c, "imported", fiber.Map{
		"imported":              imported,
		"skipped_existing":      skippedExisting,
		"skipped_code_conflict": skippedConflict,
	})
}

// =======================
// Excel export
// =======================
func (ctrl *StudentController) ExportExcel(c *fiber.Ctx) error {
	var students []model.StudentModel
	if err := ctrl.DB.Order("name ASC").Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export students")
	}

	records := make([]service.RosterRecord, 0, len(students))
	for _, s := range students {
		records = append(records, service.RosterRecord{
			Name:         s.Name,
			Code:         s.Code,
			StudentPhone: s.Phone,
			ParentPhone:  s.ParentPhone,
		})
	}
	f, err := service.BuildWorkbook(records)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build workbook")
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build workbook")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="students.xlsx"`)
	return c.Send(buf.Bytes())
}

func strToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
