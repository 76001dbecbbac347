package service

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	helper "dosirak_backend/internals/helpers"
)

// RosterRecord is one parsed roster row, header-order independent.
type RosterRecord struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	StudentPhone string `json:"studentPhone"`
	ParentPhone  string `json:"parentPhone"`
}

// Exported spreadsheets and teachers' own files disagree on header wording,
// so detection is fuzzy: Korean and English variants both match.
var (
	reName         = regexp.MustCompile(`(^|[^가-힣a-z])이름([^가-힣a-z]|$)|(^|_)name($|_)`)
	reCode         = regexp.MustCompile(`(^|[^가-힣a-z])코드([^가-힣a-z]|$)|(code|id)\b`)
	reStudentPhone = regexp.MustCompile(`학생.?연락|student.*(phone|tel)|phone_student|학생전화`)
	reParentPhone  = regexp.MustCompile(`(학부모|보호자).?연락|parent.*(phone|tel)|phone_parent|보호자전화`)
)

func headerKey(h string) string {
	s := strings.ToLower(strings.TrimSpace(h))
	switch {
	case reName.MatchString(s):
		return "name"
	case reCode.MatchString(s):
		return "code"
	case reStudentPhone.MatchString(s):
		return "studentPhone"
	case reParentPhone.MatchString(s):
		return "parentPhone"
	default:
		return ""
	}
}

const headerScanLimit = 30

// ParseWorkbook reads the first sheet of an xlsx upload into roster records.
// The header row is located within the first 30 rows: the first row mapping
// at least two known columns including name or code wins; otherwise row 0 is
// assumed to be the header.
func ParseWorkbook(r io.Reader) ([]RosterRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headerIdx := -1
	var headerKeys []string
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		ks := make([]string, len(rows[i]))
		score := 0
		hasNameOrCode := false
		for c, cell := range rows[i] {
			ks[c] = headerKey(cell)
			if ks[c] != "" {
				score++
			}
			if ks[c] == "name" || ks[c] == "code" {
				hasNameOrCode = true
			}
		}
		if score >= 2 && hasNameOrCode {
			headerIdx = i
			headerKeys = ks
			break
		}
	}
	if headerIdx < 0 {
		headerIdx = 0
		headerKeys = make([]string, len(rows[0]))
		for c, cell := range rows[0] {
			headerKeys[c] = headerKey(cell)
		}
	}

	var out []RosterRecord
	for r := headerIdx + 1; r < len(rows); r++ {
		row := rows[r]
		var rec RosterRecord
		for c := 0; c < len(headerKeys) && c < len(row); c++ {
			v := strings.TrimSpace(row[c])
			switch headerKeys[c] {
			case "name":
				rec.Name = v
			case "code":
				rec.Code = v
			case "studentPhone":
				rec.StudentPhone = helper.NormalizePhone(v)
			case "parentPhone":
				rec.ParentPhone = helper.NormalizePhone(v)
			}
		}
		if rec.Name != "" || rec.Code != "" || rec.StudentPhone != "" || rec.ParentPhone != "" {
			out = append(out, rec)
		}
	}
	return out, nil
}

// BuildWorkbook renders the roster in the layout the center's staff expect
// (학생DB sheet, ID/이름/학년/학생전화/보호자전화 columns).
func BuildWorkbook(records []RosterRecord) (*excelize.File, error) {
	const sheet = "학생DB"
	f := excelize.NewFile()
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := []interface{}{"ID", "이름", "학년", "학생전화", "보호자전화"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, rec := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{rec.Code, rec.Name, "", rec.StudentPhone, rec.ParentPhone}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
