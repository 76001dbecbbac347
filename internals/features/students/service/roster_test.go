package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHeaderKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"이름", "name"},
		{"학생 이름", "name"},
		{"Name", "name"},
		{"코드", "code"},
		{"ID", "code"},
		{"student_code", "code"},
		{"학생연락처", "studentPhone"},
		{"학생전화", "studentPhone"},
		{"Student Phone", "studentPhone"},
		{"학부모연락처", "parentPhone"},
		{"보호자전화", "parentPhone"},
		{"Parent Tel", "parentPhone"},
		{"학년", ""},
		{"비고", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, headerKey(tt.in))
		})
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	in := []RosterRecord{
		{Name: "김철수", Code: "S001", StudentPhone: "010-1111-2222", ParentPhone: "010-3333-4444"},
		{Name: "이영희", Code: "S002"},
	}

	f, err := BuildWorkbook(in)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	out, err := ParseWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[1], out[1])
}

func TestParseWorkbookHeaderNotFirstRow(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]interface{}{"2026년 봄학기 도시락 명단"})
	_ = f.SetSheetRow(sheet, "A3", &[]interface{}{"이름", "코드", "학생전화"})
	_ = f.SetSheetRow(sheet, "A4", &[]interface{}{"박민준", "S010", "01055556666"})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	out, err := ParseWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "박민준", out[0].Name)
	assert.Equal(t, "S010", out[0].Code)
	assert.Equal(t, "010-5555-6666", out[0].StudentPhone)
}

func TestParseWorkbookSkipsBlankRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]interface{}{"이름", "코드"})
	_ = f.SetSheetRow(sheet, "A2", &[]interface{}{"", ""})
	_ = f.SetSheetRow(sheet, "A3", &[]interface{}{"최지우", "S020"})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	out, err := ParseWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "S020", out[0].Code)
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
