package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "dosirak_backend/internals/databases"
	"dosirak_backend/internals/features/orders/service"
	studentModel "dosirak_backend/internals/features/students/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("file::memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single conn keeps the in-memory database alive for the whole test
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestApp(t *testing.T, db *gorm.DB, tossBaseURL string) *fiber.App {
	t.Helper()
	app := fiber.New()

	orderCtrl := NewOrderController(db)
	toss := service.NewTossClient("sk_test")
	if tossBaseURL != "" {
		toss.BaseURL = tossBaseURL
	}
	payCtrl := NewPaymentController(db, toss)
	reportCtrl := NewReportController(db)

	app.Post("/api/orders/commit", orderCtrl.CommitOrders)
	app.Get("/api/student/orders/:code", orderCtrl.StudentOrders)
	app.Post("/api/payments/toss/confirm", payCtrl.ConfirmPayment)

	app.Get("/api/admin/orders", orderCtrl.AdminListOrders)
	app.Post("/api/admin/orders/cancel-student", orderCtrl.CancelStudentOrders)
	app.Delete("/api/admin/orders/:id", orderCtrl.DeleteOrder)
	app.Post("/api/admin/reset-orders", orderCtrl.ResetOrders)
	app.Get("/api/admin/applicants-range", payCtrl.ApplicantsRange)
	app.Post("/api/admin/payments/mark-range", payCtrl.MarkRange)
	app.Get("/api/admin/applicants", payCtrl.ApplicantsByDate)
	app.Post("/api/admin/payments/mark", payCtrl.MarkByDate)
	app.Get("/api/admin/weekly-summary", reportCtrl.WeeklySummary)
	app.Get("/api/admin/attendance.csv", reportCtrl.AttendanceCSV)
	app.Get("/api/admin/print", reportCtrl.PrintView)
	return app
}

func seedStudent(t *testing.T, db *gorm.DB, name, code string) studentModel.StudentModel {
	t.Helper()
	st := studentModel.StudentModel{Name: name, Code: code}
	require.NoError(t, db.Create(&st).Error)
	return st
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && resp.Header.Get("Content-Type") != "text/csv; charset=utf-8" {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "data missing in %v", body)
	return d
}

func commit(t *testing.T, app *fiber.App, code string, items []map[string]interface{}) map[string]interface{} {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/orders/commit", map[string]interface{}{
		"code":  code,
		"items": items,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)
	return dataOf(t, body)
}

func item(date, slot string, price int) map[string]interface{} {
	return map[string]interface{}{"date": date, "slot": slot, "price": price}
}

func countOrders(t *testing.T, db *gorm.DB, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table("orders").Where(where, args...).Count(&n).Error)
	return n
}
