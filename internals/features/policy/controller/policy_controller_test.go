package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "dosirak_backend/internals/databases"
	studentModel "dosirak_backend/internals/features/students/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("file::memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func newPolicyApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New()
	ctrl := NewPolicyController(db)
	app.Get("/api/policy/active", ctrl.ActivePolicy)
	app.Get("/api/admin/policy", ctrl.GetPolicy)
	app.Post("/api/admin/policy", ctrl.SetPolicy)
	app.Get("/api/admin/no-service-days", ctrl.ListBlackouts)
	app.Post("/api/admin/no-service-days", ctrl.AddBlackout)
	app.Delete("/api/admin/no-service-days/:id", ctrl.DeleteBlackout)
	return app
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
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}

func TestPolicySeededDefaults(t *testing.T) {
	db := newTestDB(t)
	app := newPolicyApp(t, db)

	resp, body := doJSON(t, app, http.MethodGet, "/api/admin/policy", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 9000, data["base_price"])
	assert.Equal(t, "MON,TUE,WED,THU,FRI", data["allowed_weekdays"])
}

func TestSetPolicyCanonicalizesWeekdays(t *testing.T) {
	db := newTestDB(t)
	app := newPolicyApp(t, db)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/policy", map[string]interface{}{
		"base_price":       12000,
		"allowed_weekdays": "fri, mon, wed",
		"start_date":       "2026-03-01",
		"end_date":         "2026-03-31",
		"sms_extra_text":   "농협 123-456",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body := doJSON(t, app, http.MethodGet, "/api/admin/policy", nil)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 12000, data["base_price"])
	assert.Equal(t, "MON,WED,FRI", data["allowed_weekdays"])
	assert.Equal(t, "2026-03-01", data["start_date"])
	assert.Equal(t, "농협 123-456", data["sms_extra_text"])
}

func TestSetPolicyRejectsEmptyWeekdaySet(t *testing.T) {
	db := newTestDB(t)
	app := newPolicyApp(t, db)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/policy", map[string]interface{}{
		"base_price":       9000,
		"allowed_weekdays": "FUNDAY",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActivePolicyMergesOverrides(t *testing.T) {
	db := newTestDB(t)
	app := newPolicyApp(t, db)

	weekdays := "MON,WED"
	price := 7000
	start := "2026-03-10"
	require.NoError(t, db.Create(&studentModel.StudentModel{
		Name: "김철수", Code: "S001",
		AllowedWeekdays: &weekdays,
		PriceOverride:   &price,
		StartDate:       &start,
	}).Error)

	_, _ = doJSON(t, app, http.MethodPost, "/api/admin/policy", map[string]interface{}{
		"base_price":       9000,
		"allowed_weekdays": "MON,TUE,WED,THU,FRI",
		"start_date":       "2026-03-01",
		"end_date":         "2026-03-31",
	})
	_, _ = doJSON(t, app, http.MethodPost, "/api/admin/no-service-days", map[string]interface{}{
		"date": "2026-03-11", "slot": "BOTH",
	})

	resp, body := doJSON(t, app, http.MethodGet, "/api/policy/active?code=S001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})

	assert.EqualValues(t, 7000, data["base_price"])
	assert.Equal(t, []interface{}{"MON", "WED"}, data["allowed_weekdays"])
	assert.Equal(t, "2026-03-10", data["start_date"]) // later of the two starts
	assert.Equal(t, "2026-03-31", data["end_date"])

	days := data["no_service_days"].([]interface{})
	require.Len(t, days, 1)
	day := days[0].(map[string]interface{})
	assert.Equal(t, "2026-03-11", day["date"])
	assert.Equal(t, "BOTH", day["slot"])

	st := data["student"].(map[string]interface{})
	assert.Equal(t, "S001", st["code"])
}

func TestActivePolicyUnknownCode(t *testing.T) {
	db := newTestDB(t)
	app := newPolicyApp(t, db)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/policy/active?code=GHOST", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/policy/active", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBlackoutLifecycle(t *testing.T) {
	db := newTestDB(t)
	app := newPolicyApp(t, db)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/no-service-days", map[string]interface{}{
		"date": "2026-03-11", "slot": "LUNCH",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// invalid slot rejected
	resp, _ = doJSON(t, app, http.MethodPost, "/api/admin/no-service-days", map[string]interface{}{
		"date": "2026-03-12", "slot": "BRUNCH",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body := doJSON(t, app, http.MethodGet, "/api/admin/no-service-days", nil)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)

	resp, body = doJSON(t, app, http.MethodDelete, "/api/admin/no-service-days/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["data"].(map[string]interface{})["deleted"])

	_, body = doJSON(t, app, http.MethodGet, "/api/admin/no-service-days", nil)
	assert.Empty(t, body["data"])
}
