package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitOrdersIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")
	seedStudent(t, db, "김철수", "S001")

	data := commit(t, app, "S001", []map[string]interface{}{
		item("2026-03-02", "LUNCH", 9000),
		item("2026-03-02", "DINNER", 9000),
	})
	assert.EqualValues(t, 2, data["inserted"])
	assert.EqualValues(t, 0, data["skipped"])

	// same selection again: nothing inserted, nothing duplicated
	data = commit(t, app, "S001", []map[string]interface{}{
		item("2026-03-02", "LUNCH", 9000),
		item("2026-03-02", "DINNER", 9000),
	})
	assert.EqualValues(t, 0, data["inserted"])
	assert.EqualValues(t, 2, data["skipped"])
	assert.EqualValues(t, 2, countOrders(t, db, "1 = 1"))
}

func TestCommitOrdersSkipsMalformedItems(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")
	seedStudent(t, db, "김철수", "S001")

	data := commit(t, app, "S001", []map[string]interface{}{
		item("2026-03-02", "LUNCH", 9000),
		item("", "LUNCH", 9000),
		item("2026-03-03", "BRUNCH", 9000),
	})
	assert.EqualValues(t, 1, data["inserted"])
	assert.EqualValues(t, 2, data["skipped"])
}

func TestCommitOrdersUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/orders/commit", map[string]interface{}{
		"code":  "NOPE",
		"items": []map[string]interface{}{item("2026-03-02", "LUNCH", 9000)},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommitDoesNotResurrectPaidStatus(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")
	st := seedStudent(t, db, "김철수", "S001")

	commit(t, app, "S001", []map[string]interface{}{item("2026-03-02", "LUNCH", 9000)})
	require.NoError(t, db.Exec(
		`UPDATE orders SET status='PAID' WHERE student_id=?`, st.ID).Error)

	// re-commit of a PAID row leaves it PAID
	data := commit(t, app, "S001", []map[string]interface{}{item("2026-03-02", "LUNCH", 9000)})
	assert.EqualValues(t, 0, data["inserted"])
	assert.EqualValues(t, 1, countOrders(t, db, "status = 'PAID'"))
}

func TestStudentOrders(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")
	seedStudent(t, db, "김철수", "S001")
	commit(t, app, "S001", []map[string]interface{}{
		item("2026-03-03", "LUNCH", 9000),
		item("2026-03-02", "LUNCH", 9000),
	})

	resp, body := doJSON(t, app, http.MethodGet, "/api/student/orders/S001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := dataOf(t, body)
	assert.EqualValues(t, 2, data["count"])

	orders := data["orders"].([]interface{})
	first := orders[0].(map[string]interface{})
	assert.Equal(t, "2026-03-02", first["date"]) // date ascending

	resp, _ = doJSON(t, app, http.MethodGet, "/api/student/orders/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminListOrdersGroups(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")
	seedStudent(t, db, "나영희", "S002")
	seedStudent(t, db, "김철수", "S001")
	commit(t, app, "S001", []map[string]interface{}{
		item("2026-03-02", "LUNCH", 9000),
		item("2026-03-03", "LUNCH", 8000),
	})
	commit(t, app, "S002", []map[string]interface{}{item("2026-03-02", "DINNER", 9000)})

	resp, body := doJSON(t, app, http.MethodGet,
		"/api/admin/orders?start=2026-03-01&end=2026-03-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := dataOf(t, body)

	groups := data["groups"].([]interface{})
	require.Len(t, groups, 2)
	first := groups[0].(map[string]interface{})
	assert.Equal(t, "김철수", first["name"]) // name ascending
	assert.EqualValues(t, 2, first["count"])
	assert.EqualValues(t, 17000, first["total_amount"])

	// name search narrows to one group
	resp, body = doJSON(t, app, http.MethodGet, "/api/admin/orders?q=나영", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	groups = dataOf(t, body)["groups"].([]interface{})
	assert.Len(t, groups, 1)
}

func TestDeleteOrderIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")
	seedStudent(t, db, "김철수", "S001")
	commit(t, app, "S001", []map[string]interface{}{item("2026-03-02", "LUNCH", 9000)})

	resp, body := doJSON(t, app, http.MethodDelete, "/api/admin/orders/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, dataOf(t, body)["deleted"])

	resp, body = doJSON(t, app, http.MethodDelete, "/api/admin/orders/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, dataOf(t, body)["deleted"])
}

func TestCancelStudentOrders(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")
	seedStudent(t, db, "김철수", "S001")
	commit(t, app, "S001", []map[string]interface{}{
		item("2026-03-02", "LUNCH", 9000),
		item("2026-03-02", "DINNER", 9000),
		item("2026-03-09", "LUNCH", 9000),
	})

	// narrowed by range and slot
	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/orders/cancel-student",
		map[string]interface{}{
			"code": "S001", "start": "2026-03-01", "end": "2026-03-07", "slot": "LUNCH",
		})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, dataOf(t, body)["deleted"])
	assert.EqualValues(t, 2, countOrders(t, db, "1 = 1"))

	// no filters: everything for the student goes, PAID included
	require.NoError(t, db.Exec(`UPDATE orders SET status='PAID'`).Error)
	resp, body = doJSON(t, app, http.MethodPost, "/api/admin/orders/cancel-student",
		map[string]interface{}{"code": "S001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, dataOf(t, body)["deleted"])
	assert.EqualValues(t, 0, countOrders(t, db, "1 = 1"))
}

func TestResetOrdersRequiresConfirm(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")
	seedStudent(t, db, "김철수", "S001")
	commit(t, app, "S001", []map[string]interface{}{item("2026-03-02", "LUNCH", 9000)})

	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/reset-orders",
		map[string]interface{}{"confirm": false})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.EqualValues(t, 1, countOrders(t, db, "1 = 1"))

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/reset-orders",
		map[string]interface{}{"confirm": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, dataOf(t, body)["deleted"])
	assert.EqualValues(t, 0, countOrders(t, db, "1 = 1"))
}

func TestStudentDeleteCascadesToOrders(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, "")
	st := seedStudent(t, db, "김철수", "S001")
	commit(t, app, "S001", []map[string]interface{}{item("2026-03-02", "LUNCH", 9000)})

	require.NoError(t, db.Exec(`DELETE FROM students WHERE id = ?`, st.ID).Error)
	assert.EqualValues(t, 0, countOrders(t, db, "1 = 1"))
}
