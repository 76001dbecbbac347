package service

import (
	"gorm.io/gorm"

	"dosirak_backend/internals/features/orders/model"
)

// MarkOrders is the single update-by-filter primitive behind every paid
// toggle: range marks, single-date marks and per-(date,slot) marks all land
// here. Only SELECTED/PAID rows match; the filter is explicit even though no
// third status exists. Returns rows affected.
func MarkOrders(db *gorm.DB, studentID uint, startDate, endDate, slot string, paid bool) (int64, error) {
	status := model.StatusSelected
	if paid {
		status = model.StatusPaid
	}

	q := db.Model(&model.OrderModel{}).
		Where("student_id = ?", studentID).
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Where("status IN ?", []string{model.StatusSelected, model.StatusPaid})
	if model.ValidSlot(slot) {
		q = q.Where("slot = ?", slot)
	}

	res := q.Update("status", status)
	return res.RowsAffected, res.Error
}
