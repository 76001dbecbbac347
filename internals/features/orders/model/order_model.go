package model

import "time"

const (
	SlotLunch  = "LUNCH"
	SlotDinner = "DINNER"

	StatusSelected = "SELECTED"
	StatusPaid     = "PAID"
)

// ValidSlot reports whether s is an orderable meal slot.
func ValidSlot(s string) bool {
	return s == SlotLunch || s == SlotDinner
}

// OrderModel is one (student, date, slot) selection. The price is captured
// at selection time and never recomputed from policy. Uniqueness over the
// triple is enforced by idx_orders_student_date_slot.
type OrderModel struct {
	ID        uint       `gorm:"column:id;primaryKey" json:"id"`
	StudentID uint       `gorm:"column:student_id;not null" json:"student_id"`
	Date      string     `gorm:"column:date;not null" json:"date"`
	Slot      string     `gorm:"column:slot;not null" json:"slot"`
	Price     int        `gorm:"column:price;not null" json:"price"`
	Status    string     `gorm:"column:status;not null" json:"status"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (OrderModel) TableName() string {
	return "orders"
}
