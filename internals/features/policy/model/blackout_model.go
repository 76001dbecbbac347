package model

const (
	BlackoutSlotBoth   = "BOTH"
	BlackoutSlotLunch  = "LUNCH"
	BlackoutSlotDinner = "DINNER"
)

// BlackoutModel marks a date (optionally one slot) as not offered. It only
// filters what students may select; existing orders on that date are kept.
type BlackoutModel struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Date string `gorm:"column:date;not null" json:"date"`
	Slot string `gorm:"column:slot;not null" json:"slot"`
}

func (BlackoutModel) TableName() string {
	return "blackout"
}
