package model

// StudentModel is the roster record. The override columns narrow the global
// policy for this student; NULL means "no override".
type StudentModel struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Code        string `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Phone       string `gorm:"column:phone" json:"phone"`
	ParentPhone string `gorm:"column:parent_phone" json:"parent_phone"`

	AllowedWeekdays *string `gorm:"column:allowed_weekdays" json:"allowed_weekdays"`
	StartDate       *string `gorm:"column:start_date" json:"start_date"`
	EndDate         *string `gorm:"column:end_date" json:"end_date"`
	PriceOverride   *int    `gorm:"column:price_override" json:"price_override"`
}

func (StudentModel) TableName() string {
	return "students"
}
