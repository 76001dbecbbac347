package model

import "gorm.io/gorm"

// PolicyModel is the global ordering policy. Exactly one row exists (id=1),
// seeded by the initial migration; access goes through Load/Save.
type PolicyModel struct {
	ID              uint    `gorm:"column:id;primaryKey" json:"id"`
	BasePrice       int     `gorm:"column:base_price;not null" json:"base_price"`
	AllowedWeekdays string  `gorm:"column:allowed_weekdays;not null" json:"allowed_weekdays"`
	StartDate       *string `gorm:"column:start_date" json:"start_date"`
	EndDate         *string `gorm:"column:end_date" json:"end_date"`
	SMSExtraText    *string `gorm:"column:sms_extra_text" json:"sms_extra_text"`
}

func (PolicyModel) TableName() string {
	return "policy"
}

func LoadPolicy(db *gorm.DB) (PolicyModel, error) {
	var p PolicyModel
	err := db.First(&p, "id = 1").Error
	return p, err
}

func SavePolicy(db *gorm.DB, p PolicyModel) error {
	return db.Model(&PolicyModel{}).Where("id = 1").Updates(map[string]interface{}{
		"base_price":       p.BasePrice,
		"allowed_weekdays": p.AllowedWeekdays,
		"start_date":       p.StartDate,
		"end_date":         p.EndDate,
		"sms_extra_text":   p.SMSExtraText,
	}).Error
}
