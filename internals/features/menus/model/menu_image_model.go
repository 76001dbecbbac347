package model

import "time"

type MenuImageModel struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	URL        string    `json:"url" gorm:"column:url;not null"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"column:uploaded_at;autoCreateTime"`
}

func (MenuImageModel) TableName() string {
	return "menu_images"
}
