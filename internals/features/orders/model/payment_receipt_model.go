package model

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentReceiptModel stores the raw gateway receipt per confirmed payment.
// The local status update and the gateway charge are two separate steps; the
// stored receipt is what lets an admin reconcile a charge whose status update
// matched zero rows (student deleted, orders cancelled in between).
type PaymentReceiptModel struct {
	ID         uint           `gorm:"column:id;primaryKey" json:"id"`
	OrderRef   string         `gorm:"column:order_ref;not null;uniqueIndex" json:"order_ref"`
	PaymentKey string         `gorm:"column:payment_key;not null" json:"payment_key"`
	Amount     int            `gorm:"column:amount;not null" json:"amount"`
	Receipt    datatypes.JSON `gorm:"column:receipt" json:"receipt"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PaymentReceiptModel) TableName() string {
	return "payment_receipts"
}
