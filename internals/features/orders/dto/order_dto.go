package dto

// ============================
// Student-facing
// ============================

type CommitItem struct {
	Date  string `json:"date"`
	Slot  string `json:"slot"`
	Price int    `json:"price"`
}

type CommitRequest struct {
	Code  string       `json:"code" validate:"required"`
	Items []CommitItem `json:"items" validate:"required,min=1"`
}

type DateSlot struct {
	Date string `json:"date"`
	Slot string `json:"slot"`
}

// ConfirmRequest carries the gateway confirmation plus the rows to mark.
type ConfirmRequest struct {
	PaymentKey string     `json:"paymentKey" validate:"required"`
	OrderID    string     `json:"orderId" validate:"required"`
	Amount     int        `json:"amount" validate:"required,gt=0"`
	Code       string     `json:"code"`
	DateSlots  []DateSlot `json:"dateslots"`
}

// ============================
// Admin
// ============================

type CancelStudentRequest struct {
	Code  string `json:"code" validate:"required"`
	Start string `json:"start"`
	End   string `json:"end"`
	Slot  string `json:"slot"`
}

type ResetOrdersRequest struct {
	Confirm bool `json:"confirm"`
}

type MarkItem struct {
	Code string `json:"code"`
	Slot string `json:"slot"`
	Paid bool   `json:"paid"`
}

type MarkRangeRequest struct {
	Start string     `json:"start" validate:"required"`
	End   string     `json:"end" validate:"required"`
	Items []MarkItem `json:"items"`
}

type MarkRequest struct {
	Date  string     `json:"date" validate:"required"`
	Items []MarkItem `json:"items"`
}

// ============================
// Read models
// ============================

// ApplicantRangeRow is the per-student reconciliation line: paid is true iff
// every applied row in range is PAID.
type ApplicantRangeRow struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	AppliedCount int    `json:"applied_count"`
	PaidCount    int    `json:"paid_count"`
	TotalAmount  int    `json:"total_amount"`
	Paid         bool   `json:"paid"`
}

type SlotState struct {
	Applied bool `json:"applied"`
	Paid    bool `json:"paid"`
}

type ApplicantDayRow struct {
	ID     uint      `json:"id"`
	Name   string    `json:"name"`
	Code   string    `json:"code"`
	Lunch  SlotState `json:"lunch"`
	Dinner SlotState `json:"dinner"`
}

type PrintEntry struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Status string `json:"status"`
}
