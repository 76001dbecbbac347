package dto

// ============================
// Request DTOs
// ============================

type UpsertStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Phone       string `json:"phone"`
	ParentPhone string `json:"parent_phone"`
}

type UpdateStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Phone       string `json:"phone"`
	ParentPhone string `json:"parent_phone"`
}

type BulkUpsertRequest struct {
	Students []UpsertStudentRequest `json:"students"`
}

// StudentPolicyRequest sets the per-student policy override. Empty / null
// fields clear the corresponding override.
type StudentPolicyRequest struct {
	AllowedWeekdays *string `json:"allowed_weekdays"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	PriceOverride   *int    `json:"price_override"`
}
