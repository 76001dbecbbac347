package dto

import (
	policyModel "dosirak_backend/internals/features/policy/model"
)

// ============================
// Request DTOs
// ============================

type SetPolicyRequest struct {
	BasePrice       int     `json:"base_price" validate:"min=0"`
	AllowedWeekdays string  `json:"allowed_weekdays" validate:"required"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	SMSExtraText    *string `json:"sms_extra_text"`
}

type AddBlackoutRequest struct {
	Date string `json:"date" validate:"required"`
	Slot string `json:"slot" validate:"required,oneof=BOTH LUNCH DINNER"`
}

// ============================
// Response DTOs
// ============================

type ActiveStudent struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// ActivePolicyResponse is the student-facing resolver output. The blackout
// list is returned unfiltered; the caller intersects it with the window.
type ActivePolicyResponse struct {
	BasePrice       int                         `json:"base_price"`
	AllowedWeekdays []string                    `json:"allowed_weekdays"`
	StartDate       *string                     `json:"start_date"`
	EndDate         *string                     `json:"end_date"`
	NoServiceDays   []policyModel.BlackoutModel `json:"no_service_days"`
	Student         ActiveStudent               `json:"student"`
	SMSExtraText    *string                     `json:"sms_extra_text"`
}
