package service

import (
	"strings"

	policyModel "dosirak_backend/internals/features/policy/model"
	studentModel "dosirak_backend/internals/features/students/model"
	helper "dosirak_backend/internals/helpers"
)

// EffectivePolicy is the merged ordering window for one student: per-student
// overrides narrow or replace the global policy.
type EffectivePolicy struct {
	BasePrice       int      `json:"base_price"`
	AllowedWeekdays []string `json:"allowed_weekdays"`
	StartDate       *string  `json:"start_date"`
	EndDate         *string  `json:"end_date"`
}

// Resolve merges the global policy with a student's overrides. Pure; no
// window-validity check here — an inverted window (start > end) simply yields
// zero selectable days downstream.
func Resolve(global policyModel.PolicyModel, st studentModel.StudentModel) EffectivePolicy {
	weekdaySource := global.AllowedWeekdays
	if st.AllowedWeekdays != nil && strings.TrimSpace(*st.AllowedWeekdays) != "" {
		weekdaySource = *st.AllowedWeekdays
	}

	price := global.BasePrice
	if st.PriceOverride != nil {
		// 0 is a real override; only NULL falls back to the global price
		price = *st.PriceOverride
	}

	return EffectivePolicy{
		BasePrice:       price,
		AllowedWeekdays: helper.ParseWeekdays(weekdaySource),
		StartDate:       laterDate(global.StartDate, st.StartDate),
		EndDate:         earlierDate(global.EndDate, st.EndDate),
	}
}

// ISO dates compare correctly as strings.

func laterDate(a, b *string) *string {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a > *b:
		return a
	default:
		return b
	}
}

func earlierDate(a, b *string) *string {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a < *b:
		return a
	default:
		return b
	}
}
